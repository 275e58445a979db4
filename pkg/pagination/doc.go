// Package pagination 提供集合接口的过滤、排序和分页
//
// 查询参数：
//   - limit: 每页数量，0 到 2^31-1，超过 MaxLimit 时截断到 MaxLimit
//   - offset: 跳过的数量，0 到 2^31-1，超出集合长度时返回空页
//   - marker: 从该 ID 之后开始（不包含 marker 本身）
//   - sort: key[:dir][,key[:dir]...]，dir 为 asc 或 desc，缺省 desc
//   - sort_key / sort_dir: 旧参数，不能与 sort 同时使用
//   - 其它参数作为等值过滤条件，必须在允许的过滤字段中
//
// 处理顺序：过滤 -> 排序 -> marker -> offset -> limit。
// 未指定排序时按 id 降序；排序键相同时按 id 决定先后，方向与最后一个排序键相同。
//
// 使用示例：
//
//	req, err := pagination.Parse(ctx.Request.URL.Query(), pagination.Options{
//	    SortKeys:   []string{"id", "name"},
//	    FilterKeys: []string{"id", "name"},
//	    MaxLimit:   1000,
//	})
//	page, err := pagination.Apply(items, req)
//	if page.NextMarker != "" {
//	    href := pagination.NextLink(baseURL, query, req.Limit, page.NextMarker)
//	}
package pagination
