package pagination

import (
	"cmp"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/jimyag/qosd/pkg/apierror"
)

// Fielder 可分页的记录，通过字段名取值
// "id" 字段必须存在且唯一
type Fielder interface {
	Field(key string) (any, bool)
}

// Page 一页结果
type Page[T any] struct {
	List []T
	// NextMarker 后面还有数据时为本页最后一条记录的 ID
	NextMarker string
}

// Apply 对集合依次执行过滤、排序、marker、offset 和 limit
func Apply[T Fielder](items []T, req *Request) (Page[T], error) {
	list := Filter(items, req.Filters)
	Sort(list, req.Sort)

	if req.Marker != "" {
		idx := slices.IndexFunc(list, func(item T) bool {
			return idOf(item) == req.Marker
		})
		if idx < 0 {
			return Page[T]{}, apierror.WrapError(apierror.ErrMarkerNotFound,
				fmt.Sprintf("Marker %s could not be found.", req.Marker), nil)
		}
		list = list[idx+1:]
	}

	if req.Offset >= len(list) {
		return Page[T]{List: []T{}}, nil
	}
	list = list[req.Offset:]

	if req.Limit >= len(list) {
		return Page[T]{List: list}, nil
	}

	list = list[:req.Limit]
	page := Page[T]{List: list}
	if len(list) > 0 {
		page.NextMarker = idOf(list[len(list)-1])
	}
	return page, nil
}

// Filter 返回所有字段值与过滤条件完全相等的记录
func Filter[T Fielder](items []T, filters map[string]string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matches(item, filters) {
			out = append(out, item)
		}
	}
	return out
}

func matches[T Fielder](item T, filters map[string]string) bool {
	for key, want := range filters {
		v, ok := item.Field(key)
		if !ok || toString(v) != want {
			return false
		}
	}
	return true
}

// Sort 按排序键原地稳定排序，最后用 id 决定先后
func Sort[T Fielder](items []T, keys []SortKey) {
	if len(keys) == 0 {
		keys = []SortKey{{Key: DefaultSortKey, Dir: Desc}}
	}
	tieDir := keys[len(keys)-1].Dir

	slices.SortStableFunc(items, func(a, b T) int {
		for _, sk := range keys {
			if c := compareField(a, b, sk); c != 0 {
				return c
			}
		}
		return compareField(a, b, SortKey{Key: DefaultSortKey, Dir: tieDir})
	})
}

func compareField[T Fielder](a, b T, sk SortKey) int {
	av, _ := a.Field(sk.Key)
	bv, _ := b.Field(sk.Key)
	c := compareValues(av, bv)
	if sk.Dir == Desc {
		return -c
	}
	return c
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return cmp.Compare(av, bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return cmp.Compare(av, bv)
		}
	}
	return strings.Compare(toString(a), toString(b))
}

func toString(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return tv
	case time.Time:
		return tv.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(tv)
	}
}

func idOf[T Fielder](item T) string {
	v, _ := item.Field(DefaultSortKey)
	return toString(v)
}

// NextLink 生成下一页链接
// 保留原查询参数，去掉 offset，设置 limit 和 marker
func NextLink(base *url.URL, query url.Values, limit int, marker string) string {
	params := url.Values{}
	for k, v := range query {
		if k == "offset" {
			continue
		}
		params[k] = slices.Clone(v)
	}
	params.Set("limit", fmt.Sprint(limit))
	params.Set("marker", marker)

	u := *base
	u.RawQuery = params.Encode()
	u.Fragment = ""
	return u.String()
}
