package pagination

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/jimyag/qosd/pkg/apierror"
)

// MaxInt limit 和 offset 允许的最大值
const MaxInt = math.MaxInt32

// DefaultSortKey 未指定排序时使用的排序键
const DefaultSortKey = "id"

// Direction 排序方向
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortKey 排序键和方向
type SortKey struct {
	Key string
	Dir Direction
}

// Request 解析后的分页请求
type Request struct {
	// Limit 生效的每页数量
	Limit int
	// Offset 跳过的数量
	Offset int
	// Marker 从该 ID 之后开始
	Marker string
	// Sort 排序键，至少包含一个
	Sort []SortKey
	// Filters 等值过滤条件
	Filters map[string]string
}

// Options 控制 Parse 接受哪些排序键和过滤字段
type Options struct {
	SortKeys   []string
	FilterKeys []string
	MaxLimit   int
}

var reservedKeys = []string{"limit", "offset", "marker", "sort", "sort_key", "sort_dir"}

// Parse 从查询参数解析分页请求
// 所有错误都是 apierror.KindInvalidInput
func Parse(query url.Values, opts Options) (*Request, error) {
	maxLimit := opts.MaxLimit
	if maxLimit <= 0 || maxLimit > MaxInt {
		maxLimit = MaxInt
	}

	req := &Request{
		Limit:   maxLimit,
		Filters: make(map[string]string),
	}

	if query.Has("limit") {
		limit, err := parseInt(query.Get("limit"), "limit")
		if err != nil {
			return nil, err
		}
		req.Limit = min(limit, maxLimit)
	}

	if query.Has("offset") {
		offset, err := parseInt(query.Get("offset"), "offset")
		if err != nil {
			return nil, err
		}
		req.Offset = offset
	}

	if query.Has("marker") {
		req.Marker = query.Get("marker")
		if req.Marker == "" {
			return nil, invalid("marker must not be empty")
		}
	}

	sortKeys, err := parseSort(query, opts.SortKeys)
	if err != nil {
		return nil, err
	}
	req.Sort = sortKeys

	for key := range query {
		if slices.Contains(reservedKeys, key) {
			continue
		}
		if !slices.Contains(opts.FilterKeys, key) {
			return nil, invalid(fmt.Sprintf("Invalid filter key: %s", key))
		}
		req.Filters[key] = query.Get(key)
	}

	return req, nil
}

// parseInt 解析 0 到 MaxInt 之间的整数
func parseInt(raw, field string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, invalid(fmt.Sprintf("%s param must be an integer", field))
	}
	if v < 0 {
		return 0, invalid(fmt.Sprintf("Value must be >= 0 for field %s", field))
	}
	if v > MaxInt {
		return 0, invalid(fmt.Sprintf("Value must be <= %d for field %s", MaxInt, field))
	}
	return int(v), nil
}

func parseSort(query url.Values, allowed []string) ([]SortKey, error) {
	hasLegacy := query.Has("sort_key") || query.Has("sort_dir")
	if query.Has("sort") && hasLegacy {
		return nil, invalid("The 'sort_key' and 'sort_dir' parameters cannot be used with the 'sort' parameter.")
	}

	var keys []SortKey
	switch {
	case query.Has("sort"):
		for _, part := range strings.Split(query.Get("sort"), ",") {
			key, dir, _ := strings.Cut(strings.TrimSpace(part), ":")
			sk, err := newSortKey(key, dir, allowed)
			if err != nil {
				return nil, err
			}
			keys = append(keys, sk)
		}
	case hasLegacy:
		key := query.Get("sort_key")
		if key == "" {
			key = DefaultSortKey
		}
		sk, err := newSortKey(key, query.Get("sort_dir"), allowed)
		if err != nil {
			return nil, err
		}
		keys = append(keys, sk)
	default:
		keys = append(keys, SortKey{Key: DefaultSortKey, Dir: Desc})
	}

	return keys, nil
}

func newSortKey(key, dir string, allowed []string) (SortKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return SortKey{}, invalid("sort key must not be empty")
	}
	if key != DefaultSortKey && !slices.Contains(allowed, key) {
		return SortKey{}, invalid(fmt.Sprintf("Invalid sort key: %s", key))
	}

	switch Direction(strings.ToLower(strings.TrimSpace(dir))) {
	case "", Desc:
		return SortKey{Key: key, Dir: Desc}, nil
	case Asc:
		return SortKey{Key: key, Dir: Asc}, nil
	default:
		return SortKey{}, invalid(fmt.Sprintf("Invalid sort direction: %s", dir))
	}
}

func invalid(msg string) error {
	return apierror.WrapError(apierror.ErrInvalidInput, msg, nil)
}
