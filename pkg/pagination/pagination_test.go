package pagination

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/jimyag/qosd/pkg/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	id       string
	name     string
	consumer string
}

func (r record) Field(key string) (any, bool) {
	switch key {
	case "id":
		return r.id, true
	case "name":
		return r.name, true
	case "consumer":
		return r.consumer, true
	}
	return nil, false
}

var testOptions = Options{
	SortKeys:   []string{"id", "name", "consumer"},
	FilterKeys: []string{"id", "name", "consumer"},
	MaxLimit:   1000,
}

// 按插入顺序生成 qos-1 ... qos-4
func fourRecords() []record {
	return []record{
		{id: "qos-1", name: "Qos_test_1", consumer: "back-end"},
		{id: "qos-2", name: "Qos_test_2", consumer: "front-end"},
		{id: "qos-3", name: "Qos_test_3", consumer: "back-end"},
		{id: "qos-4", name: "Qos_test_4", consumer: "both"},
	}
}

func ids(list []record) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.id)
	}
	return out
}

func mustParse(t *testing.T, rawQuery string) *Request {
	t.Helper()
	q, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	req, err := Parse(q, testOptions)
	require.NoError(t, err)
	return req
}

func TestParse(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name        string
		query       string
		expectErr   bool
		expectLimit int
		expectOff   int
		expectSort  []SortKey
	}{
		{
			name:        "defaults",
			query:       "",
			expectLimit: 1000,
			expectSort:  []SortKey{{Key: "id", Dir: Desc}},
		},
		{
			name:        "limit capped by max limit",
			query:       "limit=5000",
			expectLimit: 1000,
			expectSort:  []SortKey{{Key: "id", Dir: Desc}},
		},
		{
			name:        "sort key without direction is desc",
			query:       "sort=id",
			expectLimit: 1000,
			expectSort:  []SortKey{{Key: "id", Dir: Desc}},
		},
		{
			name:        "sort with direction",
			query:       "sort=name:asc,id:DESC",
			expectLimit: 1000,
			expectSort:  []SortKey{{Key: "name", Dir: Asc}, {Key: "id", Dir: Desc}},
		},
		{
			name:        "legacy sort parameters",
			query:       "sort_key=name&sort_dir=asc",
			expectLimit: 1000,
			expectSort:  []SortKey{{Key: "name", Dir: Asc}},
		},
		{
			name:        "limit and offset",
			query:       "limit=2&offset=1",
			expectLimit: 2,
			expectOff:   1,
			expectSort:  []SortKey{{Key: "id", Dir: Desc}},
		},
		{name: "offset out of range", query: "offset=356576877698707", expectErr: true},
		{name: "offset not an integer", query: "offset=abc", expectErr: true},
		{name: "negative offset", query: "offset=-1", expectErr: true},
		{name: "negative limit", query: "limit=-1", expectErr: true},
		{name: "limit out of range", query: "limit=99999999999", expectErr: true},
		{name: "empty marker", query: "marker=", expectErr: true},
		{name: "bad sort key", query: "sort=specs", expectErr: true},
		{name: "bad sort direction", query: "sort=id:up", expectErr: true},
		{name: "sort mixed with legacy", query: "sort=id&sort_key=name", expectErr: true},
		{name: "unknown filter", query: "foo=bar", expectErr: true},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			req, err := Parse(q, testOptions)
			if tc.expectErr {
				require.Error(t, err)
				assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectLimit, req.Limit)
			assert.Equal(t, tc.expectOff, req.Offset)
			assert.Equal(t, tc.expectSort, req.Sort)
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name       string
		query      string
		expectIDs  []string
		expectNext string
	}{
		{
			name:      "default order is descending id",
			query:     "",
			expectIDs: []string{"qos-4", "qos-3", "qos-2", "qos-1"},
		},
		{
			name:      "sort by id without direction",
			query:     "sort=id",
			expectIDs: []string{"qos-4", "qos-3", "qos-2", "qos-1"},
		},
		{
			name:      "sort by id ascending",
			query:     "sort=id:asc",
			expectIDs: []string{"qos-1", "qos-2", "qos-3", "qos-4"},
		},
		{
			name:       "limit truncates and sets marker",
			query:      "limit=2",
			expectIDs:  []string{"qos-4", "qos-3"},
			expectNext: "qos-3",
		},
		{
			name:      "offset",
			query:     "offset=1",
			expectIDs: []string{"qos-3", "qos-2", "qos-1"},
		},
		{
			name:       "limit and offset",
			query:      "limit=2&offset=1",
			expectIDs:  []string{"qos-3", "qos-2"},
			expectNext: "qos-2",
		},
		{
			name:      "offset beyond collection",
			query:     "offset=10",
			expectIDs: []string{},
		},
		{
			name:      "marker",
			query:     "marker=qos-4",
			expectIDs: []string{"qos-3", "qos-2", "qos-1"},
		},
		{
			name:      "marker then offset",
			query:     "marker=qos-4&offset=1",
			expectIDs: []string{"qos-2", "qos-1"},
		},
		{
			name:      "filter by id",
			query:     "id=qos-4",
			expectIDs: []string{"qos-4"},
		},
		{
			name:      "filter by consumer then sort ascending",
			query:     "consumer=back-end&sort=id:asc",
			expectIDs: []string{"qos-1", "qos-3"},
		},
		{
			name:      "ties broken by id in direction of last key",
			query:     "sort=consumer:asc",
			expectIDs: []string{"qos-1", "qos-3", "qos-4", "qos-2"},
		},
		{
			name:      "limit equal to size has no next marker",
			query:     "limit=4",
			expectIDs: []string{"qos-4", "qos-3", "qos-2", "qos-1"},
		},
		{
			name:      "zero limit",
			query:     "limit=0",
			expectIDs: []string{},
		},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			page, err := Apply(fourRecords(), mustParse(t, tc.query))
			require.NoError(t, err)
			assert.Equal(t, tc.expectIDs, ids(page.List))
			assert.Equal(t, tc.expectNext, page.NextMarker)
		})
	}
}

func TestApply_MarkerNotFound(t *testing.T) {
	t.Parallel()

	_, err := Apply(fourRecords(), mustParse(t, "marker=qos-404"))
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestApply_PageSizeProperty(t *testing.T) {
	t.Parallel()

	records := make([]record, 0, 7)
	for i := 0; i < 7; i++ {
		records = append(records, record{id: fmt.Sprintf("qos-%d", i)})
	}
	n := len(records)

	for offset := 0; offset <= n+2; offset++ {
		for limit := 0; limit <= n+2; limit++ {
			req := mustParse(t, fmt.Sprintf("limit=%d&offset=%d", limit, offset))
			page, err := Apply(records, req)
			require.NoError(t, err)

			want := min(limit, max(0, n-offset))
			assert.Len(t, page.List, want, "offset=%d limit=%d", offset, limit)
			if offset+limit < n && want > 0 {
				assert.Equal(t, page.List[len(page.List)-1].id, page.NextMarker)
			} else {
				assert.Empty(t, page.NextMarker)
			}
		}
	}
}

func TestApply_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	records := fourRecords()
	_, err := Apply(records, mustParse(t, "sort=id:desc"))
	require.NoError(t, err)
	assert.Equal(t, []string{"qos-1", "qos-2", "qos-3", "qos-4"}, ids(records))
}

func TestNextLink(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("http://localhost/v2/fake/qos-specs")
	require.NoError(t, err)

	testcases := []struct {
		name   string
		query  string
		limit  int
		marker string
		expect string
	}{
		{
			name:   "limit only",
			query:  "limit=2",
			limit:  2,
			marker: "qos-3",
			expect: "http://localhost/v2/fake/qos-specs?limit=2&marker=qos-3",
		},
		{
			name:   "offset dropped and marker replaced",
			query:  "limit=2&offset=1&marker=qos-9&sort=id:asc",
			limit:  2,
			marker: "qos-2",
			expect: "http://localhost/v2/fake/qos-specs?limit=2&marker=qos-2&sort=id%3Aasc",
		},
		{
			name:   "implicit limit",
			query:  "",
			limit:  1000,
			marker: "qos-1",
			expect: "http://localhost/v2/fake/qos-specs?limit=1000&marker=qos-1",
		},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, NextLink(base, q, tc.limit, tc.marker))
		})
	}
}
