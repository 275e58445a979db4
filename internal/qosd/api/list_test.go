package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jimyag/qosd/internal/qosd/config"
	"github.com/jimyag/qosd/internal/qosd/entity"
	"github.com/jimyag/qosd/internal/qosd/repository"
	"github.com/jimyag/qosd/internal/qosd/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupListAPI 使用真实的 sqlite 服务并创建 count 个 QoS 规格
// 返回按创建顺序排列的 ID
func setupListAPI(t *testing.T, count int, mutate ...func(*config.Config)) (http.Handler, []string) {
	t.Helper()

	repo, err := repository.New(filepath.Join(t.TempDir(), "qosd.db"), repository.WithSynchronous(false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	svc := service.NewQoSSpecsService(repo)
	consumers := []string{entity.ConsumerBackEnd, entity.ConsumerFrontEnd, entity.ConsumerBoth}
	ids := make([]string, 0, count)
	for i := range count {
		spec, err := svc.Create(context.Background(), "qos_specs_"+strconv.Itoa(i+1), entity.Specs{
			"key1":     "value1",
			"consumer": consumers[i%len(consumers)],
		})
		require.NoError(t, err)
		ids = append(ids, spec.ID)
	}

	handler, _ := setupTestAPI(t, svc, nil, mutate...)
	return handler, ids
}

func decodeList(t *testing.T, body []byte) entity.ListQoSSpecsResponse {
	t.Helper()
	var resp entity.ListQoSSpecsResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func listIDs(resp entity.ListQoSSpecsResponse) []string {
	ids := make([]string, 0, len(resp.QoSSpecs))
	for _, spec := range resp.QoSSpecs {
		ids = append(ids, spec.ID)
	}
	return ids
}

func reversed(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

func TestQoSSpecs_List(t *testing.T) {
	t.Parallel()

	handler, ids := setupListAPI(t, 4)

	testcases := []struct {
		name       string
		query      string
		expectIDs  []string
		expectNext bool
	}{
		{name: "default order is id desc", query: "", expectIDs: reversed(ids)},
		{name: "sort by id asc", query: "sort=id:asc", expectIDs: ids},
		{name: "legacy sort params", query: "sort_key=id&sort_dir=asc", expectIDs: ids},
		{name: "sort key without direction", query: "sort=name", expectIDs: reversed(ids)},
		{name: "limit with next link", query: "limit=2", expectIDs: reversed(ids)[:2], expectNext: true},
		{name: "offset", query: "offset=1", expectIDs: reversed(ids)[1:]},
		{name: "offset beyond collection", query: "offset=10", expectIDs: []string{}},
		{name: "marker", query: "sort=id:asc&marker=" + ids[1], expectIDs: ids[2:]},
		{name: "filter by consumer", query: "consumer=back-end&sort=id:asc", expectIDs: []string{ids[0], ids[3]}},
		{name: "filter by name", query: "name=qos_specs_2", expectIDs: []string{ids[1]}},
		{name: "limit zero", query: "limit=0", expectIDs: []string{}, expectNext: false},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := doRequest(handler, http.MethodGet, basePath+"?"+tc.query, "", "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			resp := decodeList(t, w.Body.Bytes())
			if diff := cmp.Diff(tc.expectIDs, listIDs(resp)); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
			if tc.expectNext {
				require.Len(t, resp.Links, 1)
				assert.Equal(t, "next", resp.Links[0].Rel)
			} else {
				assert.Empty(t, resp.Links)
			}
		})
	}
}

func TestQoSSpecs_List_NextLink(t *testing.T) {
	t.Parallel()

	handler, ids := setupListAPI(t, 3)

	w := doRequest(handler, http.MethodGet, "http://example.com"+basePath+"?limit=2&offset=0", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeList(t, w.Body.Bytes())
	require.Len(t, resp.QoSSpecs, 2)
	require.Len(t, resp.Links, 1)

	href := resp.Links[0].Href
	assert.True(t, strings.HasPrefix(href, "http://example.com/v2/fake/qos-specs?"), href)

	link, err := url.Parse(href)
	require.NoError(t, err)
	assert.Equal(t, "2", link.Query().Get("limit"))
	assert.Equal(t, ids[1], link.Query().Get("marker"))
	assert.False(t, link.Query().Has("offset"))

	// 跟随 next 链接取下一页
	w = doRequest(handler, http.MethodGet, link.RequestURI(), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeList(t, w.Body.Bytes())
	assert.Equal(t, []string{ids[0]}, listIDs(resp))
	assert.Empty(t, resp.Links)
}

func TestQoSSpecs_List_BaseURL(t *testing.T) {
	t.Parallel()

	handler, _ := setupListAPI(t, 2, func(cfg *config.Config) {
		cfg.BaseURL = "https://volume.example.org/"
	})

	w := doRequest(handler, http.MethodGet, basePath+"?limit=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeList(t, w.Body.Bytes())
	require.Len(t, resp.Links, 1)
	assert.True(t, strings.HasPrefix(resp.Links[0].Href, "https://volume.example.org/v2/fake/qos-specs?"), resp.Links[0].Href)
}

func TestQoSSpecs_List_MaxLimit(t *testing.T) {
	t.Parallel()

	handler, ids := setupListAPI(t, 3, func(cfg *config.Config) {
		cfg.MaxLimit = 2
	})

	w := doRequest(handler, http.MethodGet, basePath+"?limit=100", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeList(t, w.Body.Bytes())
	assert.Equal(t, reversed(ids)[:2], listIDs(resp))
	require.Len(t, resp.Links, 1)

	link, err := url.Parse(resp.Links[0].Href)
	require.NoError(t, err)
	assert.Equal(t, "2", link.Query().Get("limit"))
}

func TestQoSSpecs_List_XML(t *testing.T) {
	t.Parallel()

	handler, ids := setupListAPI(t, 1)

	w := doRequest(handler, http.MethodGet, basePath, "", "application/xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(),
		`<qos_specs><qos_spec id="`+ids[0]+`" name="qos_specs_1" consumer="back-end"><specs><key1>value1</key1></specs></qos_spec></qos_specs>`)
}

func TestQoSSpecs_List_Errors(t *testing.T) {
	t.Parallel()

	handler, _ := setupListAPI(t, 2)

	testcases := []struct {
		name         string
		query        string
		expectStatus int
	}{
		{name: "offset too large", query: "offset=356576877698707", expectStatus: http.StatusBadRequest},
		{name: "negative limit", query: "limit=-1", expectStatus: http.StatusBadRequest},
		{name: "non integer limit", query: "limit=abc", expectStatus: http.StatusBadRequest},
		{name: "unknown filter", query: "foo=bar", expectStatus: http.StatusBadRequest},
		{name: "unknown sort key", query: "sort=size:asc", expectStatus: http.StatusBadRequest},
		{name: "bad sort direction", query: "sort=id:up", expectStatus: http.StatusBadRequest},
		{name: "sort mixed with legacy", query: "sort=id&sort_key=name", expectStatus: http.StatusBadRequest},
		{name: "unknown marker", query: "marker=qos-missing", expectStatus: http.StatusNotFound},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := doRequest(handler, http.MethodGet, basePath+"?"+tc.query, "", "")
			assert.Equal(t, tc.expectStatus, w.Code, w.Body.String())
		})
	}
}

func TestQoSSpecs_List_XMLNextLink(t *testing.T) {
	t.Parallel()

	handler, ids := setupListAPI(t, 2)

	w := doRequest(handler, http.MethodGet, basePath+"?limit=1", "", "application/xml")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `<qos_spec id="`+ids[1]+`" name="qos_specs_2"`)
	assert.NotContains(t, body, `id="`+ids[0]+`"`)
	assert.Contains(t, body, `<qos_specs_links><link href="http://example.com/v2/fake/qos-specs?limit=1&amp;marker=`+ids[1]+`" rel="next"></link></qos_specs_links></qos_specs>`)
}
