package service

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/jimyag/qosd/internal/qosd/entity"
	"github.com/jimyag/qosd/internal/qosd/repository"
	"github.com/jimyag/qosd/pkg/apierror"
	"github.com/jimyag/qosd/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServices(t *testing.T) (*QoSSpecsService, *VolumeTypeService) {
	t.Helper()

	repo, err := repository.New(filepath.Join(t.TempDir(), "test.db"), repository.WithSynchronous(false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return NewQoSSpecsService(repo), NewVolumeTypeService(repo)
}

func assertKind(t *testing.T, kind apierror.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apierror.KindOf(err), err.Error())
}

func TestQoSSpecsService_Create(t *testing.T) {
	t.Parallel()

	svc, _ := setupServices(t)
	ctx := context.Background()

	spec, err := svc.Create(ctx, "gold", entity.Specs{"read_iops_sec": "1000", "consumer": "front-end"})
	require.NoError(t, err)
	assert.Equal(t, "gold", spec.Name)
	assert.Equal(t, entity.ConsumerFrontEnd, spec.Consumer)
	assert.Equal(t, entity.Specs{"read_iops_sec": "1000"}, spec.Specs)
	assert.Regexp(t, `^qos-\d{20}$`, spec.ID)

	spec, err = svc.Create(ctx, "silver", entity.Specs{})
	require.NoError(t, err)
	assert.Equal(t, entity.ConsumerBackEnd, spec.Consumer)

	_, err = svc.Create(ctx, "gold", entity.Specs{})
	assertKind(t, apierror.KindConflict, err)

	_, err = svc.Create(ctx, "bad", entity.Specs{"consumer": "nowhere"})
	assertKind(t, apierror.KindInvalidInput, err)

	_, err = svc.Create(ctx, "  ", entity.Specs{})
	assertKind(t, apierror.KindInvalidInput, err)

	got, err := svc.GetByName(ctx, "gold")
	require.NoError(t, err)
	assert.Equal(t, "1000", got.Specs["read_iops_sec"])

	_, err = svc.Get(ctx, "qos-missing")
	assertKind(t, apierror.KindNotFound, err)
}

func TestQoSSpecsService_Update(t *testing.T) {
	t.Parallel()

	svc, _ := setupServices(t)
	ctx := context.Background()

	spec, err := svc.Create(ctx, "gold", entity.Specs{"a": "1"})
	require.NoError(t, err)

	echoed, err := svc.Update(ctx, spec.ID, entity.Specs{"a": "2", "b": "3", "consumer": "both"})
	require.NoError(t, err)
	assert.Equal(t, entity.Specs{"a": "2", "b": "3", "consumer": "both"}, echoed)

	got, err := svc.Get(ctx, spec.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConsumerBoth, got.Consumer)
	assert.Equal(t, entity.Specs{"a": "2", "b": "3"}, got.Specs)

	_, err = svc.Update(ctx, "qos-missing", entity.Specs{"a": "1"})
	assertKind(t, apierror.KindNotFound, err)

	_, err = svc.Update(ctx, spec.ID, entity.Specs{"consumer": "nowhere"})
	assertKind(t, apierror.KindInvalidInput, err)
}

func TestQoSSpecsService_DeleteKeys(t *testing.T) {
	t.Parallel()

	svc, _ := setupServices(t)
	ctx := context.Background()

	spec, err := svc.Create(ctx, "gold", entity.Specs{"bar": "1", "zoo": "2", "foo2": "3"})
	require.NoError(t, err)

	err = svc.DeleteKeys(ctx, spec.ID, []string{"bar", "foo"})
	assertKind(t, apierror.KindKeyNotFound, err)

	// 校验失败时不删除任何键
	got, err := svc.Get(ctx, spec.ID)
	require.NoError(t, err)
	assert.Len(t, got.Specs, 3)

	require.NoError(t, svc.DeleteKeys(ctx, spec.ID, []string{"bar", "zoo"}))
	got, err = svc.Get(ctx, spec.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.Specs{"foo2": "3"}, got.Specs)

	assertKind(t, apierror.KindNotFound, svc.DeleteKeys(ctx, "qos-missing", []string{"bar"}))
}

func TestQoSSpecsService_Associations(t *testing.T) {
	t.Parallel()

	svc, types := setupServices(t)
	ctx := context.Background()

	gold, err := svc.Create(ctx, "gold", entity.Specs{})
	require.NoError(t, err)
	silver, err := svc.Create(ctx, "silver", entity.Specs{})
	require.NoError(t, err)
	fast, err := types.Create(ctx, "fast", "")
	require.NoError(t, err)
	slow, err := types.Create(ctx, "slow", "")
	require.NoError(t, err)

	require.NoError(t, svc.Associate(ctx, gold.ID, fast.ID))
	require.NoError(t, svc.Associate(ctx, gold.ID, fast.ID))
	require.NoError(t, svc.Associate(ctx, gold.ID, slow.ID))

	assertKind(t, apierror.KindInvalidInput, svc.Associate(ctx, silver.ID, fast.ID))
	assertKind(t, apierror.KindNotFound, svc.Associate(ctx, "qos-missing", fast.ID))
	assertKind(t, apierror.KindNotFound, svc.Associate(ctx, gold.ID, "vtype-missing"))

	associations, err := svc.GetAssociations(ctx, gold.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []entity.Association{
		{AssociationType: entity.AssociationTypeVolumeType, Name: "fast", ID: fast.ID},
		{AssociationType: entity.AssociationTypeVolumeType, Name: "slow", ID: slow.ID},
	}, associations)

	require.NoError(t, svc.Disassociate(ctx, gold.ID, fast.ID))
	// 未关联时解除关联也成功
	require.NoError(t, svc.Disassociate(ctx, silver.ID, slow.ID))
	associations, err = svc.GetAssociations(ctx, gold.ID)
	require.NoError(t, err)
	require.Len(t, associations, 1)
	assert.Equal(t, slow.ID, associations[0].ID)

	require.NoError(t, svc.DisassociateAll(ctx, gold.ID))
	associations, err = svc.GetAssociations(ctx, gold.ID)
	require.NoError(t, err)
	assert.Empty(t, associations)

	assertKind(t, apierror.KindNotFound, svc.DisassociateAll(ctx, "qos-missing"))
	_, err = svc.GetAssociations(ctx, "qos-missing")
	assertKind(t, apierror.KindNotFound, err)
}

func TestQoSSpecsService_Delete(t *testing.T) {
	t.Parallel()

	svc, types := setupServices(t)
	ctx := context.Background()

	spec, err := svc.Create(ctx, "gold", entity.Specs{"a": "1"})
	require.NoError(t, err)
	vt, err := types.Create(ctx, "fast", "")
	require.NoError(t, err)
	require.NoError(t, svc.Associate(ctx, spec.ID, vt.ID))

	assertKind(t, apierror.KindInUse, svc.Delete(ctx, spec.ID, false))

	require.NoError(t, svc.Delete(ctx, spec.ID, true))
	_, err = svc.Get(ctx, spec.ID)
	assertKind(t, apierror.KindNotFound, err)

	got, err := types.Get(ctx, vt.ID)
	require.NoError(t, err)
	assert.Empty(t, got.QoSSpecsID)

	assertKind(t, apierror.KindNotFound, svc.Delete(ctx, spec.ID, false))

	// 删除后名称可以重新使用
	_, err = svc.Create(ctx, "gold", entity.Specs{})
	require.NoError(t, err)
}

func TestQoSSpecsService_List(t *testing.T) {
	t.Parallel()

	svc, _ := setupServices(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"a", "b", "c", "d"} {
		spec, err := svc.Create(ctx, name, entity.Specs{})
		require.NoError(t, err)
		ids = append(ids, spec.ID)
	}

	testcases := []struct {
		name   string
		query  string
		expect []string
	}{
		{name: "default desc", query: "", expect: []string{ids[3], ids[2], ids[1], ids[0]}},
		{name: "id asc", query: "sort=id:asc", expect: []string{ids[0], ids[1], ids[2], ids[3]}},
		{name: "limit and offset", query: "limit=2&offset=1", expect: []string{ids[2], ids[1]}},
		{name: "filter by name", query: "name=b", expect: []string{ids[1]}},
		{name: "offset beyond", query: "offset=10", expect: []string{}},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			query, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			req, err := pagination.Parse(query, pagination.Options{
				SortKeys:   []string{"id", "name", "consumer", "created_at"},
				FilterKeys: []string{"id", "name", "consumer"},
			})
			require.NoError(t, err)

			page, err := svc.List(ctx, req)
			require.NoError(t, err)
			got := make([]string, 0, len(page.List))
			for _, spec := range page.List {
				got = append(got, spec.ID)
			}
			assert.Equal(t, tc.expect, got)
		})
	}
}

func TestVolumeTypeService(t *testing.T) {
	t.Parallel()

	_, types := setupServices(t)
	ctx := context.Background()

	vt, err := types.EnsureDefault(ctx, "fake_vol_type")
	require.NoError(t, err)
	again, err := types.EnsureDefault(ctx, "fake_vol_type")
	require.NoError(t, err)
	assert.Equal(t, vt.ID, again.ID)

	_, err = types.Create(ctx, "fake_vol_type", "")
	assertKind(t, apierror.KindConflict, err)

	_, err = types.Create(ctx, "", "")
	assertKind(t, apierror.KindInvalidInput, err)

	_, err = types.Get(ctx, "vtype-missing")
	assertKind(t, apierror.KindNotFound, err)

	list, err := types.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
