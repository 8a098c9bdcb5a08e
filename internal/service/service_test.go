package service_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	authmocks "github.com/coccyx/gogen-api/internal/auth/mocks"
	legacymocks "github.com/coccyx/gogen-api/internal/legacy/mocks"
	"github.com/coccyx/gogen-api/internal/registry"
	"github.com/coccyx/gogen-api/internal/service"
	"github.com/coccyx/gogen-api/internal/store"
	storemocks "github.com/coccyx/gogen-api/internal/store/mocks"
)

type deps struct {
	items  *storemocks.MockItemStore
	blobs  *storemocks.MockBlobStore
	tokens *authmocks.MockTokenValidator
	docs   *legacymocks.MockDocumentProvider
}

func newService(t *testing.T) (service.RegistryService, deps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := deps{
		items:  storemocks.NewMockItemStore(ctrl),
		blobs:  storemocks.NewMockBlobStore(ctrl),
		tokens: authmocks.NewMockTokenValidator(ctrl),
		docs:   legacymocks.NewMockDocumentProvider(ctrl),
	}
	svc, err := service.New(d.items, d.blobs, d.tokens, d.docs)
	require.NoError(t, err)
	return svc, d
}

func TestNew_RequiresAllDependencies(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	items := storemocks.NewMockItemStore(ctrl)
	blobs := storemocks.NewMockBlobStore(ctrl)
	tokens := authmocks.NewMockTokenValidator(ctrl)
	docs := legacymocks.NewMockDocumentProvider(ctrl)

	_, err := service.New(nil, blobs, tokens, docs)
	require.Error(t, err)
	_, err = service.New(items, nil, tokens, docs)
	require.Error(t, err)
	_, err = service.New(items, blobs, nil, docs)
	require.Error(t, err)
	_, err = service.New(items, blobs, tokens, nil)
	require.Error(t, err)
}

func TestGet_BlobBackedProfile(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	d.items.EXPECT().Get(ctx, "alice/demo").Return(&registry.Profile{
		Gogen:  "alice/demo",
		S3Path: "alice/demo.yml",
	}, nil)
	d.blobs.EXPECT().Download(ctx, "alice/demo.yml").Return("key: value\n", nil)

	p, err := svc.Get(ctx, "alice/demo")
	require.NoError(t, err)
	assert.Equal(t, "key: value\n", p.Config)
	assert.Equal(t, "alice/demo", p.Gogen)
}

func TestGet_LegacyBackedProfile(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	d.items.EXPECT().Get(ctx, "bob/old").Return(&registry.Profile{
		Gogen:  "bob/old",
		GistID: "abc123",
	}, nil)
	d.docs.EXPECT().FirstPart(ctx, "abc123").Return("legacy: config\n", nil)

	p, err := svc.Get(ctx, "bob/old")
	require.NoError(t, err)
	assert.Equal(t, "legacy: config\n", p.Config)
}

func TestGet_BlobShadowsLegacyReference(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	// Both pointers set: only the blob store may be consulted.
	d.items.EXPECT().Get(ctx, "alice/demo").Return(&registry.Profile{
		Gogen:  "alice/demo",
		S3Path: "alice/demo.yml",
		GistID: "abc123",
	}, nil)
	d.blobs.EXPECT().Download(ctx, "alice/demo.yml").Return("blob wins", nil)

	p, err := svc.Get(ctx, "alice/demo")
	require.NoError(t, err)
	assert.Equal(t, "blob wins", p.Config)
}

func TestGet_NoLocationRecorded(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	d.items.EXPECT().Get(ctx, "nobody/empty").Return(&registry.Profile{
		Gogen: "nobody/empty",
	}, nil)

	_, err := svc.Get(ctx, "nobody/empty")
	require.ErrorIs(t, err, registry.ErrConfigMissing)
}

func TestGet_UnknownProfile(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	d.items.EXPECT().Get(ctx, "nobody/missing").Return(nil, registry.ErrNotFound)

	_, err := svc.Get(ctx, "nobody/missing")
	require.ErrorIs(t, err, registry.ErrNotFound)
}

func TestGet_ResolverFailurePropagates(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	d.items.EXPECT().Get(ctx, "alice/demo").Return(&registry.Profile{
		Gogen:  "alice/demo",
		S3Path: "alice/demo.yml",
	}, nil)
	d.blobs.EXPECT().Download(ctx, "alice/demo.yml").
		Return("", registry.ErrUpstreamInconsistent)

	_, err := svc.Get(ctx, "alice/demo")
	require.ErrorIs(t, err, registry.ErrUpstreamInconsistent)
}

func TestList_FollowsContinuationTokens(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	next := store.Cursor{"gogen": &types.AttributeValueMemberS{Value: "m"}}
	d.items.EXPECT().ScanPage(ctx, store.ScanRequest{}).Return(store.ScanResult{
		Items:   []registry.Summary{{Gogen: "a"}, {Gogen: "m"}},
		NextKey: next,
	}, nil)
	d.items.EXPECT().ScanPage(ctx, store.ScanRequest{StartKey: next}).Return(store.ScanResult{
		Items: []registry.Summary{{Gogen: "z"}},
	}, nil)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []registry.Summary{{Gogen: "a"}, {Gogen: "m"}, {Gogen: "z"}}, got)
}

func TestList_EmptyStoreYieldsEmptySlice(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	d.items.EXPECT().ScanPage(ctx, store.ScanRequest{}).Return(store.ScanResult{}, nil)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_PageFailureDiscardsPartialResults(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	next := store.Cursor{"gogen": &types.AttributeValueMemberS{Value: "m"}}
	d.items.EXPECT().ScanPage(ctx, store.ScanRequest{}).Return(store.ScanResult{
		Items:   []registry.Summary{{Gogen: "a"}},
		NextKey: next,
	}, nil)
	d.items.EXPECT().ScanPage(ctx, store.ScanRequest{StartKey: next}).
		Return(store.ScanResult{}, registry.ErrUpstreamUnavailable)

	got, err := svc.List(ctx)
	require.ErrorIs(t, err, registry.ErrUpstreamUnavailable)
	assert.Nil(t, got)
}

func TestSearch_PassesQueryToEveryPage(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	next := store.Cursor{"gogen": &types.AttributeValueMemberS{Value: "m"}}
	d.items.EXPECT().ScanPage(ctx, store.ScanRequest{Query: "web"}).Return(store.ScanResult{
		Items:   []registry.Summary{{Gogen: "weblog"}},
		NextKey: next,
	}, nil)
	d.items.EXPECT().ScanPage(ctx, store.ScanRequest{StartKey: next, Query: "web"}).
		Return(store.ScanResult{
			Items: []registry.Summary{{Gogen: "webapp", Description: "web traffic"}},
		}, nil)

	got, err := svc.Search(ctx, "web")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearch_EmptyQueryRejectedWithoutScanning(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	_, err := svc.Search(context.Background(), "")
	require.ErrorIs(t, err, registry.ErrInvalidInput)
}

func TestUpsert_NoCredential(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	err := svc.Upsert(context.Background(), registry.Profile{Gogen: "alice/demo"}, "")
	require.ErrorIs(t, err, registry.ErrAuthRequired)
}

func TestUpsert_InvalidCredentialTouchesNoStore(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	d.tokens.EXPECT().Validate(ctx, "token bad").Return(registry.ErrAuthInvalid)

	err := svc.Upsert(ctx, registry.Profile{Gogen: "alice/demo", Config: "x"}, "token bad")
	require.ErrorIs(t, err, registry.ErrAuthInvalid)
}

func TestUpsert_EmptyProfile(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	d.tokens.EXPECT().Validate(ctx, "token ok").Return(nil)

	err := svc.Upsert(ctx, registry.Profile{}, "token ok")
	require.ErrorIs(t, err, registry.ErrInvalidInput)
}

func TestUpsert_MissingID(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	d.tokens.EXPECT().Validate(ctx, "token ok").Return(nil)

	err := svc.Upsert(ctx, registry.Profile{Description: "no id"}, "token ok")
	require.ErrorIs(t, err, registry.ErrInvalidInput)
}

func TestUpsert_ConfigWithoutOwnerOrName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		profile registry.Profile
	}{
		{
			name:    "missing owner",
			profile: registry.Profile{Gogen: "alice/demo", Name: "demo", Config: "x"},
		},
		{
			name:    "missing name",
			profile: registry.Profile{Gogen: "alice/demo", Owner: "alice", Config: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, d := newService(t)
			ctx := context.Background()

			d.tokens.EXPECT().Validate(ctx, "token ok").Return(nil)

			err := svc.Upsert(ctx, tt.profile, "token ok")
			require.ErrorIs(t, err, registry.ErrInvalidInput)
		})
	}
}

func TestUpsert_ConfigUploadedThenRecordWritten(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	d.tokens.EXPECT().Validate(ctx, "token ok").Return(nil)
	d.blobs.EXPECT().Upload(ctx, "alice/demo.yml", "key: value\n").Return(nil)
	d.items.EXPECT().Put(ctx, registry.Profile{
		Gogen:  "alice/demo",
		Owner:  "alice",
		Name:   "demo",
		S3Path: "alice/demo.yml",
	}).Return(nil)

	err := svc.Upsert(ctx, registry.Profile{
		Gogen:  "alice/demo",
		Owner:  "alice",
		Name:   "demo",
		Config: "key: value\n",
		GistID: "abc123", // must be cleared once the config lives in the blob store
	}, "token ok")
	require.NoError(t, err)
}

func TestUpsert_UploadFailureNeverWritesRecord(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	d.tokens.EXPECT().Validate(ctx, "token ok").Return(nil)
	d.blobs.EXPECT().Upload(ctx, "alice/demo.yml", "key: value\n").
		Return(registry.ErrUpstreamUnavailable)

	err := svc.Upsert(ctx, registry.Profile{
		Gogen:  "alice/demo",
		Owner:  "alice",
		Name:   "demo",
		Config: "key: value\n",
	}, "token ok")
	require.ErrorIs(t, err, registry.ErrUpstreamUnavailable)
}

func TestUpsert_DirectBlobPathStripsLegacyReference(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	// No inline config: the caller sets the blob path directly. The stored
	// record still must not keep both location fields.
	d.tokens.EXPECT().Validate(ctx, "token ok").Return(nil)
	d.items.EXPECT().Put(ctx, registry.Profile{
		Gogen:  "alice/demo",
		S3Path: "alice/demo.yml",
	}).Return(nil)

	err := svc.Upsert(ctx, registry.Profile{
		Gogen:  "alice/demo",
		S3Path: "alice/demo.yml",
		GistID: "abc123",
	}, "token ok")
	require.NoError(t, err)
}

func TestUpsert_MetadataOnlySkipsBlobStore(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	ctx := context.Background()

	p := registry.Profile{Gogen: "alice/demo", Description: "new description"}
	d.tokens.EXPECT().Validate(ctx, "token ok").Return(nil)
	d.items.EXPECT().Put(ctx, p).Return(nil)

	require.NoError(t, svc.Upsert(ctx, p, "token ok"))
}
