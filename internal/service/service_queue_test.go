package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/internal/mock"
	"github.com/zylch/zylch-go/internal/store"
	"github.com/zylch/zylch-go/internal/utils"
	"github.com/zylch/zylch-go/models"
)

func newTestQueueSvc(t *testing.T, ctrl *gomock.Controller) (*queueService, syncMocks) {
	t.Helper()

	m := syncMocks{
		cache:   mock.NewMockCacheRepository(ctrl),
		mods:    mock.NewMockModifierRepository(ctrl),
		cursors: mock.NewMockCursorRepository(ctrl),
		clock:   &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
	}

	storages := &store.Storages{
		Cache:     m.cache,
		Modifiers: m.mods,
		Cursors:   m.cursors,
	}

	svc := &queueService{
		storages: storages,
		uuids:    utils.NewUUIDGenerator(),
		clock:    m.clock,
		logger:   logger.Nop(),
	}
	return svc, m
}

func TestEnqueueCreate_QueuesAndMaterialisesRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestQueueSvc(t, ctrl)
	ctx := context.Background()
	payload := []byte(`{"name":"Ana","phone":"555-0101"}`)

	var queued models.Modifier
	m.mods.EXPECT().Insert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, mod models.Modifier) error {
			queued = mod
			return nil
		})
	m.cache.EXPECT().Upsert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.CacheRecord) error {
			// Read-your-writes: the record is keyed by the modifier's
			// idempotency key until the server assigns a remote id.
			assert.Equal(t, queued.ClientID, record.ClientID)
			assert.Empty(t, record.RemoteID)
			assert.JSONEq(t, string(payload), string(record.Payload))
			return nil
		})

	created, err := svc.EnqueueCreate(ctx, models.CollectionContacts, payload)

	require.NoError(t, err)
	assert.NotEmpty(t, created.ClientID)
	assert.Equal(t, models.ModifierCreate, created.Kind)
	assert.Equal(t, models.ModifierPending, created.State)
	assert.Equal(t, m.clock.now, created.EnqueuedAt)
}

func TestEnqueueCreate_RequiresPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestQueueSvc(t, ctrl)

	_, err := svc.EnqueueCreate(context.Background(), models.CollectionContacts, nil)
	assert.ErrorIs(t, err, ErrInvalidModifier)
}

func TestEnqueueCreate_RejectsUnknownCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestQueueSvc(t, ctrl)

	_, err := svc.EnqueueCreate(context.Background(), "bookmarks", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestEnqueueUpdate_OverlaysCachedRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestQueueSvc(t, ctrl)
	ctx := context.Background()
	newPayload := []byte(`{"name":"Ana Updated"}`)

	m.mods.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	m.cache.EXPECT().Get(ctx, models.CollectionContacts, "c-100").
		Return(models.CacheRecord{
			Collection: models.CollectionContacts,
			RemoteID:   "c-100",
			Payload:    []byte(`{"name":"Ana"}`),
			Version:    3,
		}, nil)
	m.cache.EXPECT().Upsert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.CacheRecord) error {
			assert.JSONEq(t, string(newPayload), string(record.Payload))
			assert.Equal(t, int64(3), record.Version)
			return nil
		})

	queued, err := svc.EnqueueUpdate(ctx, models.CollectionContacts, "c-100", newPayload)

	require.NoError(t, err)
	assert.Equal(t, "c-100", queued.TargetRemoteID)
	assert.Equal(t, "c-100", queued.DispatchTarget())
}

func TestEnqueueUpdate_TargetsPendingCreatePlaceholder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	m.mods.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	m.cache.EXPECT().Get(ctx, models.CollectionContacts, "placeholder-1").
		Return(models.CacheRecord{}, store.ErrRecordNotFound)
	m.cache.EXPECT().GetByClientID(ctx, models.CollectionContacts, "placeholder-1").
		Return(models.CacheRecord{Collection: models.CollectionContacts, ClientID: "placeholder-1", Payload: []byte(`{"name":"Ana"}`)}, nil)
	m.cache.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)

	queued, err := svc.EnqueueUpdate(ctx, models.CollectionContacts, "placeholder-1", []byte(`{"name":"Ana B"}`))

	require.NoError(t, err)
	assert.Equal(t, "placeholder-1", queued.TargetRemoteID)
}

func TestEnqueueDelete_TombstonesOptimistically(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	m.mods.EXPECT().Get(ctx, "c-100").Return(models.Modifier{}, store.ErrModifierNotFound)
	m.mods.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	m.cache.EXPECT().Tombstone(ctx, models.CollectionContacts, "c-100", m.clock.now).Return(nil)

	queued, err := svc.EnqueueDelete(ctx, models.CollectionContacts, "c-100")

	require.NoError(t, err)
	assert.Equal(t, models.ModifierDelete, queued.Kind)
	assert.Equal(t, "c-100", queued.TargetRemoteID)
}

func TestEnqueueDelete_CollapsesPendingCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	create := models.Modifier{
		ClientID:   "placeholder-1",
		Kind:       models.ModifierCreate,
		Collection: models.CollectionContacts,
		State:      models.ModifierPending,
	}
	chainedUpdate := models.Modifier{
		ClientID:       "mod-2",
		Kind:           models.ModifierUpdate,
		Collection:     models.CollectionContacts,
		TargetRemoteID: "placeholder-1",
		State:          models.ModifierPending,
	}

	m.mods.EXPECT().Get(ctx, "placeholder-1").Return(create, nil)
	m.mods.EXPECT().PeekPending(ctx, models.CollectionContacts).
		Return([]models.Modifier{create, chainedUpdate}, nil)
	m.mods.EXPECT().Delete(ctx, "mod-2").Return(nil)
	m.mods.EXPECT().Delete(ctx, "placeholder-1").Return(nil)
	m.cache.EXPECT().DeleteByClientID(ctx, models.CollectionContacts, "placeholder-1").Return(nil)
	// No Insert and no Tombstone: nothing ever reaches the server.

	queued, err := svc.EnqueueDelete(ctx, models.CollectionContacts, "placeholder-1")

	require.NoError(t, err)
	assert.Empty(t, queued.ClientID)
}

func TestEnqueueDelete_DoesNotCollapseInFlightCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	inFlightCreate := models.Modifier{
		ClientID:   "placeholder-1",
		Kind:       models.ModifierCreate,
		Collection: models.CollectionContacts,
		State:      models.ModifierInFlight,
	}

	// The create's outcome is unknown, so the delete queues behind it.
	m.mods.EXPECT().Get(ctx, "placeholder-1").Return(inFlightCreate, nil)
	m.mods.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	m.cache.EXPECT().Tombstone(ctx, models.CollectionContacts, "placeholder-1", m.clock.now).
		Return(store.ErrRecordNotFound)

	queued, err := svc.EnqueueDelete(ctx, models.CollectionContacts, "placeholder-1")

	require.NoError(t, err)
	assert.NotEmpty(t, queued.ClientID)
}

func TestGet_FallsBackToPlaceholderLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	m.cache.EXPECT().Get(ctx, models.CollectionEmail, "placeholder-1").
		Return(models.CacheRecord{}, store.ErrRecordNotFound)
	m.cache.EXPECT().GetByClientID(ctx, models.CollectionEmail, "placeholder-1").
		Return(models.CacheRecord{Collection: models.CollectionEmail, ClientID: "placeholder-1"}, nil)

	record, err := svc.Get(ctx, models.CollectionEmail, "placeholder-1")

	require.NoError(t, err)
	assert.True(t, record.PendingCreate())
}

func TestDiscard_DropsCreateAndItsRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	m.mods.EXPECT().Get(ctx, "mod-1").
		Return(models.Modifier{ClientID: "mod-1", Kind: models.ModifierCreate, Collection: models.CollectionCalendar}, nil)
	m.mods.EXPECT().Delete(ctx, "mod-1").Return(nil)
	m.cache.EXPECT().DeleteByClientID(ctx, models.CollectionCalendar, "mod-1").Return(nil)

	require.NoError(t, svc.Discard(ctx, "mod-1"))
}

func TestStats_CombinesRecordsAndQueueDepth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestQueueSvc(t, ctrl)
	ctx := context.Background()

	m.cache.EXPECT().Stats(ctx).Return(map[models.Collection]int64{
		models.CollectionEmail:    12,
		models.CollectionContacts: 4,
	}, nil)
	m.mods.EXPECT().Counts(ctx).Return(int64(3), int64(1), nil)

	stats, err := svc.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.Records[models.CollectionEmail])
	assert.Equal(t, int64(3), stats.Pending)
	assert.Equal(t, int64(1), stats.Failed)
}
