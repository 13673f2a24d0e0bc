package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/internal/mock"
	"github.com/zylch/zylch-go/internal/service"
	"github.com/zylch/zylch-go/internal/store"
	"github.com/zylch/zylch-go/models"
)

type cliMocks struct {
	queue *mock.MockQueueService
	sync  *mock.MockSyncService
	auth  *mock.MockAuthService
}

// newTestCLI wires the command loop to a canned script and captures output.
func newTestCLI(t *testing.T, ctrl *gomock.Controller, script string) (*CLI, *bytes.Buffer, cliMocks) {
	t.Helper()

	m := cliMocks{
		queue: mock.NewMockQueueService(ctrl),
		sync:  mock.NewMockSyncService(ctrl),
		auth:  mock.NewMockAuthService(ctrl),
	}

	out := &bytes.Buffer{}
	c := &CLI{
		services: &service.Services{Queue: m.queue, Sync: m.sync, Auth: m.auth},
		in:       strings.NewReader(script),
		out:      out,
		copyText: func(string) error { return nil },
		logger:   logger.Nop(),
	}
	return c, out, m
}

func TestRun_QuitExitsWithoutLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, _, _ := newTestCLI(t, ctrl, "quit\n")

	logout, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.False(t, logout)
}

func TestRun_LogoutClearsSessionAndReportsLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, out, m := newTestCLI(t, ctrl, "logout\n")
	m.auth.EXPECT().Logout(gomock.Any()).Return(nil)

	logout, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, logout)
	assert.Contains(t, out.String(), "Logged out.")
}

func TestRun_SyncReportsAuthExpiryWithoutFailing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, out, m := newTestCLI(t, ctrl, "sync\nquit\n")
	m.sync.EXPECT().Sync(gomock.Any()).Return(service.ErrAuthRequired)

	_, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Session expired")
}

func TestRun_UnknownCommandKeepsLoopAlive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, out, m := newTestCLI(t, ctrl, "frobnicate\nsync\nquit\n")
	m.sync.EXPECT().Sync(gomock.Any()).Return(nil)

	_, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "unknown command")
	assert.Contains(t, out.String(), "Sync finished.")
}

func TestRun_StatusPrintsCountsAndSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, out, m := newTestCLI(t, ctrl, "status\nquit\n")
	m.queue.EXPECT().Stats(gomock.Any()).Return(models.CacheStats{
		Records: map[models.Collection]int64{models.CollectionEmail: 7},
		Pending: 2,
		Failed:  1,
	}, nil)
	m.auth.EXPECT().TokenExpiry().
		Return(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), nil)

	_, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "email")
	assert.Contains(t, out.String(), "2 pending, 1 failed")
	assert.Contains(t, out.String(), "Session: active until")
}

func TestRun_ListMarksLocalAndDeletedRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, out, m := newTestCLI(t, ctrl, "list contacts all\nquit\n")
	m.queue.EXPECT().List(gomock.Any(), models.CollectionContacts, store.ListFilter{IncludeTombstoned: true}).
		Return([]models.CacheRecord{
			{Collection: models.CollectionContacts, RemoteID: "c-100", Version: 3},
			{Collection: models.CollectionContacts, ClientID: "placeholder-1"},
			{Collection: models.CollectionContacts, RemoteID: "c-200", Tombstoned: true},
		}, nil)

	_, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "c-100")
	assert.Contains(t, out.String(), "placeholder-1 (local)")
	assert.Contains(t, out.String(), "deleted")
}

func TestRun_AddQueuesCreateWithRawPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, out, m := newTestCLI(t, ctrl, `add contacts {"name":"Ana Q"}`+"\nquit\n")
	m.queue.EXPECT().EnqueueCreate(gomock.Any(), models.CollectionContacts, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.Collection, payload json.RawMessage) (models.Modifier, error) {
			assert.JSONEq(t, `{"name":"Ana Q"}`, string(payload))
			return models.Modifier{ClientID: "mod-1"}, nil
		})

	_, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Queued create mod-1")
}

func TestRun_EditQueuesUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, out, m := newTestCLI(t, ctrl, `edit contacts c-100 {"name":"Ana B"}`+"\nquit\n")
	m.queue.EXPECT().EnqueueUpdate(gomock.Any(), models.CollectionContacts, "c-100", gomock.Any()).
		Return(models.Modifier{ClientID: "mod-2"}, nil)

	_, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Queued update mod-2")
}

func TestRun_RemoveCollapsedCreateExplainsNothingSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, out, m := newTestCLI(t, ctrl, "rm contacts placeholder-1\nquit\n")
	m.queue.EXPECT().EnqueueDelete(gomock.Any(), models.CollectionContacts, "placeholder-1").
		Return(models.Modifier{}, nil)

	_, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "nothing to send")
}

func TestRun_CopyPutsPayloadOnClipboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, out, m := newTestCLI(t, ctrl, "copy email e-1\nquit\n")

	var copied string
	c.copyText = func(text string) error {
		copied = text
		return nil
	}
	m.queue.EXPECT().Get(gomock.Any(), models.CollectionEmail, "e-1").
		Return(models.CacheRecord{RemoteID: "e-1", Payload: []byte(`{"subject":"hi"}`)}, nil)

	_, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.JSONEq(t, `{"subject":"hi"}`, copied)
	assert.Contains(t, out.String(), "Copied to clipboard.")
}

func TestRun_FailedShowsLastError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, out, m := newTestCLI(t, ctrl, "failed\nretry mod-9\nquit\n")
	m.queue.EXPECT().Failed(gomock.Any()).Return([]models.Modifier{{
		ClientID:   "mod-9",
		Kind:       models.ModifierUpdate,
		Collection: models.CollectionCalendar,
		State:      models.ModifierFailed,
		Attempts:   5,
		LastError:  "409 version conflict",
	}}, nil)
	m.queue.EXPECT().Retry(gomock.Any(), "mod-9").Return(nil)

	_, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "409 version conflict")
	assert.Contains(t, out.String(), "Re-armed for the next sync.")
}

func TestRun_ServiceErrorIsPrintedNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, out, m := newTestCLI(t, ctrl, "show contacts c-404\nquit\n")
	m.queue.EXPECT().Get(gomock.Any(), models.CollectionContacts, "c-404").
		Return(models.CacheRecord{}, store.ErrRecordNotFound)

	_, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "error: "+store.ErrRecordNotFound.Error())
}

func TestLoginFlow_ReportsSignedInEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, out, m := newTestCLI(t, ctrl, "")
	m.auth.EXPECT().Login(gomock.Any()).
		Return(models.Session{Success: true, Email: "ana@example.com", Token: "jwt"}, nil)

	session, err := c.LoginFlow(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", session.Email)
	assert.Contains(t, out.String(), "Signed in as ana@example.com")
}
