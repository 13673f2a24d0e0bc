package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zylch/zylch-go/internal/config"
	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/internal/mock"
	"github.com/zylch/zylch-go/internal/utils"
	"github.com/zylch/zylch-go/models"
)

// stubBrowserFlow avoids opening a real browser in tests.
type stubBrowserFlow struct {
	session models.Session
	err     error
}

func (s *stubBrowserFlow) Login(context.Context) (models.Session, error) {
	return s.session, s.err
}

func sessionToken(t *testing.T, expiry time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "owner-1",
		ExpiresAt: jwt.NewNumericDate(expiry),
	}).SignedString([]byte("server-key"))
	require.NoError(t, err)
	return token
}

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller, flow browserLoginFlow) (*authService, *mock.MockRemoteGateway, string) {
	t.Helper()

	gateway := mock.NewMockRemoteGateway(ctrl)
	sessionPath := filepath.Join(t.TempDir(), "session.json")
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}

	svc := NewAuthService(gateway, flow, config.Session{FilePath: sessionPath}, clock, logger.Nop()).(*authService)
	return svc, gateway, sessionPath
}

func TestAuthLogin_ArmsGatewayAndPersists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	flow := &stubBrowserFlow{session: models.Session{
		Success: true,
		OwnerID: "owner-1",
		Email:   "ana@example.com",
		Token:   "jwt-token",
	}}
	svc, gateway, sessionPath := newTestAuthSvc(t, ctrl, flow)

	gateway.EXPECT().SetToken("jwt-token")

	session, err := svc.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", session.Email)

	persisted, err := config.LoadSession(sessionPath)
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", persisted.Token)
}

func TestAuthLogin_BrowserFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	flow := &stubBrowserFlow{err: errors.New("timed out")}
	svc, _, _ := newTestAuthSvc(t, ctrl, flow)

	_, err := svc.Login(context.Background())
	assert.Error(t, err)
}

func TestAuthRestore_ValidSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, gateway, sessionPath := newTestAuthSvc(t, ctrl, &stubBrowserFlow{})

	token := sessionToken(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, config.SaveSession(sessionPath, models.Session{
		Success: true,
		OwnerID: "owner-1",
		Email:   "ana@example.com",
		Token:   token,
	}))

	gateway.EXPECT().SetToken(token)

	session, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "owner-1", session.OwnerID)
}

func TestAuthRestore_ExpiredSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, sessionPath := newTestAuthSvc(t, ctrl, &stubBrowserFlow{})

	token := sessionToken(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, config.SaveSession(sessionPath, models.Session{Token: token}))

	_, err := svc.Restore(context.Background())
	assert.ErrorIs(t, err, utils.ErrTokenExpired)
}

func TestAuthRestore_NoPersistedSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl, &stubBrowserFlow{})

	_, err := svc.Restore(context.Background())
	assert.ErrorIs(t, err, config.ErrNoSession)
}

func TestAuthLogout_ClearsEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, gateway, sessionPath := newTestAuthSvc(t, ctrl, &stubBrowserFlow{})
	require.NoError(t, config.SaveSession(sessionPath, models.Session{Token: "jwt-token"}))

	gateway.EXPECT().SetToken("")

	require.NoError(t, svc.Logout(context.Background()))

	_, err := config.LoadSession(sessionPath)
	assert.ErrorIs(t, err, config.ErrNoSession)
}
