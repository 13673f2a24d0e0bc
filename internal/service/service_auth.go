package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zylch/zylch-go/internal/adapter"
	"github.com/zylch/zylch-go/internal/config"
	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/internal/utils"
	"github.com/zylch/zylch-go/models"
)

// browserLoginFlow is implemented by [adapter.BrowserLogin]; the indirection
// exists for tests.
type browserLoginFlow interface {
	Login(ctx context.Context) (models.Session, error)
}

type authService struct {
	gateway     adapter.RemoteGateway
	browser     browserLoginFlow
	sessionPath string
	clock       Clock
	logger      *logger.Logger
}

// NewAuthService wires session management over the gateway and the browser
// login flow.
func NewAuthService(gateway adapter.RemoteGateway, browser browserLoginFlow, cfg config.Session, clock Clock, logger *logger.Logger) AuthService {
	return &authService{
		gateway:     gateway,
		browser:     browser,
		sessionPath: cfg.FilePath,
		clock:       clock,
		logger:      logger,
	}
}

func (a *authService) Login(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	session, err := a.browser.Login(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("browser login: %w", err)
	}

	a.gateway.SetToken(session.Token)

	if err = config.SaveSession(a.sessionPath, session); err != nil {
		// The session works for this run even if persisting it failed.
		log.Warn().
			Err(err).
			Str("func", "authService.Login").
			Msg("could not persist session, login will not survive restart")
	}

	log.Info().
		Str("func", "authService.Login").
		Str("email", session.Email).
		Msg("logged in")

	return session, nil
}

func (a *authService) Restore(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	session, err := config.LoadSession(a.sessionPath)
	if err != nil {
		return models.Session{}, err
	}

	if _, err = utils.CheckTokenStatus(session.Token, a.clock.Now()); err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			log.Info().
				Str("func", "authService.Restore").
				Str("email", session.Email).
				Msg("persisted session expired, re-login required")
		}
		return models.Session{}, err
	}

	a.gateway.SetToken(session.Token)

	log.Debug().
		Str("func", "authService.Restore").
		Str("email", session.Email).
		Msg("session restored")

	return session, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.gateway.SetToken("")
	return config.ClearSession(a.sessionPath)
}

func (a *authService) TokenExpiry() (time.Time, error) {
	token := a.gateway.Token()
	if token == "" {
		return time.Time{}, config.ErrNoSession
	}
	return utils.CheckTokenStatus(token, a.clock.Now())
}
