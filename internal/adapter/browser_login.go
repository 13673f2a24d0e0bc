package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zylch/zylch-go/internal/config"
	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/models"
)

// ErrLoginTimedOut is returned when the browser redirect does not arrive
// before the configured login timeout.
var ErrLoginTimedOut = errors.New("browser login timed out")

// BrowserLogin performs the interactive login flow: it binds a localhost
// callback listener, opens the server's login page in the user's browser, and
// waits for the server to redirect the browser back with the session.
type BrowserLogin struct {
	serverURL    string
	callbackPort int
	loginTimeout time.Duration

	// openURL is swapped out in tests.
	openURL func(url string) error

	logger *logger.Logger
}

// NewBrowserLogin constructs the flow from the server configuration.
func NewBrowserLogin(cfg config.Server, logger *logger.Logger) (*BrowserLogin, error) {
	baseURL, err := normalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	timeout := cfg.LoginTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &BrowserLogin{
		serverURL:    baseURL,
		callbackPort: cfg.CallbackPort,
		loginTimeout: timeout,
		openURL:      openBrowser,
		logger:       logger,
	}, nil
}

// Login runs the flow to completion. It blocks until the callback arrives,
// ctx is cancelled, or the login timeout elapses.
func (b *BrowserLogin) Login(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	listener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(b.callbackPort)))
	if err != nil {
		return models.Session{}, fmt.Errorf("bind login callback listener: %w", err)
	}

	sessions := make(chan models.Session, 1)

	router := chi.NewRouter()
	router.Get("/callback", func(w http.ResponseWriter, r *http.Request) {
		session := models.Session{
			Success: r.URL.Query().Get("success") == "true",
			OwnerID: r.URL.Query().Get("owner_id"),
			Email:   r.URL.Query().Get("email"),
			Token:   r.URL.Query().Get("token"),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if session.Success && session.Token != "" {
			fmt.Fprint(w, "<html><body>Login complete. You can close this tab and return to the terminal.</body></html>")
		} else {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, "<html><body>Login failed. Return to the terminal and try again.</body></html>")
		}

		select {
		case sessions <- session:
		default:
		}
	})

	server := &http.Server{Handler: router}
	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			log.Err(serveErr).
				Str("func", "BrowserLogin.Login").
				Msg("login callback server stopped unexpectedly")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	port := listener.Addr().(*net.TCPAddr).Port
	loginURL := fmt.Sprintf("%s/auth/cli?port=%d", b.serverURL, port)
	log.Info().
		Str("func", "BrowserLogin.Login").
		Str("url", loginURL).
		Msg("opening browser for login")

	if err = b.openURL(loginURL); err != nil {
		log.Warn().
			Err(err).
			Str("func", "BrowserLogin.Login").
			Str("url", loginURL).
			Msg("could not open browser, open the url manually")
	}

	timer := time.NewTimer(b.loginTimeout)
	defer timer.Stop()

	select {
	case session := <-sessions:
		if !session.Success || session.Token == "" {
			return models.Session{}, fmt.Errorf("%w: login rejected", ErrUnauthorized)
		}
		return session, nil
	case <-timer.C:
		return models.Session{}, ErrLoginTimedOut
	case <-ctx.Done():
		return models.Session{}, ctx.Err()
	}
}

// CallbackURL returns the redirect target the server sends the browser to.
func (b *BrowserLogin) CallbackURL() string {
	return (&url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort("127.0.0.1", strconv.Itoa(b.callbackPort)),
		Path:   "/callback",
	}).String()
}

func openBrowser(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}
