package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zylch/zylch-go/internal/config"
	"github.com/zylch/zylch-go/internal/logger"
)

func newTestBrowserLogin(t *testing.T, timeout time.Duration) *BrowserLogin {
	t.Helper()

	flow, err := NewBrowserLogin(config.Server{
		URL:          "http://localhost:9000",
		CallbackPort: 0, // ephemeral port, the flow reads the bound one
		LoginTimeout: timeout,
	}, logger.Nop())
	require.NoError(t, err)
	return flow
}

func TestBrowserLogin_Success(t *testing.T) {
	flow := newTestBrowserLogin(t, 5*time.Second)

	// Stand in for the browser: follow the login URL's port back to the
	// callback listener with a successful session.
	flow.openURL = func(loginURL string) error {
		u, err := url.Parse(loginURL)
		if err != nil {
			return err
		}
		port := u.Query().Get("port")

		go func() {
			callback := fmt.Sprintf(
				"http://127.0.0.1:%s/callback?success=true&owner_id=owner-1&email=ana@example.com&token=jwt-token",
				port,
			)
			resp, getErr := http.Get(callback)
			if getErr == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}

	session, err := flow.Login(context.Background())

	require.NoError(t, err)
	assert.True(t, session.Success)
	assert.Equal(t, "owner-1", session.OwnerID)
	assert.Equal(t, "jwt-token", session.Token)
}

func TestBrowserLogin_Rejected(t *testing.T) {
	flow := newTestBrowserLogin(t, 5*time.Second)

	flow.openURL = func(loginURL string) error {
		u, err := url.Parse(loginURL)
		if err != nil {
			return err
		}
		port := u.Query().Get("port")

		go func() {
			resp, getErr := http.Get(fmt.Sprintf("http://127.0.0.1:%s/callback?success=false", port))
			if getErr == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}

	_, err := flow.Login(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestBrowserLogin_Timeout(t *testing.T) {
	flow := newTestBrowserLogin(t, 50*time.Millisecond)
	flow.openURL = func(string) error { return nil }

	_, err := flow.Login(context.Background())
	assert.ErrorIs(t, err, ErrLoginTimedOut)
}
