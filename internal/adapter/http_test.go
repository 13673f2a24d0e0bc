package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zylch/zylch-go/internal/config"
	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/models"
)

func newTestGateway(t *testing.T, serverURL string) *httpRemoteGateway {
	t.Helper()

	g, err := NewHTTPRemoteGateway(config.Server{URL: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return g.(*httpRemoteGateway)
}

// ── Health ──────────────────────────────────────────────────────────────────

func TestHealth_Healthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/health", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.HealthStatus{Status: "healthy"})
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	status, err := g.Health(context.Background())

	require.NoError(t, err)
	assert.True(t, status.Healthy())
}

func TestHealth_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.Health(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/session", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ana@example.com", creds["email"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Session{
			Success: true,
			OwnerID: "owner-1",
			Email:   "ana@example.com",
			Token:   "jwt-token",
		})
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	session, err := g.Login(context.Background(), "ana@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "owner-1", session.OwnerID)
	assert.Equal(t, "jwt-token", g.Token())
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad credentials"))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.Login(context.Background(), "ana@example.com", "wrong")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, g.Token())
}

// ── Fetch ───────────────────────────────────────────────────────────────────

func TestFetch_SendsCursorAndBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/fetch", r.URL.Path)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))

		var req models.FetchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.CollectionContacts, req.Collection)
		assert.Equal(t, "cursor-41", req.Cursor)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.FetchResponse{
			Items: []models.RemoteItem{
				{RemoteID: "c-100", Payload: []byte(`{"name":"Ana"}`), Version: 3},
			},
			NextCursor: "cursor-42",
		})
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetToken("jwt-token")

	fetched, err := g.Fetch(context.Background(), models.FetchRequest{
		Collection: models.CollectionContacts,
		Cursor:     "cursor-41",
	})

	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "c-100", fetched.Items[0].RemoteID)
	assert.Equal(t, "cursor-42", fetched.NextCursor)
}

func TestFetch_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.Fetch(context.Background(), models.FetchRequest{Collection: models.CollectionEmail})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── ApplyModifier ───────────────────────────────────────────────────────────

func TestApplyModifier_SendsIdempotencyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/modifiers/apply", r.URL.Path)
		assert.Equal(t, "mod-1", r.Header.Get("Idempotency-Key"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ApplyResult{
			Success:  true,
			RemoteID: "c-200",
			Payload:  []byte(`{"name":"Ana"}`),
			Version:  1,
		})
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetToken("jwt-token")

	result, err := g.ApplyModifier(context.Background(), models.ApplyRequest{
		ClientID:   "mod-1",
		Kind:       models.ModifierCreate,
		Collection: models.CollectionContacts,
		Payload:    []byte(`{"name":"Ana"}`),
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "c-200", result.RemoteID)
}

func TestApplyModifier_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("version mismatch"))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.ApplyModifier(context.Background(), models.ApplyRequest{ClientID: "mod-1"})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestApplyModifier_ValidationRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("missing contact name"))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.ApplyModifier(context.Background(), models.ApplyRequest{ClientID: "mod-1"})

	assert.ErrorIs(t, err, ErrUnprocessable)
	assert.Contains(t, err.Error(), "missing contact name")
}

// ── base URL normalisation ──────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare host", in: "localhost:9000", want: "http://localhost:9000"},
		{name: "trailing slash", in: "http://localhost:9000/", want: "http://localhost:9000"},
		{name: "https kept", in: "https://api.example.com", want: "https://api.example.com"},
		{name: "empty", in: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
