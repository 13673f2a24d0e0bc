package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/zylch/zylch-go/internal/config"
	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/models"
)

type httpRemoteGateway struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteGateway constructs an HTTP/REST implementation of
// [RemoteGateway]. It normalises and validates the base URL from cfg.URL and
// configures the underlying client with the resolved base URL and request
// timeout.
//
// Returns an error if cfg.URL is empty or cannot be parsed as a valid URL.
func NewHTTPRemoteGateway(cfg config.Server, logger *logger.Logger) (RemoteGateway, error) {
	baseURL, err := normalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpRemoteGateway{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteGateway]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpRemoteGateway) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteGateway].
func (h *httpRemoteGateway) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Health implements [RemoteGateway]. It GETs /api/health and decodes the
// status body.
func (h *httpRemoteGateway) Health(ctx context.Context) (models.HealthStatus, error) {
	var status models.HealthStatus

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&status).
		Get("/api/health")
	if err != nil {
		return models.HealthStatus{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthStatus{}, err
	}

	return status, nil
}

// Login implements [RemoteGateway]. It POSTs the credentials to
// POST /api/auth/session. On success the session token is stored via
// SetToken.
func (h *httpRemoteGateway) Login(ctx context.Context, email, password string) (models.Session, error) {
	var session models.Session

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&session).
		Post("/api/auth/session")
	if err != nil {
		return models.Session{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}
	if !session.Success || session.Token == "" {
		return models.Session{}, fmt.Errorf("%w: login rejected by server", ErrUnauthorized)
	}

	h.SetToken(session.Token)
	return session, nil
}

// Fetch implements [RemoteGateway]. It POSTs the fetch request to
// POST /api/sync/fetch and decodes the delta response.
func (h *httpRemoteGateway) Fetch(ctx context.Context, req models.FetchRequest) (models.FetchResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/sync/fetch")
	if err != nil {
		return models.FetchResponse{}, fmt.Errorf("fetch request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FetchResponse{}, err
	}

	var fetched models.FetchResponse
	if err = json.Unmarshal(resp.Body(), &fetched); err != nil {
		return models.FetchResponse{}, fmt.Errorf("decode fetch response: %w", err)
	}

	return fetched, nil
}

// ApplyModifier implements [RemoteGateway]. It POSTs the modifier to
// POST /api/modifiers/apply with the ClientID in the Idempotency-Key header
// so the server deduplicates retried submissions.
func (h *httpRemoteGateway) ApplyModifier(ctx context.Context, req models.ApplyRequest) (models.ApplyResult, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Idempotency-Key", req.ClientID).
		SetBody(req).
		Post("/api/modifiers/apply")
	if err != nil {
		return models.ApplyResult{}, fmt.Errorf("apply modifier request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ApplyResult{}, err
	}

	var result models.ApplyResult
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.ApplyResult{}, fmt.Errorf("decode apply result: %w", err)
	}

	return result, nil
}

func (h *httpRemoteGateway) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
