package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/commerce-console/internal/config"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/internal/store"
	"github.com/MKhiriev/commerce-console/internal/utils"
	"github.com/MKhiriev/commerce-console/models"
)

const (
	// HeaderCorrelationID carries the per-request correlation id.
	HeaderCorrelationID = "X-Correlation-ID"

	refreshPath  = "/api/auth/refresh"
	authPathPart = "/auth/"
)

// Client is the authenticated HTTP transport shared by every backend API.
//
// Each request carries the stored access token as a bearer credential. A 401
// on a non-auth path triggers at most one refresh followed by one retry; when
// the refresh cannot succeed the token store is cleared and the
// session-expired handler runs.
type Client struct {
	http    *utils.HTTPClient
	tokens  store.TokenStore
	ids     *utils.UUIDGenerator
	refresh singleflight.Group
	logger  *logger.Logger

	mu        sync.RWMutex
	onExpired func()
}

// NewClient builds a Client for the gateway at cfg.Address.
func NewClient(cfg config.Adapter, tokens store.TokenStore, log *logger.Logger) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter address: %w", err)
	}

	c := &Client{
		http:   utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		tokens: tokens,
		ids:    utils.NewUUIDGenerator(),
		logger: log,
	}
	c.http.OnBeforeRequest(c.authorize)

	return c, nil
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

// OnSessionExpired registers fn to run after an unrecoverable 401 cleared
// the token store.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpired = fn
}

// authorize is the request interceptor: correlation id plus bearer token.
func (c *Client) authorize(_ *resty.Client, r *resty.Request) error {
	ctx := r.Context()

	id, ok := utils.GetCorrelationIDFromContext(ctx)
	if !ok {
		id = c.ids.Generate()
	}
	r.SetHeader(HeaderCorrelationID, id)

	token, err := c.tokens.Get(ctx, store.KeyToken)
	switch {
	case err == nil && token != "":
		r.SetHeader("Authorization", "Bearer "+token)
	case err != nil && !errors.Is(err, store.ErrEntryNotFound):
		// send unauthenticated and let the backend answer 401
		c.logger.Warn().Err(err).Str("func", "Client.authorize").Msg("cannot read access token")
	}

	return nil
}

// Send executes method on path. build configures the request and is called
// again for the retry, so it must not consume one-shot readers.
func (c *Client) Send(ctx context.Context, method, path string, build func(r *resty.Request)) (*resty.Response, error) {
	resp, err := c.execute(ctx, method, path, build)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusUnauthorized || strings.Contains(path, authPathPart) {
		return resp, mapHTTPError(resp)
	}

	if err = c.renew(ctx, resp.Request.Header.Get("Authorization")); err != nil {
		c.expire(ctx, err)
		return resp, fmt.Errorf("%w: %w", ErrSessionExpired, mapHTTPError(resp))
	}

	// the retried request is never refreshed again
	resp, err = c.execute(ctx, method, path, build)
	if err != nil {
		return nil, err
	}
	return resp, mapHTTPError(resp)
}

// SendJSON is Send followed by decoding a 2xx body into out. A nil out
// skips decoding.
func (c *Client) SendJSON(ctx context.Context, method, path string, build func(r *resty.Request), out any) error {
	resp, err := c.Send(ctx, method, path, build)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}

// Refresh exchanges the stored refresh token for a new access token and
// rotates the stored tokens. Concurrent callers share one backend call.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	token, err, shared := c.refresh.Do("refresh", func() (any, error) {
		return c.doRefresh(context.WithoutCancel(ctx))
	})
	if shared {
		c.logger.Debug().Str("func", "Client.Refresh").Msg("joined in-flight token refresh")
	}
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (c *Client) doRefresh(ctx context.Context) (string, error) {
	refreshToken, err := c.tokens.Get(ctx, store.KeyRefreshToken)
	if errors.Is(err, store.ErrEntryNotFound) || (err == nil && refreshToken == "") {
		return "", ErrNoRefreshToken
	}
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}

	resp, err := c.execute(ctx, http.MethodPost, refreshPath, func(r *resty.Request) {
		r.SetBody(models.RefreshRequest{RefreshToken: refreshToken})
	})
	if err != nil {
		return "", err
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var out models.RefreshResponse
	if err = decodeJSON(resp, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrMalformedResponse)
	}

	if err = c.tokens.RotateTokens(ctx, out.AccessToken, out.RefreshToken); err != nil {
		return "", fmt.Errorf("persist refreshed tokens: %w", err)
	}

	c.logger.Info().Str("func", "Client.doRefresh").Msg("access token refreshed")
	return out.AccessToken, nil
}

// renew makes a fresh access token available. A token rotated by another
// request since sentAuth was attached is reused without a second refresh.
func (c *Client) renew(ctx context.Context, sentAuth string) error {
	current, err := c.tokens.Get(ctx, store.KeyToken)
	if err == nil && current != "" && "Bearer "+current != sentAuth {
		return nil
	}

	_, err = c.Refresh(ctx)
	return err
}

func (c *Client) expire(ctx context.Context, cause error) {
	c.logger.Warn().Err(cause).Str("func", "Client.expire").Msg("session expired, clearing stored tokens")

	if err := c.tokens.ClearSession(ctx); err != nil {
		c.logger.Err(err).Str("func", "Client.expire").Msg("failed to clear token store")
	}

	c.mu.RLock()
	fn := c.onExpired
	c.mu.RUnlock()

	if fn != nil {
		fn()
	}
}

func (c *Client) execute(ctx context.Context, method, path string, build func(r *resty.Request)) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	if build != nil {
		build(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	return resp, nil
}

func decodeJSON(resp *resty.Response, out any) error {
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

func jsonBody(body any) func(r *resty.Request) {
	return func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}
}
