package gatekeeper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/amar93190/Team-up/internal/domain/user"
	"github.com/amar93190/Team-up/internal/platform/cache"
	"github.com/amar93190/Team-up/internal/platform/logging"
	"github.com/amar93190/Team-up/internal/platform/resilience"
	"github.com/amar93190/Team-up/internal/usecase"
)

const defaultPrincipalTTL = 30 * time.Second

// Client verifies access tokens against the gatekeeper introspection
// endpoint. Verified principals are cached briefly under the token hash and
// the endpoint sits behind a circuit breaker.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
	principals    *cache.Store
}

func NewClient(httpClient *http.Client, baseURL, introspectPath string, cbCfg resilience.CircuitBreakerConfig, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	cbCfg = resilience.NormalizeCircuitBreakerConfig(cbCfg)

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		logger:        logger,
		breaker:       resilience.NewCircuitBreaker(cbCfg.FailureThreshold, cbCfg.OpenTimeout, cbCfg.HalfOpenMaxReq),
		principals:    cache.NewStore(defaultPrincipalTTL),
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := "principal:" + hashToken(token)
	if v, ok := c.principals.Get(ctx, key); ok {
		if principal, ok := v.(user.Principal); ok {
			return principal, nil
		}
	}

	if err := c.breaker.Allow(); err != nil {
		return user.Principal{}, fmt.Errorf("%w: gatekeeper circuit open", usecase.ErrDependencyUnavailable)
	}

	principal, err := c.introspect(ctx, token)
	if err != nil {
		return user.Principal{}, err
	}

	c.principals.Set(ctx, key, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	payload := introspectRequest{Token: token}
	encoded, err := sonic.Marshal(payload)
	if err != nil {
		c.breaker.RecordSuccess()
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		c.breaker.RecordSuccess()
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return user.Principal{}, fmt.Errorf("%w: request introspection to gatekeeper: %v", usecase.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	// a denial is a working dependency, not a failure.
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.breaker.RecordSuccess()
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.breaker.RecordFailure()
		return user.Principal{}, fmt.Errorf("read introspect response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.breaker.RecordFailure()
		c.logger.WarnContext(ctx, "gatekeeper introspection non-200",
			"status_code", resp.StatusCode,
		)
		return user.Principal{}, fmt.Errorf("%w: gatekeeper introspection failed with status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		c.breaker.RecordFailure()
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}
	c.breaker.RecordSuccess()

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
