package push

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/amar93190/Team-up/internal/platform/logging"
	"github.com/amar93190/Team-up/internal/usecase"
)

// ProviderClient delivers pushes through an HTTP push provider.
type ProviderClient struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     *logging.Logger
}

func NewProviderClient(httpClient *http.Client, endpoint, token string, logger *logging.Logger) *ProviderClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ProviderClient{
		httpClient: httpClient,
		endpoint:   strings.TrimSpace(endpoint),
		token:      strings.TrimSpace(token),
		logger:     logger,
	}
}

type sendRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func (c *ProviderClient) SendPush(ctx context.Context, userID string, p usecase.Push) error {
	if c.endpoint == "" {
		return fmt.Errorf("push provider endpoint is not configured")
	}

	encoded, err := sonic.Marshal(sendRequest{
		UserID: userID,
		Title:  p.Title,
		Body:   p.Body,
	})
	if err != nil {
		return fmt.Errorf("marshal push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send push to provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.WarnContext(ctx, "push provider non-2xx",
			"status", resp.StatusCode,
			"user_id", userID,
		)
		return fmt.Errorf("push provider status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return nil
}

// LogSender records delivery intent without an external provider. It keeps
// local runs and provider-less deployments observable.
type LogSender struct {
	logger *logging.Logger
}

func NewLogSender(logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) SendPush(ctx context.Context, userID string, p usecase.Push) error {
	s.logger.InfoContext(ctx, "push delivery skipped, no provider configured",
		"user_id", userID,
		"title", p.Title,
	)
	return nil
}
