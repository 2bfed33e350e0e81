package webhook

//go:generate go run go.uber.org/mock/mockgen -source=./webhook.go -destination=./mocks/webhook_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"meetroom/config"
	"meetroom/infras/otel"
	"meetroom/shared/constant"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	otelScopeName      = "webhook"
	defaultTimeout     = 10 * time.Second
	maxErrorBodyLength = 512
)

var (
	// ErrNotConfigured is returned when no webhook URL is set.
	ErrNotConfigured = errors.New("webhook url is not configured")
	// ErrDelivery wraps every transport failure and non-2xx response.
	ErrDelivery = errors.New("webhook delivery failed")
)

type Client interface {
	Post(ctx context.Context, payload any) error
}

type client struct {
	url  string
	http *http.Client
	otel otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Client {
	timeout := time.Duration(cfg.Notification.Webhook.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &client{
		url:  cfg.Notification.Webhook.URL,
		http: &http.Client{Timeout: timeout},
		otel: ot,
	}
}

// Post sends payload as JSON. It makes exactly one attempt.
func (c *client) Post(ctx context.Context, payload any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+".Post")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if c.url == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	defer resp.Body.Close()

	scope.SetAttribute("http.status_code", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))

		return fmt.Errorf("%w: status %d: %s", ErrDelivery, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	log.Debug().Int("status", resp.StatusCode).Msg("webhook delivered")

	return nil
}
