// Package condocore provides the client for the condominium core API,
// the REST backend that owns all persistence and authoritative billing
// computation. Every response travels in a {success, data, error} envelope;
// callers here branch on success before trusting data.
package condocore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("condocore")

// Client wraps HTTP calls to the core API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewClient creates a core-API client.
func NewClient(httpClient *http.Client, baseURL, apiToken string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiToken:   apiToken,
		cb:         cb,
		cfg:        cfg,
		logger:     logger,
	}
}

// envelope is the core API's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// do executes one request and unwraps the envelope. 4xx rejections come
// back as *domain.ErrBackendRejection carrying the backend message verbatim;
// 5xx and transport failures come back as plain errors for the caller to
// wrap as ErrExternalService.
func (c *Client) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/api/%s", c.baseURL, path)

	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		c.logger.Error("condocore: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("condocore: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	// Classify error statuses before trusting the body: a proxy in front
	// of the backend can answer 4xx/5xx with HTML, not the envelope.
	if resp.StatusCode >= 400 {
		var env envelope
		msg := fmt.Sprintf("core API returned status %d", resp.StatusCode)
		if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
			msg = env.Error
		}

		if resp.StatusCode < 500 {
			c.logger.Warn("condocore: backend rejection",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("error", msg),
			)
			return nil, &domain.ErrBackendRejection{Status: resp.StatusCode, Message: msg}
		}

		c.logger.Warn("condocore: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("%s (%s %s)", msg, method, path)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("condocore: malformed envelope (%s %s, status %d): %w",
			method, path, resp.StatusCode, err)
	}

	if !env.Success {
		// 2xx with success=false is a contract violation; treat as rejection
		// so the message still reaches the operator.
		return nil, &domain.ErrBackendRejection{Status: resp.StatusCode, Message: env.Error}
	}

	c.logger.Debug("condocore: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return env.Data, nil
}

// get executes an idempotent read through the circuit breaker with bounded
// retries. Backend rejections are permanent and short-circuit the retry loop.
func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	var data json.RawMessage

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			d, err := c.do(ctx, http.MethodGet, path, nil)
			if err != nil {
				var rejection *domain.ErrBackendRejection
				if errors.As(err, &rejection) {
					return resilience.Permanent(err)
				}
				return err
			}
			data = d
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// post executes a mutation through the circuit breaker, without retries:
// create/pay/generate are not idempotent.
func (c *Client) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, path, payload)
}

func (c *Client) patch(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPatch, path, payload)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.mutate(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) mutate(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	result, err := c.cb.Execute(func() (any, error) {
		return c.do(ctx, method, path, payload)
	})
	if err != nil {
		return nil, err
	}
	data, _ := result.(json.RawMessage)
	return data, nil
}
