package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/instituto-brotar/painel-brotar/internal/logging"
	"github.com/instituto-brotar/painel-brotar/internal/observability"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"github.com/instituto-brotar/painel-brotar/internal/utils/httpclient"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// TokenSource yields the bearer token of the current session, "" when
// there is none
type TokenSource interface {
	Token() string
}

// ExpiryNotifier is told when the backend rejects the session
type ExpiryNotifier interface {
	Open(ctx context.Context)
}

// Gateway holds what every backend call shares: base URL, connection pool
// and logger
type Gateway struct {
	baseURL string
	client  *http.Client
	logger  *logging.SafeLogger
}

// NewGateway creates a gateway for the registry backend
func NewGateway(baseURL string, timeout time.Duration, logger *logging.SafeLogger) *Gateway {
	if logger == nil {
		logger = logging.Logger
	}
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpclient.New(timeout),
		logger:  logger.Named("apiclient"),
	}
}

// BaseURL returns the backend base URL without trailing slash
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// For binds the gateway to one session. Either collaborator may be nil.
func (g *Gateway) For(tokens TokenSource, notifier ExpiryNotifier) *Client {
	return &Client{gateway: g, tokens: tokens, notifier: notifier}
}

// Client issues backend calls on behalf of one session
type Client struct {
	gateway  *Gateway
	tokens   TokenSource
	notifier ExpiryNotifier
}

// Response is a successful backend answer
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Get fetches path and decodes the JSON body into out
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// GetRaw fetches path and returns the undecoded body
func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// GetBinary fetches a non-JSON document such as a PDF report
func (c *Client) GetBinary(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post sends body as JSON and decodes the answer into out when out is not nil
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// Patch sends body as JSON and decodes the answer into out when out is not nil
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	resp, err := c.do(ctx, http.MethodPatch, path, body)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// Delete removes the resource at path
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	resource := resourceOf(path)
	ctx, span, cleanup := utils.TraceHTTPOperation(ctx, method, path, resource)
	defer cleanup()

	start := time.Now()
	status := "error"
	defer func() {
		observability.BackendRequests.WithLabelValues(resource, method, status).Inc()
		observability.BackendDuration.WithLabelValues(resource, method).Observe(time.Since(start).Seconds())
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.gateway.baseURL+path, reader)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if id := utils.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(utils.RequestIDHeader, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.gateway.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.gateway.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Method:   method,
			Path:     path,
			Status:   resp.StatusCode,
			Messages: parseMessages(data),
		}
		span.SetStatus(codes.Error, apiErr.Error())

		if resp.StatusCode == http.StatusUnauthorized {
			observability.SessionExpired.Inc()
			c.gateway.logger.Info("backend rejected session",
				zap.String("method", method),
				zap.String("path", path))
			if c.notifier != nil {
				c.notifier.Open(ctx)
			}
		} else {
			c.gateway.logger.Debug("backend returned error status",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.Strings("messages", apiErr.Messages))
		}
		return nil, apiErr
	}

	span.SetStatus(codes.Ok, "success")
	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

func decode(resp *Response, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// resourceOf returns the first path segment, used as a low-cardinality
// metric label
func resourceOf(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(trimmed, "/?"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}
