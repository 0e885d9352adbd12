package net

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned without touching the network while the
// marketplace API is considered down.
var ErrCircuitOpen = errors.New("marketplace api temporarily unavailable")

// ==================== Request model ====================

// FormField is a plain multipart field. Text fields go out in no fixed order;
// file parts keep their order.
type FormField struct {
	Name  string
	Value string
}

// FileData is a multipart file part.
type FileData struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// MultipartRequest is a multipart POST against the marketplace API.
type MultipartRequest struct {
	Path    string
	Headers map[string]string
	Fields  []FormField
	Files   []FileData
}

// Get returns the first value of the named field.
func (r *MultipartRequest) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// APIError is a non-2xx answer from the marketplace API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("marketplace api error [%d]", e.StatusCode)
	}
	return fmt.Sprintf("marketplace api error [%d]: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Message string `json:"message"`
}

// ==================== Client ====================

// ClientConfig configures MarketplaceClient.
type ClientConfig struct {
	BaseURL         string
	Timeout         time.Duration
	UserAgent       string
	BreakerFailures uint32        // consecutive failures before the breaker opens
	BreakerCooldown time.Duration // how long the breaker stays open
}

// MarketplaceClient talks to the ads REST backend.
type MarketplaceClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// NewMarketplaceClient builds a client. Only transport errors and 5xx answers
// count towards opening the breaker.
func NewMarketplaceClient(cfg ClientConfig, log *zap.Logger) *MarketplaceClient {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("MarketplaceClient")

	if cfg.UserAgent == "" {
		cfg.UserAgent = "Zitheke-Wizard/1.0"
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerCooldown == 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	failures := cfg.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "marketplace",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &MarketplaceClient{http: client, breaker: breaker, log: log}
}

// SendMultipart performs exactly one POST (or none while the breaker is open).
// Non-2xx answers are returned as responses, not errors.
func (c *MarketplaceClient) SendMultipart(ctx context.Context, req *MultipartRequest) (*resty.Response, error) {
	var resp *resty.Response

	_, err := c.breaker.Execute(func() (interface{}, error) {
		r, err := c.build(ctx, req).Post(req.Path)
		if err != nil {
			return nil, err
		}
		resp = r
		if r.StatusCode() >= http.StatusInternalServerError {
			return r, fmt.Errorf("server error [%d]", r.StatusCode())
		}
		return r, nil
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, ErrCircuitOpen
	case resp != nil:
		return resp, nil
	case err != nil:
		return nil, fmt.Errorf("marketplace request failed: %w", err)
	}
	return resp, nil
}

// CreateAd posts a new ad. Any non-2xx answer becomes an *APIError carrying
// the server's message when it sent one.
func (c *MarketplaceClient) CreateAd(ctx context.Context, req *MultipartRequest) error {
	start := time.Now()
	resp, err := c.SendMultipart(ctx, req)
	if err != nil {
		c.log.Warn("create ad failed", zap.String("path", req.Path), zap.Error(err))
		return err
	}

	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		if body, ok := resp.Error().(*errorBody); ok && body != nil {
			apiErr.Message = body.Message
		}
		c.log.Info("create ad rejected",
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
			zap.Duration("took", time.Since(start)))
		return apiErr
	}

	c.log.Info("ad created", zap.Int("status", resp.StatusCode()), zap.Duration("took", time.Since(start)))
	return nil
}

func (c *MarketplaceClient) build(ctx context.Context, req *MultipartRequest) *resty.Request {
	r := c.http.R().
		SetContext(ctx).
		SetHeaders(req.Headers).
		SetError(&errorBody{})

	values := url.Values{}
	for _, f := range req.Fields {
		values.Add(f.Name, f.Value)
	}
	r.SetFormDataFromValues(values)

	parts := make([]*resty.MultipartField, 0, len(req.Files))
	for _, f := range req.Files {
		parts = append(parts, &resty.MultipartField{
			Param:       f.Field,
			FileName:    f.Filename,
			ContentType: f.ContentType,
			Reader:      bytes.NewReader(f.Data),
		})
	}
	if len(parts) > 0 {
		r.SetMultipartFields(parts...)
	}
	return r
}
