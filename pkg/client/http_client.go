package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sakashimaa/accessory-shop/pkg/config"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/pkg/utils"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means the downstream service answered 404.
	ErrNotFound = errors.New("resource not found")
	// ErrUnavailable covers timeouts, refused connections, 5xx answers and an open breaker.
	ErrUnavailable = errors.New("upstream service unavailable")
)

type Recorder interface {
	ObserveDownstream(target, outcome string, d time.Duration)
}

type Options struct {
	Timeout            time.Duration
	Retries            uint64
	BreakerMaxRequests uint32
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration
	Recorder           Recorder
	Transport          http.RoundTripper
}

func OptionsFromConfig(cfg config.Downstream, recorder Recorder) Options {
	return Options{
		Timeout:            cfg.Timeout,
		Retries:            cfg.Retries,
		BreakerMaxRequests: cfg.BreakerMaxRequests,
		BreakerInterval:    cfg.BreakerInterval,
		BreakerTimeout:     cfg.BreakerTimeout,
		Recorder:           recorder,
	}
}

type httpClient struct {
	name     string
	baseURL  string
	http     *http.Client
	cb       *gobreaker.CircuitBreaker
	timeout  time.Duration
	retries  uint64
	recorder Recorder
	logger   *zap.Logger
	tracer   trace.Tracer
}

func newHTTPClient(name, baseURL string, opts Options, logger *zap.Logger) *httpClient {
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	cb := utils.NewCircuitBreaker(utils.BreakerSettings{
		Name:        name,
		MaxRequests: opts.BreakerMaxRequests,
		Interval:    opts.BreakerInterval,
		Timeout:     opts.BreakerTimeout,
		// cancelled callers do not count against the target
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
	}, logger)

	return &httpClient{
		name:     name,
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Transport: otelhttp.NewTransport(transport)},
		cb:       cb,
		timeout:  timeout,
		retries:  opts.Retries,
		recorder: opts.Recorder,
		logger:   logger,
		tracer:   otel.Tracer("downstream_client"),
	}
}

// getJSON fetches path and decodes the body into out.
// Only transport failures and 5xx answers are retried. Every attempt gets its own timeout
// derived from ctx. A ctx that is already done never reaches the breaker.
func (c *httpClient) getJSON(ctx context.Context, path string, out any) error {
	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("%sClient.GET", c.name))
	defer span.End()

	span.SetAttributes(
		attribute.String("downstream.target", c.name),
		attribute.String("downstream.path", path),
	)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxInterval = 500 * time.Millisecond

	start := time.Now()
	err := backoff.Retry(func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}

		_, err := utils.ExecuteWithBreaker[struct{}](c.cb, func() (struct{}, error) {
			return struct{}{}, c.doGet(ctx, path, out)
		})

		if err == nil || isRetryable(err) {
			return err
		}

		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(policy, c.retries), ctx))

	c.observe(outcome(err), time.Since(start))

	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	mylogger.Warn(
		ctx,
		c.logger,
		"Downstream call failed",
		zap.String("target", c.name),
		zap.String("path", path),
		zap.Error(err),
	)

	return fmt.Errorf("%w: %s: %w", ErrUnavailable, c.name, err)
}

func (c *httpClient) doGet(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &statusError{err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s answered %d", c.name, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &statusError{err: fmt.Errorf("%s answered %d", c.name, resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &statusError{err: fmt.Errorf("decode %s response: %w", c.name, err)}
	}

	return nil
}

func (c *httpClient) observe(outcome string, d time.Duration) {
	if c.recorder != nil {
		c.recorder.ObserveDownstream(c.name, outcome, d)
	}
}

// statusError marks failures that a retry cannot fix.
type statusError struct {
	err error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	var se *statusError

	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests),
		errors.As(err, &se):
		return false
	default:
		return true
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
