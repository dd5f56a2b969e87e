// Package trackman is the vendor report API client: a lightweight metadata
// lookup used during enrichment and the full report fetch.
package trackman

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/okian/swingsheet/internal/adapters/credentials"
	"github.com/okian/swingsheet/internal/domain/model"
	"github.com/okian/swingsheet/pkg/logger"
	"github.com/okian/swingsheet/pkg/metrics"
	"github.com/okian/swingsheet/pkg/telemetry"
)

const (
	// DefaultBaseURL is the vendor's player-activities API.
	DefaultBaseURL = "https://golf-player-activities.trackmangolf.com"
	reportPath     = "/api/reports/getreport"

	defaultMetadataTimeout = 10 * time.Second
	defaultMetadataRetries = 2
	defaultRetryWait       = 500 * time.Millisecond
	defaultRetryMaxWait    = 3 * time.Second
	defaultFetchTimeout    = 60 * time.Second

	tracerName = "github.com/okian/swingsheet/internal/adapters/trackman"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL sets the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			c.baseURL = u
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetadataTimeout bounds one metadata call, retries included.
func WithMetadataTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.metadataTimeout = d
		}
	}
}

// WithMetadataRetries sets how often a metadata call is retried on a
// transport error, 429 or 5xx. Full fetches are never retried.
func WithMetadataRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.metadataRetries = n
		}
	}
}

// WithRetryWait sets the initial and maximum backoff between retries.
func WithRetryWait(wait, maxWait time.Duration) Option {
	return func(c *Client) {
		if wait > 0 && maxWait >= wait {
			c.retryWait = wait
			c.retryMaxWait = maxWait
		}
	}
}

// WithFetchTimeout bounds the full report fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// WithEnvironment sets the normalization conditions sent with full fetches.
func WithEnvironment(env Environment) Option {
	return func(c *Client) {
		c.env = env
	}
}

// Client talks to the vendor report API.
type Client struct {
	baseURL         string
	log             logger.Logger
	metadataTimeout time.Duration
	metadataRetries int
	retryWait       time.Duration
	retryMaxWait    time.Duration
	fetchTimeout    time.Duration
	env             Environment

	metadata *resty.Client
	report   *resty.Client
}

// NewClient creates a new Client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:         DefaultBaseURL,
		log:             logger.Nop(),
		metadataTimeout: defaultMetadataTimeout,
		metadataRetries: defaultMetadataRetries,
		retryWait:       defaultRetryWait,
		retryMaxWait:    defaultRetryMaxWait,
		fetchTimeout:    defaultFetchTimeout,
		env:             DefaultEnvironment(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.metadata = resty.New().
		SetBaseURL(c.baseURL).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(c.metadataRetries).
		SetRetryWaitTime(c.retryWait).
		SetRetryMaxWaitTime(c.retryMaxWait).
		AddRetryCondition(retryable).
		SetLogger(logger.Printf(c.log))
	telemetry.InstrumentResty(c.metadata, tracerName)

	c.report = resty.New().
		SetBaseURL(c.baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(c.fetchTimeout).
		SetLogger(logger.Printf(c.log))
	telemetry.InstrumentResty(c.report, tracerName)

	return c
}

func retryable(res *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	code := res.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// Metadata fetches creation time and kind for one report.
func (c *Client) Metadata(ctx context.Context, token, id string) (model.ReportMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, c.metadataTimeout)
	defer cancel()

	body, err := c.post(ctx, c.metadata, metrics.OperationMetadata, token,
		metadataRequest{ReportID: id, DM: false})
	if err != nil {
		return model.ReportMetadata{}, err
	}

	var md model.ReportMetadata
	if err := json.Unmarshal(body, &md); err != nil {
		return model.ReportMetadata{}, fmt.Errorf("%w: decode metadata: %w", ErrRetrievalFailed, err)
	}
	return md, nil
}

// FetchReport retrieves the full report and returns the response body
// unmodified.
func (c *Client) FetchReport(ctx context.Context, token, id string) ([]byte, error) {
	body, err := c.post(ctx, c.report, metrics.OperationReport, token, newReportRequest(id, c.env))
	if err != nil {
		return nil, err
	}
	c.log.Info(ctx, "report retrieved", logger.String("report_id", id), logger.Int("bytes", len(body)))
	return body, nil
}

func (c *Client) post(ctx context.Context, rc *resty.Client, op, token string, payload any) ([]byte, error) {
	if strings.TrimSpace(token) == "" {
		return nil, credentials.ErrAuthenticationMissing
	}

	start := time.Now()
	res, err := rc.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		Post(reportPath)
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordAPIRequest(op, "error", elapsed)
		return nil, fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
	}
	metrics.RecordAPIRequest(op, strconv.Itoa(res.StatusCode()), elapsed)

	if res.StatusCode() != http.StatusOK {
		c.log.Debug(ctx, "vendor request rejected",
			logger.String("operation", op), logger.Int("status", res.StatusCode()))
		return nil, &RetrievalError{StatusCode: res.StatusCode(), Body: res.String()}
	}
	return res.Body(), nil
}
