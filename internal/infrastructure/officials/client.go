// Package officials talks to the match-officials collaborator. The engine
// only reads assignment and report status from it; it never assigns
// officials.
package officials

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ligaops/competition-engine/internal/platform/logging"
	"github.com/ligaops/competition-engine/internal/platform/resilience"
	"github.com/ligaops/competition-engine/internal/usecase"
)

var errOfficialsTransient = crerr.New("officials service transient failure")

type ClientConfig struct {
	BaseURL        string
	APIToken       string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client is the HTTP implementation of usecase.OfficialsProvider.
type Client struct {
	client         *http.Client
	baseURL        string
	apiToken       string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig, logger *logging.Logger) (*Client, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid OFFICIALS_BASE_URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL:        baseURL,
		apiToken:       strings.TrimSpace(cfg.APIToken),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}, nil
}

type assignmentStatusResponse struct {
	MatchID                   string `json:"match_id"`
	OfficialsComplete         bool   `json:"officials_complete"`
	RefereeReportSubmitted    bool   `json:"referee_report_submitted"`
	SupervisorReportSubmitted bool   `json:"supervisor_report_submitted"`
}

// AssignmentStatus fetches one match's assignment and report status.
func (c *Client) AssignmentStatus(ctx context.Context, matchID string) (usecase.OfficialsAssignment, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return usecase.OfficialsAssignment{}, crerr.New("match id is required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "officials circuit breaker rejected request", "state", c.breaker.State())
			return usecase.OfficialsAssignment{}, fmt.Errorf("officials service is temporarily unavailable: %w", err)
		}
	}

	requestURL := c.baseURL + "/v1/matches/" + url.PathEscape(matchID) + "/assignment"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return usecase.OfficialsAssignment{}, crerr.Wrap(err, "build assignment request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.recordFailure(crerr.Mark(err, errOfficialsTransient))
		return usecase.OfficialsAssignment{}, crerr.Wrap(err, "call officials service")
	}
	defer func() { _ = resp.Body.Close() }()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := io.Copy(buf, io.LimitReader(resp.Body, 1<<20)); err != nil {
		c.recordFailure(crerr.Mark(err, errOfficialsTransient))
		return usecase.OfficialsAssignment{}, crerr.Wrap(err, "read officials response")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.recordSuccess()
		return usecase.OfficialsAssignment{}, fmt.Errorf("officials assignment for match %s: %w", matchID, errNotFound)
	case resp.StatusCode >= http.StatusInternalServerError:
		err := crerr.Mark(
			crerr.Newf("officials service returned %d: %s", resp.StatusCode, truncateForLog(buf.String(), 512)),
			errOfficialsTransient,
		)
		c.recordFailure(err)
		return usecase.OfficialsAssignment{}, err
	case resp.StatusCode != http.StatusOK:
		c.recordSuccess()
		return usecase.OfficialsAssignment{}, crerr.Newf("officials service returned %d: %s", resp.StatusCode, truncateForLog(buf.String(), 512))
	}

	var payload assignmentStatusResponse
	if err := sonic.Unmarshal(buf.Bytes(), &payload); err != nil {
		c.recordSuccess()
		return usecase.OfficialsAssignment{}, crerr.Wrap(err, "decode officials response")
	}

	c.recordSuccess()
	return usecase.OfficialsAssignment{
		OfficialsComplete:         payload.OfficialsComplete,
		RefereeReportSubmitted:    payload.RefereeReportSubmitted,
		SupervisorReportSubmitted: payload.SupervisorReportSubmitted,
	}, nil
}

var errNotFound = crerr.New("not found")

func (c *Client) recordFailure(err error) {
	if c.circuitEnabled && isCircuitFailure(err) {
		c.breaker.RecordFailure()
	}
}

func (c *Client) recordSuccess() {
	if c.circuitEnabled {
		c.breaker.RecordSuccess()
	}
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errOfficialsTransient)
}

func validateHTTPBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", crerr.New("base url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", crerr.Wrap(err, "parse base url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", crerr.New("base url host is required")
	}
	return raw, nil
}

func truncateForLog(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "...(truncated)"
}
