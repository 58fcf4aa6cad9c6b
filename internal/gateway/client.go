package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/contract"
	"github.com/alexanderramin/jobcolor/internal/domain"
)

// Client talks to the job API over HTTP JSON.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

var _ app.JobAPI = (*Client)(nil)

// NewClient creates a job API client.
func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// GetJobColorDetails fetches the content names and full color data of a job.
func (c *Client) GetJobColorDetails(ctx context.Context, jobNumber string) (*app.ColorDetails, error) {
	var out app.ColorDetails
	if err := c.get(ctx, OpColorDetails, "/jobs/color-details/"+url.PathEscape(jobNumber), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetItemsForColor fetches the assignable catalog items.
func (c *Client) GetItemsForColor(ctx context.Context) (*app.CatalogItems, error) {
	var out app.CatalogItems
	if err := c.get(ctx, OpItems, "/jobs/items-for-color", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveColorChanges submits payload. It is never retried: a timed-out save
// may still have been applied by the job store.
func (c *Client) SaveColorChanges(ctx context.Context, payload *domain.JobColorDataset) (*app.SaveResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	var out app.SaveResult
	if err := c.call(ctx, OpSave, http.MethodPost, "/jobs/save-color-changes", body, &out, 1); err != nil {
		return nil, err
	}
	if !out.Success {
		return &out, rejected(http.StatusOK, domain.CoalesceStr(out.Error, "Failed to save changes"))
	}
	return &out, nil
}

// SearchJobNumbers lists job numbers matching fragment. Fragments shorter
// than app.MinJobSearchLen return nothing without a request.
func (c *Client) SearchJobNumbers(ctx context.Context, fragment string) ([]string, error) {
	fragment = strings.TrimSpace(fragment)
	if len(fragment) < app.MinJobSearchLen {
		return nil, nil
	}
	var out []string
	if err := c.get(ctx, OpSearch, "/jobs/search-numbers-completion/"+url.PathEscape(fragment), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetJobDetails fetches the descriptive fields of a job.
func (c *Client) GetJobDetails(ctx context.Context, jobNumber string) (*app.JobDetails, error) {
	var out app.JobDetails
	if err := c.get(ctx, OpJobDetails, "/jobs/details-update/"+url.PathEscape(jobNumber), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, op Operation, path string, out any) error {
	return c.call(ctx, op, http.MethodGet, path, nil, out, 1+c.cfg.MaxRetries)
}

func (c *Client) call(ctx context.Context, op Operation, method, path string, body []byte, out any, attempts int) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout(op))
	defer cancel()

	var lastErr error
	made := 0
	for made < attempts {
		made++
		lastErr = c.doRequest(ctx, op, method, path, body, out)
		if lastErr == nil {
			c.observer.OnCallComplete(CallEvent{
				Op:        op,
				Attempts:  made,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return nil
		}

		// Don't retry on context cancellation/timeout, undecodable bodies
		// or client errors
		if ctx.Err() != nil || errors.Is(lastErr, ErrInvalidResponse) {
			break
		}
		var apiErr *APIError
		if errors.As(lastErr, &apiErr) && !apiErr.retryable() {
			break
		}
	}

	err := c.classify(ctx, op, lastErr, made, attempts)
	c.observer.OnCallComplete(CallEvent{
		Op:        op,
		Attempts:  made,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *Client) classify(ctx context.Context, op Operation, err error, made, attempts int) error {
	var apiErr *APIError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case ctx.Err() != nil:
		return fmt.Errorf("%s: %w", op, ctx.Err())
	case isConnectionError(err):
		return ErrUnavailable
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, ErrInvalidResponse):
		return err
	case made > 1 && made == attempts:
		return fmt.Errorf("%w: %s: %v", ErrRetryExhausted, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (c *Client) doRequest(ctx context.Context, op Operation, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.cfg.BaseURL, "/")+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		var eb contract.ErrorResponse
		_ = json.Unmarshal(respBody, &eb)
		return rejected(httpResp.StatusCode, eb.Error)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return invalidResponse(op, err)
	}
	return nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
