package qblast

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ManuelOsorioLab/searchGen1/internal/model"
)

// Search status values reported by the service
const (
	StatusWaiting = "WAITING"
	StatusReady   = "READY"
	StatusUnknown = "UNKNOWN"
	StatusFailed  = "FAILED"
)

// Client talks to the QBlast URL API (Blast.cgi)
type Client struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	maxBytes     int64
	pollInterval time.Duration
}

// NewClient creates a QBlast client with the given HTTP configuration
func NewClient(cfg model.HTTPConfig, pollInterval time.Duration) *Client {
	if pollInterval <= 0 {
		pollInterval = 20 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:      cfg.BaseURL,
		userAgent:    cfg.UserAgent,
		maxBytes:     cfg.MaxBodyBytes,
		pollInterval: pollInterval,
	}
}

// Submit places a search on the service queue and returns the assigned
// request ID together with the estimated time to completion
func (c *Client) Submit(ctx context.Context, q model.Query) (rid string, rtoe time.Duration, err error) {
	if err := q.Validate(); err != nil {
		return "", 0, fmt.Errorf("invalid query: %w", err)
	}

	params := url.Values{}
	params.Set("CMD", "Put")
	params.Set("PROGRAM", q.Program)
	params.Set("DATABASE", q.Database)
	params.Set("QUERY", q.Sequence)
	params.Set("EXPECT", strconv.FormatFloat(q.Expect, 'g', -1, 64))
	params.Set("HITLIST_SIZE", strconv.Itoa(q.HitlistSize))
	if eq := q.EntrezQuery(); eq != "" {
		params.Set("ENTREZ_QUERY", eq)
	}
	if q.Email != "" {
		params.Set("EMAIL", q.Email)
	}
	if q.Tool != "" {
		params.Set("TOOL", q.Tool)
	}

	body, err := c.post(ctx, params)
	if err != nil {
		return "", 0, fmt.Errorf("submit: %w", err)
	}

	info, err := ParseQBlastInfo(string(body))
	if err != nil {
		return "", 0, fmt.Errorf("submit: %w", err)
	}
	if info.RID == "" {
		return "", 0, fmt.Errorf("submit: service returned no request ID")
	}

	return info.RID, time.Duration(info.RTOE) * time.Second, nil
}

// Status polls the service for the state of a queued search
func (c *Client) Status(ctx context.Context, rid string) (*QBlastInfo, error) {
	params := url.Values{}
	params.Set("CMD", "Get")
	params.Set("RID", rid)
	params.Set("FORMAT_OBJECT", "SearchInfo")

	body, err := c.post(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("status %s: %w", rid, err)
	}

	info, err := ParseQBlastInfo(string(body))
	if err != nil {
		return nil, fmt.Errorf("status %s: %w", rid, err)
	}

	return info, nil
}

// Fetch retrieves and decodes the XML result of a finished search
func (c *Client) Fetch(ctx context.Context, rid string) (*model.SearchResult, error) {
	params := url.Values{}
	params.Set("CMD", "Get")
	params.Set("RID", rid)
	params.Set("FORMAT_TYPE", "XML")

	body, err := c.post(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rid, err)
	}

	result, err := DecodeResult(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rid, err)
	}
	result.RID = rid

	return result, nil
}

// Search runs the full submit / poll / fetch cycle for one query.
// Transport and service errors abort the call; there is no retry.
func (c *Client) Search(ctx context.Context, q model.Query) (*model.SearchResult, error) {
	rid, rtoe, err := c.Submit(ctx, q)
	if err != nil {
		return nil, err
	}

	// The service asks clients to hold off for the estimated run time
	// before the first poll
	if err := sleep(ctx, rtoe); err != nil {
		return nil, err
	}

	for {
		info, err := c.Status(ctx, rid)
		if err != nil {
			return nil, err
		}

		switch info.Status {
		case StatusReady:
			return c.Fetch(ctx, rid)
		case StatusWaiting:
			if err := sleep(ctx, c.pollInterval); err != nil {
				return nil, err
			}
		case StatusUnknown:
			return nil, fmt.Errorf("search %s: request ID expired or unknown", rid)
		default:
			return nil, fmt.Errorf("search %s: status %s", rid, info.Status)
		}
	}
}

// post sends a form-encoded request and returns the size-capped body
func (c *Client) post(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	limitedReader := io.LimitReader(resp.Body, c.maxBytes)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

// sleep waits for d or until the context is cancelled
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
