// Package indexservice is the HTTP client for the external full-volume
// index service. The service is a separate local process exposing the
// session protocol as a small JSON API.
package indexservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.IndexService = (*Client)(nil)

// DefaultBaseURL is where the index service listens when installed.
const DefaultBaseURL = "http://127.0.0.1:38450"

// Client talks the session protocol over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL. An empty
// baseURL means the service is not installed; every call then reports
// domain.ErrNotInstalled.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		// No client-wide timeout: the session protocol sets per-call
		// deadlines through the context.
		http: &http.Client{},
	}
}

// Status probes whether the service can be queried.
func (c *Client) Status(ctx context.Context) domain.IndexStatus {
	if c.baseURL == "" {
		return domain.IndexStatus{Err: domain.ErrNotInstalled}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return domain.IndexStatus{Err: fmt.Errorf("building status request: %w", err)}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Connection refused and friends: installed but not running.
		return domain.IndexStatus{Err: fmt.Errorf("%w: %v", domain.ErrServiceNotRunning, err)}
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return domain.IndexStatus{Err: fmt.Errorf("%w: status %d", domain.ErrServiceNotRunning, resp.StatusCode)}
	}
	return domain.IndexStatus{Available: true}
}

// startSessionRequest is the StartSession payload.
type startSessionRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
	ChunkSize  int    `json:"chunk_size"`
}

// startSessionResponse is the StartSession answer.
type startSessionResponse struct {
	SessionID  string `json:"session_id"`
	TotalCount int    `json:"total_count"`
}

// StartSession opens a server-side cursor for query.
func (c *Client) StartSession(
	ctx context.Context, query string, opts driven.SessionOptions,
) (driven.SessionInfo, error) {
	if c.baseURL == "" {
		return driven.SessionInfo{}, domain.ErrNotInstalled
	}

	body, err := json.Marshal(startSessionRequest{
		Query:      query,
		MaxResults: opts.MaxResults,
		ChunkSize:  opts.ChunkSize,
	})
	if err != nil {
		return driven.SessionInfo{}, fmt.Errorf("marshalling session request: %w", err)
	}

	var out startSessionResponse
	if err := c.do(ctx, http.MethodPost, "/sessions", body, &out); err != nil {
		return driven.SessionInfo{}, fmt.Errorf("starting session: %w", err)
	}
	return driven.SessionInfo{SessionID: out.SessionID, TotalCount: out.TotalCount}, nil
}

// rangeItem is one hit on the wire.
type rangeItem struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	IsFolder bool   `json:"is_folder"`
}

// rangeResponse is the GetRange answer.
type rangeResponse struct {
	Items      []rangeItem `json:"items"`
	TotalCount int         `json:"total_count"`
}

// GetRange fetches one page of an open session.
func (c *Client) GetRange(
	ctx context.Context, sessionID string, offset, limit int,
) (driven.RangeResult, error) {
	if c.baseURL == "" {
		return driven.RangeResult{}, domain.ErrNotInstalled
	}

	path := "/sessions/" + url.PathEscape(sessionID) + "/range?offset=" +
		strconv.Itoa(offset) + "&limit=" + strconv.Itoa(limit)

	var out rangeResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return driven.RangeResult{}, fmt.Errorf("fetching range: %w", err)
	}

	items := make([]domain.IndexItem, 0, len(out.Items))
	for _, item := range out.Items {
		items = append(items, domain.IndexItem{
			Name:     item.Name,
			Path:     item.Path,
			IsFolder: item.IsFolder,
		})
	}
	return driven.RangeResult{Items: items, TotalCount: out.TotalCount}, nil
}

// CloseSession releases the server-side cursor.
func (c *Client) CloseSession(ctx context.Context, sessionID string) error {
	if c.baseURL == "" {
		return domain.ErrNotInstalled
	}

	if err := c.do(ctx, http.MethodDelete, "/sessions/"+url.PathEscape(sessionID), nil, nil); err != nil {
		return fmt.Errorf("closing session: %w", err)
	}
	return nil
}

// do performs one JSON request against the service.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServiceNotRunning, err)
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
	case http.StatusNotFound, http.StatusGone:
		return domain.ErrSessionClosed
	default:
		return fmt.Errorf("service returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// drain consumes and closes the response body so the connection can be
// reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()              //nolint:errcheck
}
