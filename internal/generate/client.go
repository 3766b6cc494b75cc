package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal HTTP client for the generation backend.
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient creates a client. baseURL may include a trailing slash; it will
// be normalized.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Submit posts a generation request and returns the created job.
func (c *Client) Submit(ctx context.Context, req Request) (*Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var job Job
	if err := c.doJSON(ctx, http.MethodPost, "/api/generate", bytes.NewReader(body), &job); err != nil {
		return nil, err
	}
	slog.Info("generation job submitted", "job_id", job.JobID)
	return &job, nil
}

// Job fetches the current state of a job.
func (c *Client) Job(ctx context.Context, id string) (*Job, error) {
	var job Job
	if err := c.doJSON(ctx, http.MethodGet, "/api/jobs/"+id, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Poll queries the job every interval until it reaches a terminal state or
// the context is cancelled. onUpdate, when non-nil, receives every observed
// state including the final one.
func (c *Client) Poll(ctx context.Context, id string, interval time.Duration, onUpdate func(*Job)) (*Job, error) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := c.Job(ctx, id)
		if err != nil {
			return nil, err
		}
		if onUpdate != nil {
			onUpdate(job)
		}
		if job.Status.Done() {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body *bytes.Reader, dest any) error {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	}
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("generate: server %s %s: %s", method, path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
