package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is where the service listens when nothing is configured.
const DefaultBaseURL = "http://localhost:8000"

// FeedbackPath is the route of the feedback endpoint.
const FeedbackPath = "/grammar_feedback"

const maxResponseBytes = 4 << 20

// Error is a non-2xx reply from the service.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("feedback service returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("feedback service returned %d", e.Status)
}

// Message returns the text shown to the user for a failed submission: the
// service's detail when it sent one, otherwise the error itself.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its timeout is kept.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient returns a client for the service at baseURL. A zero timeout
// disables the per-request deadline.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// GrammarFeedback submits one draft. A missing feedback_list decodes as an
// empty list.
func (c *Client) GrammarFeedback(ctx context.Context, req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+FeedbackPath, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error().Err(err).Str("url", httpReq.URL.String()).Msg("feedback request failed")
		return Response{}, fmt.Errorf("post %s: %w", FeedbackPath, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Debug().Err(cerr).Msg("failed to close response body")
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Int("draft", req.DraftNumber).
		Dur("elapsed", time.Since(start)).
		Msg("feedback response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, &Error{Status: resp.StatusCode, Detail: errorDetail(raw)}
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// errorDetail extracts {"detail": ...}. String details are returned as is;
// structured ones (validation error lists) as compact JSON.
func errorDetail(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, body.Detail); err != nil {
		return ""
	}
	if buf.String() == "null" {
		return ""
	}
	return buf.String()
}
