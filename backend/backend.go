package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NoResponse is returned as the model text when the reply has no "response" field.
const NoResponse = "No response from model."

// DefaultMaxReplyBytes caps how much of a model server reply is read.
const DefaultMaxReplyBytes = 16 << 20

var (
	ErrUpstreamStatus = errors.New("model server returned an error status")
	ErrMalformedReply = errors.New("malformed reply from model server")
)

// Client sends prompts to the model server's generate endpoint.
type Client struct {
	endpoint      string
	model         string
	maxReplyBytes int64
	httpClient    *http.Client
}

// NewBackendClient creates a Client for the given generate endpoint and model.
// A zero timeout leaves calls unbounded.
func NewBackendClient(endpoint, model string, timeout time.Duration) *Client {
	return &Client{
		endpoint:      endpoint,
		model:         model,
		maxReplyBytes: DefaultMaxReplyBytes,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Model returns the model name sent with every prompt.
func (c *Client) Model() string {
	return c.model
}

// Generate sends a single non-streaming generate request for prompt.
// It never returns an error directly; failures are reported through the Outcome.
func (c *Client) Generate(ctx context.Context, prompt string) Outcome {
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Text: text}
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ModelPayload{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxReplyBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading reply from %s: %w", c.endpoint, err)
	}
	if int64(len(data)) > c.maxReplyBytes {
		return "", fmt.Errorf("%w: reply exceeds %d bytes", ErrMalformedReply, c.maxReplyBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var reply ModelReply
		if json.Unmarshal(data, &reply) == nil && reply.Error != "" {
			return "", fmt.Errorf("%w: %s for url %s: %s", ErrUpstreamStatus, resp.Status, c.endpoint, reply.Error)
		}
		return "", fmt.Errorf("%w: %s for url %s", ErrUpstreamStatus, resp.Status, c.endpoint)
	}

	var reply ModelReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if reply.Response == nil {
		return NoResponse, nil
	}
	return *reply.Response, nil
}
