// Package chatui is the chat client: an HTTP client for the backend and a
// session that owns the transcript and the Idle/Submitting state machine.
package chatui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"devchat/internal/models"
)

const (
	MsgCannotConnect   = "Cannot connect to the chat service. Please ensure the backend is running."
	MsgTooManyRequests = "Too many requests. Please try again later."
	MsgInvalidReply    = "Received an invalid response from the chat service."
)

// ConnectionError is a transport-level failure: the backend was not reached.
type ConnectionError struct{ Err error }

func (e *ConnectionError) Error() string { return "chat service unreachable: " + e.Err.Error() }

func (e *ConnectionError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response. Body is nil when the response was not
// a JSON error object.
type StatusError struct {
	StatusCode int
	Body       *models.ErrorResponse
}

func (e *StatusError) Error() string { return fmt.Sprintf("chat service returned %d", e.StatusCode) }

// DisplayMessage turns the response into one line for the user.
func (e *StatusError) DisplayMessage() string {
	if e.Body == nil {
		if e.StatusCode == http.StatusTooManyRequests {
			return MsgTooManyRequests
		}
		return fmt.Sprintf("Server error: %d. Please try again.", e.StatusCode)
	}

	switch m := e.Body.Message.(type) {
	case []interface{}:
		parts := make([]string, 0, len(m))
		for _, v := range m {
			parts = append(parts, fmt.Sprint(v))
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	case string:
		if m != "" {
			return m
		}
	}
	if e.Body.Error != "" {
		return e.Body.Error
	}
	return fmt.Sprintf("Server error: %d", e.StatusCode)
}

// DescribeError converts any Send failure into display text.
func DescribeError(err error) string {
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return MsgCannotConnect
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.DisplayMessage()
	}
	return err.Error()
}

// Client talks to the chat backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. A nil httpClient means
// http.DefaultClient; no request deadline is added.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Send posts one message and returns the reply text.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return "", &ConnectionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ConnectionError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body *models.ErrorResponse
		if json.Unmarshal(data, &body) != nil {
			body = nil
		}
		return "", &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	var reply models.ChatResponse
	if err := json.Unmarshal(data, &reply); err != nil {
		return "", errors.New(MsgInvalidReply)
	}
	return reply.Reply, nil
}
