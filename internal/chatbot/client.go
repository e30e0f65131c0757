// Package chatbot wraps the shopping-assistant service's HTTP contract and
// owns the conversation transcript on behalf of one widget.
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"shopassist/internal/models"
	"shopassist/internal/transcript"
)

// DefaultHistoryWindow caps how many transcript lines accompany a message on
// the wire. Older lines stay in the transcript but are never transmitted.
const DefaultHistoryWindow = 10

const defaultTimeout = 30 * time.Second

// Client talks to the assistant service on behalf of one conversation. Send
// never returns an error: transport failures, bad statuses and unreadable
// bodies all collapse into the fallback record so the caller always has
// something to render.
type Client struct {
	serviceURL string
	httpClient *http.Client
	log        logrus.FieldLogger
	window     int
	transcript *transcript.Log
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout replaces the default HTTP client with one using the given
// timeout. Use either this or WithHTTPClient, not both.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// WithHistoryWindow overrides how many recent lines go out on the wire.
func WithHistoryWindow(n int) Option {
	return func(c *Client) { c.window = n }
}

func New(serviceURL string, opts ...Option) *Client {
	c := &Client{
		serviceURL: strings.TrimRight(serviceURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logrus.StandardLogger(),
		window:     DefaultHistoryWindow,
		transcript: transcript.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts the message together with the recent history window and returns
// the assistant's record. On transport failure, a non-2xx status or an
// unparseable body it returns the fallback record and leaves the transcript
// untouched. Any parsed 2xx reply appends the User/Assistant pair to the
// transcript regardless of the record's success flag or missing fields. The
// message is transmitted as given, even when empty; filtering blank input is
// the caller's concern.
func (c *Client) Send(ctx context.Context, message string) models.ChatResponse {
	resp, err := Call(ctx, c.httpClient, c.serviceURL, message, c.transcript.Tail(c.window))
	if err != nil {
		c.log.WithField("error", err).Warn("chat exchange failed, serving fallback")
		return models.FallbackResponse()
	}

	c.transcript.Append(models.UserLine(message), models.AssistantLine(resp.Response))
	return resp
}

// History returns the full transcript, oldest first. The slice is a copy.
func (c *Client) History() []string {
	return c.transcript.Lines()
}

// ClearHistory empties the transcript.
func (c *Client) ClearHistory() {
	c.transcript.Clear()
}

// Call performs one bare exchange against serviceURL's /chat endpoint with a
// caller-supplied history window. Callers that keep their own transcripts,
// like the gateway, use this directly; Client.Send builds on it.
func Call(ctx context.Context, hc *http.Client, serviceURL, message string, history []string) (models.ChatResponse, error) {
	if history == nil {
		history = []string{}
	}
	payload, err := json.Marshal(models.ChatRequest{Message: message, History: history})
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(serviceURL, "/")+"/chat", bytes.NewReader(payload))
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("failed reading chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.ChatResponse{}, fmt.Errorf("chat non-success status=%d body=%s", resp.StatusCode, truncate(string(body), 400))
	}

	var parsed models.ChatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.ChatResponse{}, fmt.Errorf("failed to parse chat response: %s", truncate(string(body), 400))
	}
	return parsed, nil
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
