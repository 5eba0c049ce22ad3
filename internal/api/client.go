package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-terminal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// envelope is the wire shape of every API response. It is decoded once here
// and surfaced to callers as a Result, so stores never probe raw JSON fields.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Action  string          `json:"action"`
}

// Result is the success side of a decoded envelope.
type Result struct {
	Data   json.RawMessage
	Action string
}

// Decode unmarshals the envelope's data payload into out. A nil out skips
// decoding for endpoints whose payload the caller does not need.
func (r *Result) Decode(out any) error {
	if out == nil || len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, out); err != nil {
		return &TransportError{Op: "decode response data", Err: err}
	}
	return nil
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client issues authenticated JSON requests against the remote API. The
// bearer token is the only mutable shared state and is guarded by a mutex:
// it is set on login / session restore and cleared on logout.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.ZapLogger

	mu    sync.RWMutex
	token string
}

func NewClient(cfg *Config, log logger.ZapLogger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Do performs one request/response exchange and decodes the envelope.
// Failures split into *TransportError (nothing usable came back) and
// *ApplicationError (the server said no).
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Result, error) {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Op: "encode request body", Err: err}
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		// Non-2xx without a JSON body still counts as an application
		// rejection; the status code is all we know.
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &ApplicationError{Status: resp.StatusCode}
		}
		return nil, &TransportError{Op: "decode envelope", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return nil, &ApplicationError{Status: resp.StatusCode, Message: env.Message}
	}

	return &Result{Data: env.Data, Action: env.Action}, nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	res, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return res.Decode(out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	res, err := c.Do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return res.Decode(out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	res, err := c.Do(ctx, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	return res.Decode(out)
}

// Delete returns the raw Result because delete endpoints report how the
// record was removed through the envelope's action tag.
func (c *Client) Delete(ctx context.Context, path string) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}
