package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultRetryMax = 3
	maxErrorBody    = 4 << 10
)

// TokenSource supplies the bearer credential for authenticated calls. An
// empty token means no session.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration // per request
	RetryMax   int           // attempts for idempotent reads, >= 1
	HTTPClient *http.Client
	Tokens     TokenSource
	Logger     logrus.FieldLogger
}

// Client talks to the course backend over HTTP/JSON.
type Client struct {
	base     *url.URL
	http     *http.Client
	timeout  time.Duration
	retryMax int
	tokens   TokenSource
	log      logrus.FieldLogger
}

// New creates a Client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must include scheme and host", opts.BaseURL)
	}

	c := &Client{
		base:     base,
		http:     opts.HTTPClient,
		timeout:  opts.Timeout,
		retryMax: opts.RetryMax,
		tokens:   opts.Tokens,
		log:      opts.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.retryMax < 1 {
		c.retryMax = defaultRetryMax
	}
	if c.tokens == nil {
		c.tokens = StaticToken("")
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	}
	return c, nil
}

// SetTokens swaps the credential source, e.g. after login.
func (c *Client) SetTokens(ts TokenSource) {
	if ts == nil {
		ts = StaticToken("")
	}
	c.tokens = ts
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string { return c.base.String() }

type request struct {
	method string
	path   string
	body   interface{}
	auth   bool // credential required, fail before sending when absent
}

// do performs a single request and decodes a 2xx JSON body into out. A nil
// out discards the body.
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	token := c.tokens.Token()
	if r.auth && token == "" {
		return ErrAuthMissing
	}

	var payload io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
		payload = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, r.method, c.base.String()+r.path, payload)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	log := c.log.WithFields(logrus.Fields{
		"method":     r.method,
		"path":       r.path,
		"request_id": requestID,
	})
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return &TransportError{Method: r.method, Path: r.path, Err: err}
	}
	defer resp.Body.Close()

	log = log.WithFields(logrus.Fields{"status": resp.StatusCode, "elapsed": time.Since(start)})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Debug("request rejected")
		return &StatusError{
			Method:  r.method,
			Path:    r.path,
			Code:    resp.StatusCode,
			Message: serverMessage(body),
		}
	}
	log.Debug("request completed")

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: r.method, Path: r.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &decodeError{err: fmt.Errorf("decode %s %s: %w", r.method, r.path, err)}
	}
	return nil
}

var errEmptyBody = errors.New("empty response body")

// decodeError is a 2xx response whose body did not match the expected shape.
type decodeError struct{ err error }

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// serverMessage extracts human readable text from an error body. JSON
// bodies are searched for the usual detail/error/message keys.
func serverMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"detail", "error", "message"} {
			switch v := obj[key].(type) {
			case string:
				return v
			case nil:
			default:
				if b, err := json.Marshal(v); err == nil {
					return string(b)
				}
			}
		}
	}
	return string(body)
}
