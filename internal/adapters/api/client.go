// Package api is the REST adapter for the blog API. It implements ports.AuthAPI
// and ports.BlogAPI and centralizes bearer credential attachment and 401 handling.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"

	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
	"github.com/favoriteblog/blog-ui/internal/observability/metrics"
	"github.com/favoriteblog/blog-ui/internal/observability/statsd"
	"github.com/favoriteblog/blog-ui/internal/ports"
)

const (
	// DefaultBaseURL is where the blog API listens in development.
	DefaultBaseURL = "http://localhost:5000/api"
	// DefaultErrorExpression extracts the human-readable message from an error body.
	DefaultErrorExpression = "error || message || errors[0].msg"

	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 10 << 20

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI = (*Client)(nil)
	_ ports.BlogAPI = (*Client)(nil)
)

// CredentialSource supplies the current bearer credential and receives 401 notifications.
// The session store implements it.
type CredentialSource interface {
	Credential() (string, bool)
	Invalidate(ctx context.Context, credential string) bool
}

// Options configures a Client.
type Options struct {
	BaseURL string
	// ErrorExpression is a JMESPath expression evaluated against JSON error bodies.
	ErrorExpression string
	UserAgent       string
	Timeout         time.Duration
	HTTPClient      *http.Client // Optional, built with a cookie jar when nil
	Logger          *slog.Logger
	Metrics         statsd.Sink // Optional
}

// Client talks to the blog API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	errorExpr  string
	userAgent  string
	logger     *slog.Logger
	metrics    statsd.Sink

	mu     sync.RWMutex
	source CredentialSource
}

// NewClient validates opts and builds a Client.
func NewClient(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse API base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("API base URL must be http or https, got %q", raw)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("API base URL has no host: %q", raw)
	}

	expr := strings.TrimSpace(opts.ErrorExpression)
	if expr == "" {
		expr = DefaultErrorExpression
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid error expression %q: %w", expr, err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout, Jar: jar}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "favoriteblog-ui"
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		errorExpr:  expr,
		userAgent:  userAgent,
		logger:     logger.With("component", "api"),
		metrics:    opts.Metrics,
	}, nil
}

// SetSession binds the credential source used for authenticated requests.
func (c *Client) SetSession(src CredentialSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = src
}

func (c *Client) credentialSource() CredentialSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

type authMode int

const (
	// authNone never attaches a credential.
	authNone authMode = iota
	// authOptional attaches the session credential when one exists.
	authOptional
	// authRequired fails locally when there is no credential.
	authRequired
)

type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	auth        authMode
	// credential overrides the session credential (restore and logout use an explicit one).
	credential string
}

func jsonRequest(method, path string, payload any, auth authMode) (request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("encode request body: %w", err)
	}
	return request{method: method, path: path, body: body, contentType: "application/json", auth: auth}, nil
}

// do executes req and decodes a successful JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	credential := req.credential
	if credential == "" && req.auth != authNone {
		if src := c.credentialSource(); src != nil {
			credential, _ = src.Credential()
		}
	}
	if credential == "" && req.auth == authRequired {
		return apperrors.Unauthorized("Please log in")
	}

	target := c.baseURL.JoinPath(req.path)
	if len(req.query) > 0 {
		target.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target.String(), body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Could not build request")
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(RequestIDHeader, requestID)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	start := time.Now()
	resp, err := c.clientFor(ctx, credential).Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "api request failed",
			"method", req.method, "path", req.path, "request_id", requestID, "error", err)
		err = transportError(ctx, err)
		c.observe(req, 0, time.Since(start), err)
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	elapsed := time.Since(start)
	c.logger.DebugContext(ctx, "api request",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", elapsed.Milliseconds(),
	)
	if err != nil {
		err = apperrors.Network(err)
		c.observe(req, resp.StatusCode, elapsed, err)
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := c.decodeError(resp.StatusCode, data)
		c.observe(req, resp.StatusCode, elapsed, apiErr)
		if resp.StatusCode == http.StatusUnauthorized && credential != "" {
			if src := c.credentialSource(); src != nil {
				src.Invalidate(ctx, credential)
			}
		}
		return apiErr
	}

	c.observe(req, resp.StatusCode, elapsed, nil)
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "Unexpected response from %s", req.path)
	}
	return nil
}

// clientFor returns the shared client, or an oauth2 client attaching credential as a bearer token.
func (c *Client) clientFor(ctx context.Context, credential string) *http.Client {
	if credential == "" {
		return c.httpClient
	}
	base := context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(base, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: credential,
		TokenType:   "Bearer",
	}))
}

func transportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "The server took too long to respond")
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "Request canceled")
	default:
		return apperrors.Network(err)
	}
}

// decodeError maps an error response onto an AppError carrying the API's own message.
func (c *Client) decodeError(status int, body []byte) *apperrors.AppError {
	msg := c.extractMessage(body)
	if msg == "" {
		msg = "Request failed with status code " + strconv.Itoa(status)
	}
	return &apperrors.AppError{Code: codeForStatus(status), Message: msg, Status: status}
}

func (c *Client) extractMessage(body []byte) string {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	v, err := jmespath.Search(c.errorExpr, doc)
	if err != nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func codeForStatus(status int) apperrors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrCodeValidation
	case http.StatusUnauthorized:
		return apperrors.ErrCodeUnauthorized
	case http.StatusForbidden:
		return apperrors.ErrCodeForbidden
	case http.StatusNotFound:
		return apperrors.ErrCodeNotFound
	case http.StatusConflict:
		return apperrors.ErrCodeConflict
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return apperrors.ErrCodeTimeout
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return apperrors.ErrCodeNetwork
	default:
		return apperrors.ErrCodeInternal
	}
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func idPath(prefix, id string, suffix ...string) string {
	p := prefix + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func (c *Client) observe(req request, status int, elapsed time.Duration, err error) {
	metrics.EmitAPIRequest(c.metrics, metrics.Request{
		Method:   req.method,
		Endpoint: endpointName(req.path),
		Status:   status,
		Duration: elapsed,
		Err:      err,
	})
}

// endpointName is the first path segment, so ids never become tag values.
func endpointName(path string) string {
	name, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if name == "" {
		return "root"
	}
	return name
}
