package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/kwyt0087/AI-employee-takes-leave/internal"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/notify"
)

// TokenSource yields the persisted session credential, "" when logged out.
type TokenSource interface {
	Token() string
}

// SessionTeardown destroys the persisted session (token + user snapshot).
type SessionTeardown interface {
	Destroy() error
}

// RedirectScheduler schedules a navigation after a delay. The 401 handler
// uses it to send the user back to the login view.
type RedirectScheduler interface {
	ScheduleRedirect(path string, delay time.Duration)
}

// RequestInterceptor runs on every outgoing request before it is sent.
type RequestInterceptor func(*http.Request)

// BearerToken returns the interceptor that attaches the Authorization
// header when a token is present, and leaves the request untouched when not.
func BearerToken(tokens TokenSource) RequestInterceptor {
	return func(req *http.Request) {
		if token := tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

type Config struct {
	BaseURL       string
	Timeout       time.Duration
	LoginPath     string
	RedirectDelay time.Duration
}

// Client is the single configured request instance every API module goes
// through. It owns the base URL, the one global timeout, the bearer-token
// request interceptor and the response side: unwrap JSON on success, map
// the failure taxonomy and push a notification on error. The error is
// always returned to the caller after the side effects.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	logger        *slog.Logger
	notifier      notify.Notifier
	sessions      SessionTeardown
	redirects     RedirectScheduler
	loginPath     string
	redirectDelay time.Duration
	interceptors  []RequestInterceptor
}

func NewClient(
	config Config,
	tokens TokenSource,
	sessions SessionTeardown,
	redirects RedirectScheduler,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Client {
	return &Client{
		baseURL:       strings.TrimRight(config.BaseURL, "/"),
		httpClient:    &http.Client{Timeout: config.Timeout},
		logger:        logger,
		notifier:      notifier,
		sessions:      sessions,
		redirects:     redirects,
		loginPath:     config.LoginPath,
		redirectDelay: config.RedirectDelay,
		interceptors:  []RequestInterceptor{BearerToken(tokens)},
	}
}

// Use appends a request interceptor. Interceptors run in registration order.
func (c *Client) Use(interceptor RequestInterceptor) {
	c.interceptors = append(c.interceptors, interceptor)
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	reader, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", reader, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	reader, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, "application/json", reader, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, out)
}

// FileUpload describes the file part of a multipart request.
type FileUpload struct {
	FieldName string
	FileName  string
	Content   io.Reader
}

// PostMultipart sends fields plus one file as multipart/form-data.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file FileUpload, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return internal.NewParseError(fmt.Errorf("write form field %s: %w", name, err))
		}
	}

	part, err := writer.CreateFormFile(file.FieldName, file.FileName)
	if err != nil {
		return internal.NewParseError(fmt.Errorf("create form file: %w", err))
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return internal.NewParseError(fmt.Errorf("copy file content: %w", err))
	}
	if err := writer.Close(); err != nil {
		return internal.NewParseError(fmt.Errorf("finalize multipart body: %w", err))
	}

	return c.do(ctx, http.MethodPost, path, writer.FormDataContentType(), &buf, out)
}

func encodeBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, internal.NewParseError(fmt.Errorf("encode request body: %w", err))
	}
	return bytes.NewReader(data), nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return internal.NewNetworkError(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	for _, interceptor := range c.interceptors {
		interceptor(req)
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := internal.NewNetworkError(err)
		c.logger.Warn("api request failed", "method", method, "path", path, "error", err)
		c.notifier.Notify(apiErr.UserMessage())
		return apiErr
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			apiErr := internal.NewParseError(err)
			c.logger.Warn("api response decode failed",
				"method", method, "path", path, "status", resp.StatusCode, "error", err)
			c.notifier.Notify(apiErr.UserMessage())
			return apiErr
		}
		return nil
	}

	apiErr := c.mapFailure(resp)
	c.logger.Warn("api error response",
		"method", method, "path", path, "status", resp.StatusCode, "kind", apiErr.Kind)
	c.notifier.Notify(apiErr.UserMessage())

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
	}

	return apiErr
}

// errorEnvelope is the backend's failure body; detail carries the
// user-facing message when the server supplies one.
type errorEnvelope struct {
	Detail string `json:"detail"`
}

func (c *Client) mapFailure(resp *http.Response) *internal.APIError {
	var envelope errorEnvelope
	if data, err := io.ReadAll(resp.Body); err == nil {
		// body may be empty or non-JSON; the detail just stays blank
		json.Unmarshal(data, &envelope)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return internal.NewValidationError(envelope.Detail)
	case http.StatusUnauthorized:
		return internal.NewUnauthorizedError()
	case http.StatusForbidden:
		return internal.NewForbiddenError()
	case http.StatusNotFound:
		return internal.NewNotFoundError()
	case http.StatusInternalServerError:
		return internal.NewServerError()
	default:
		return internal.NewUnexpectedError(resp.StatusCode, envelope.Detail)
	}
}

// handleUnauthorized tears the local session down and schedules the login
// redirect. Concurrent 401s each run this independently; teardown is
// idempotent and the extra redirects collapse into one navigation.
func (c *Client) handleUnauthorized() {
	if err := c.sessions.Destroy(); err != nil {
		c.logger.Error("destroy session after 401", "error", err)
	}
	c.redirects.ScheduleRedirect(c.loginPath, c.redirectDelay)
}
