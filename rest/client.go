package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/medichat/medichat"
)

// Interface compliance checks.
var (
	_ medichat.AuthService    = (*Client)(nil)
	_ medichat.ChatService    = (*Client)(nil)
	_ medichat.ProfileService = (*Client)(nil)
	_ medichat.UserService    = (*Client)(nil)
)

// Client talks to the MediChat API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() string
	requestID  func() string
	logger     *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token source, called once per request.
func WithToken(fn func() string) Option {
	return func(c *Client) { c.token = fn }
}

// WithRequestID overrides the X-Request-ID generator.
func WithRequestID(fn func() string) Option {
	return func(c *Client) { c.requestID = fn }
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new [Client].
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		token:      func() string { return "" },
		requestID:  uuid.NewString,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Login exchanges credentials for a session token. The body is
// form-encoded.
func (c *Client) Login(ctx context.Context, creds medichat.Credentials) (medichat.LoginResult, error) {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	req, err := c.newRequest(ctx, http.MethodPost, tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return medichat.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var res medichat.LoginResult
	if err := c.do(req, &res); err != nil {
		return medichat.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	return res, nil
}

// Register creates a new ordinary user account.
func (c *Client) Register(ctx context.Context, reg medichat.Registration) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, registerPath, reg)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Chat sends one chat turn with its history.
func (c *Client) Chat(ctx context.Context, chatReq medichat.ChatRequest) (medichat.ChatResponse, error) {
	if chatReq.History == nil {
		chatReq.History = []medichat.HistoryEntry{}
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, chatPath, chatReq)
	if err != nil {
		return medichat.ChatResponse{}, fmt.Errorf("chat: %w", err)
	}
	c.authorize(req)

	var resp medichat.ChatResponse
	if err := c.do(req, &resp); err != nil {
		return medichat.ChatResponse{}, fmt.Errorf("chat: %w", err)
	}
	return resp, nil
}

// UpdateProfile changes the caller's own name or password.
func (c *Client) UpdateProfile(ctx context.Context, upd medichat.ProfileUpdate) error {
	req, err := c.newJSONRequest(ctx, http.MethodPut, profilePath, upd)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	c.authorize(req)
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// ListUsers returns every account. Requires the admin role.
func (c *Client) ListUsers(ctx context.Context) ([]medichat.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, adminUsersPath, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	c.authorize(req)

	var users []medichat.User
	if err := c.do(req, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser edits another user's name and, when set, password.
func (c *Client) UpdateUser(ctx context.Context, username string, upd medichat.UserUpdate) error {
	req, err := c.newJSONRequest(ctx, http.MethodPut, userPath(username), upd)
	if err != nil {
		return fmt.Errorf("update user %s: %w", username, err)
	}
	c.authorize(req)
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("update user %s: %w", username, err)
	}
	return nil
}

// DeleteUser removes another user.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, userPath(username), nil)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", username, err)
	}
	c.authorize(req)
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("delete user %s: %w", username, err)
	}
	return nil
}

func userPath(username string) string {
	return adminUsersPath + "/" + url.PathEscape(username)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, c.requestID())
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, v any) (*http.Request, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// authorize sets the bearer header. Without a token the request goes out
// unauthenticated and the server answers 401.
func (c *Client) authorize(req *http.Request) {
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

// do sends req and decodes a 2xx JSON body into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(req.Context(), "request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", req.Header.Get(requestIDHeader),
			"error", err)
		return err
	}
	defer resp.Body.Close()

	c.logger.DebugContext(req.Context(), "request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", req.Header.Get(requestIDHeader))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseHTTPError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseHTTPError(resp *http.Response) error {
	apiErr := &medichat.Error{Status: resp.StatusCode}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return apiErr
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		apiErr.Detail = detail
	}
	return apiErr
}
