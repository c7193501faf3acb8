package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/poultrypro/poultryctl/pkg/domain"
)

// AuthData is the payload returned by the authentication endpoints.
type AuthData struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// AuthResponse is the full envelope from login/register/refresh. The Success
// flag can be false on a 2xx response; callers must check it.
type AuthResponse = Response[AuthData]

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Name     string           `json:"name"`
	Role     domain.Role      `json:"role"`
	FarmName string           `json:"farm_name,omitempty"`
	Location *domain.Location `json:"location,omitempty"`
}

// ProfileUpdate carries the fields of a profile that can change. Zero fields
// are omitted from the request body.
type ProfileUpdate struct {
	Name         string           `json:"name,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	ProfileImage string           `json:"profile_image,omitempty"`
	Location     *domain.Location `json:"location,omitempty"`
}

// Client is the PoultryPro API client.
//
// The bearer token lives in memory only; persisting it across restarts is the
// session controller's job, not the client's.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger

	mu    sync.RWMutex
	token string
}

// New creates a new API client rooted at baseURL with the given version
// prefix, e.g. New("https://api.poultrypro.com", "v1", log).
func New(baseURL, version string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL + "/" + version,
		log:     log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetAuthToken sets the bearer token attached to subsequent requests.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearAuthToken removes the in-memory bearer token.
func (c *Client) ClearAuthToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *Client) authToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// --- Authentication ---

// Login authenticates with email and password. A nil error does not imply
// success: the envelope's Success flag reflects the server's verdict.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &resp, nil
}

// Register creates a new account. Same envelope contract as Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &resp, nil
}

// Logout invalidates the server-side session for the current token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// RefreshToken exchanges the current token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/refresh", nil, &resp); err != nil {
		return nil, fmt.Errorf("client.RefreshToken: %w", err)
	}
	return &resp, nil
}

// --- Profile ---

// GetProfile returns the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	var resp Response[domain.User]
	if err := c.get(ctx, "/users/profile", &resp); err != nil {
		return nil, fmt.Errorf("client.GetProfile: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.GetProfile: %w", resp.failure())
	}
	return resp.Data, nil
}

// UpdateProfile applies a partial profile update. The envelope is returned to
// the caller so a success=false response can be observed with its message.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Response[domain.User], error) {
	var resp Response[domain.User]
	if err := c.doRequest(ctx, http.MethodPut, "/users/profile", update, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdateProfile: %w", err)
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPut, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send finishes and executes a prepared request: attaches auth and request-id
// headers, maps non-2xx responses to *HTTPError, and decodes the body into out.
func (c *Client) send(req *http.Request, out any) error {
	if tok := c.authToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).
			Msg("request failed")
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorFromResponse builds an *HTTPError from a non-2xx response, preferring
// the message in the JSON error body over the raw status text.
func (c *Client) errorFromResponse(resp *http.Response) error {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
	}
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(respBody, &apiErr) == nil {
		if apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		if apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
}

// errFromEnvelope turns a success=false envelope into a plain error.
func errFromEnvelope(message, errField string) error {
	switch {
	case message != "":
		return errors.New(message)
	case errField != "":
		return errors.New(errField)
	default:
		return errors.New("request failed")
	}
}
