package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cleanflow-mumbai/api-go/session"
)

const eventBuffer = 16

// Client talks to the CleanFlow API over HTTP and adapts it to the
// session.AuthAPI and session.ProfileGateway interfaces. It caches the
// current token bundle and emits lifecycle events as auth calls succeed.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.Mutex
	session *session.Session

	events chan session.Event
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		events:  make(chan session.Event, eventBuffer),
	}
}

// NewSessionStore builds a client and a session store wired to it. The
// client serves as both the auth surface and the profile gateway.
func NewSessionStore(baseURL string) (*Client, *session.Store) {
	c := New(baseURL)
	return c, session.New(c, c)
}

// Events returns the auth lifecycle stream consumed by the session store.
func (c *Client) Events() <-chan session.Event {
	return c.events
}

// GetSession returns the cached token bundle, if any. The client holds no
// persistent storage, so a fresh client starts signed out.
func (c *Client) GetSession(ctx context.Context) (*session.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session, nil
}

// authResponse mirrors the flat token body issueTokens writes. expires_at
// is a Unix timestamp on the wire.
type authResponse struct {
	Success      bool          `json:"success"`
	Error        string        `json:"error"`
	TokenType    string        `json:"token_type"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresAt    int64         `json:"expires_at"`
	User         *session.User `json:"user"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) error {
	sess, err := c.authRequest(ctx, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	c.setSession(sess, session.SignedIn)
	return nil
}

// SignUp registers the account, then signs in with the same credentials so
// the caller ends the flow authenticated.
func (c *Client) SignUp(ctx context.Context, email, password, fullName string) error {
	body := map[string]string{
		"email":     email,
		"password":  password,
		"full_name": fullName,
	}
	if _, err := c.postJSON(ctx, "/api/register", body, nil); err != nil {
		return err
	}
	return c.SignIn(ctx, email, password)
}

func (c *Client) SignInWithGoogle(ctx context.Context, code, redirectURI string) error {
	sess, err := c.authRequest(ctx, "/api/auth/google", map[string]string{
		"code":         code,
		"redirect_uri": redirectURI,
	})
	if err != nil {
		return err
	}
	c.setSession(sess, session.SignedIn)
	return nil
}

func (c *Client) ResetPassword(ctx context.Context, email string) error {
	_, err := c.postJSON(ctx, "/api/reset-password", map[string]string{"email": email}, nil)
	return err
}

// SignOut revokes the refresh token server-side and clears the cache. The
// SIGNED_OUT event fires regardless of the remote outcome.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	sess := c.session
	c.session = nil
	c.mu.Unlock()

	c.emit(session.Event{Type: session.SignedOut})

	if sess == nil {
		return nil
	}
	_, err := c.postJSON(ctx, "/api/logout", map[string]string{
		"refresh_token": sess.RefreshToken,
	}, nil)
	return err
}

// Refresh rotates the refresh token and emits TOKEN_REFRESHED on success.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	sess := c.session
	c.mu.Unlock()
	if sess == nil {
		return fmt.Errorf("no session to refresh")
	}

	next, err := c.authRequest(ctx, "/api/refresh-token", map[string]string{
		"refresh_token": sess.RefreshToken,
	})
	if err != nil {
		return err
	}
	if next.User == nil {
		next.User = sess.User
	}
	c.setSession(next, session.TokenRefreshed)
	return nil
}

// GetProfile fetches a user's profile, translating HTTP failure modes into
// tagged profile errors.
func (c *Client) GetProfile(ctx context.Context, userID uint) (*session.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/users/%d/profile", c.baseURL, userID), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &session.ProfileFetchError{Kind: session.ProfileErrUnknown, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &session.ProfileFetchError{Kind: session.ProfileErrNotFound}
	case http.StatusServiceUnavailable:
		return nil, &session.ProfileFetchError{Kind: session.ProfileErrTableMissing}
	default:
		return nil, &session.ProfileFetchError{
			Kind: session.ProfileErrUnknown,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var out struct {
		Success bool            `json:"success"`
		Data    session.Profile `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &session.ProfileFetchError{Kind: session.ProfileErrUnknown, Err: err}
	}
	return &out.Data, nil
}

// CreateProfile asks the API to provision the caller's profile row. The
// server seeds defaults; the response carries the stored row.
func (c *Client) CreateProfile(ctx context.Context, profile *session.Profile) (*session.Profile, error) {
	var out struct {
		Success bool            `json:"success"`
		Data    session.Profile `json:"data"`
	}
	if _, err := c.postJSON(ctx, "/api/profile", profile, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) authRequest(ctx context.Context, path string, body any) (*session.Session, error) {
	var out authResponse
	if _, err := c.postJSON(ctx, path, body, &out); err != nil {
		return nil, err
	}
	sess := &session.Session{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         out.User,
	}
	if out.ExpiresAt > 0 {
		sess.ExpiresAt = time.Unix(out.ExpiresAt, 0)
	}
	return sess, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return resp.StatusCode, fmt.Errorf("%s: %s", path, apiErr.Error)
		}
		return resp.StatusCode, fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) authorize(req *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil && c.session.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.AccessToken)
	}
}

func (c *Client) setSession(sess *session.Session, evType session.EventType) {
	c.mu.Lock()
	c.session = sess
	c.mu.Unlock()
	c.emit(session.Event{Type: evType, Session: sess})
}

// emit never blocks the auth call path; the store drains promptly, and a
// full buffer drops the oldest event to keep the latest visible.
func (c *Client) emit(ev session.Event) {
	select {
	case c.events <- ev:
	default:
		select {
		case <-c.events:
		default:
		}
		select {
		case c.events <- ev:
		default:
		}
	}
}
