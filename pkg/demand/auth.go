package demand

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mitchellh/mapstructure"
)

// Session is the token pair issued by the auth service.
type Session struct {
	AccessToken  string `mapstructure:"accessToken" json:"accessToken"`
	RefreshToken string `mapstructure:"refreshToken" json:"refreshToken"`
}

// Session returns a copy of the current token pair.
func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SetSession installs a previously obtained token pair, for example one
// restored from a session store.
func (c *Client) SetSession(s Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

// Authenticated reports whether the client holds an access token. It does not
// check that the token is still valid.
func (c *Client) Authenticated() bool {
	_, err := c.accessToken()
	return err == nil
}

// Authenticate exchanges the configured username and password for a token
// pair and stores it on the client.
func (c *Client) Authenticate(ctx context.Context) (*Response, error) {
	status, body, err := c.postAuth(ctx, "/token/password", map[string]string{
		"clientId": c.clientID,
		"password": c.password,
		"username": c.username,
	})
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if status >= http.StatusBadRequest {
		return nil, &AuthenticationError{
			Op:         "authenticate",
			StatusCode: status,
			Body:       body,
		}
	}

	resp, session, err := decodeSession(body)
	if err != nil {
		return nil, &AuthenticationError{
			Op:         "authenticate",
			StatusCode: status,
			Body:       body,
			Err:        err,
		}
	}

	c.SetSession(session)
	c.logger.Info("authenticated", "username", c.username)

	return resp, nil
}

// RefreshAccessToken exchanges the stored refresh token for a new token pair.
// The auth service must answer 200; on any failure the current tokens are
// kept.
func (c *Client) RefreshAccessToken(ctx context.Context) (*Response, error) {
	current := c.Session()
	if current.RefreshToken == "" {
		return nil, ErrNotAuthenticated
	}

	status, body, err := c.postAuth(ctx, "/token/refresh", map[string]string{
		"clientId":     c.clientID,
		"refreshToken": current.RefreshToken,
	})
	if err != nil {
		return nil, fmt.Errorf("refresh access token: %w", err)
	}

	if status != http.StatusOK {
		return nil, &AuthenticationError{
			Op:         "refresh access token",
			StatusCode: status,
			Body:       body,
		}
	}

	resp, session, err := decodeSession(body)
	if err != nil {
		return nil, &AuthenticationError{
			Op:         "refresh access token",
			StatusCode: status,
			Body:       body,
			Err:        err,
		}
	}

	c.SetSession(session)
	c.logger.Debug("refreshed access token")

	return resp, nil
}

// Logout revokes the current token pair. The auth service must answer 204;
// the local session is cleared only then.
func (c *Client) Logout(ctx context.Context) error {
	current := c.Session()
	if current.AccessToken == "" {
		return ErrNotAuthenticated
	}

	status, body, err := c.postAuth(ctx, "/logout", map[string]string{
		"clientId":     c.clientID,
		"refreshToken": current.RefreshToken,
		"accessToken":  current.AccessToken,
	})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if status != http.StatusNoContent {
		return &AuthenticationError{
			Op:         "logout",
			StatusCode: status,
			Body:       body,
		}
	}

	c.SetSession(Session{})
	c.logger.Info("logged out", "username", c.username)

	return nil
}

// postAuth sends an unauthenticated JSON POST to the auth service and returns
// the status code and raw body.
func (c *Client) postAuth(ctx context.Context, path string, payload map[string]string) (int, []byte, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	endpoint := c.authBaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("auth response", "url", endpoint, "status", resp.StatusCode)

	return resp.StatusCode, body, nil
}

func decodeSession(body []byte) (*Response, Session, error) {
	resp, err := decodeResponse(body)
	if err != nil {
		return nil, Session{}, err
	}

	var session Session
	if err := mapstructure.Decode(resp.Object(), &session); err != nil {
		return nil, Session{}, fmt.Errorf("failed to decode tokens: %w", err)
	}
	if session.AccessToken == "" {
		return nil, Session{}, ErrMissingAccessToken
	}

	return resp, session, nil
}
