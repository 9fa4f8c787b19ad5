package demand

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/dynata/demandapi/pkg/demand/schema"
)

const (
	authPath     = "/auth/v1"
	resourcePath = "/sample/v1"

	accessTokenHeader = "oauth_access_token"
)

// Query holds query string parameters for list endpoints. Values are
// formatted with fmt; string slices become repeated parameters.
type Query map[string]any

// Encode returns the URL-encoded form of the query, sorted by key.
func (q Query) Encode() string {
	values := url.Values{}
	for k, v := range q {
		switch v := v.(type) {
		case []string:
			values[k] = v
		default:
			values.Set(k, fmt.Sprint(v))
		}
	}
	return values.Encode()
}

func (q Query) orEmpty() Query {
	if q == nil {
		return Query{}
	}
	return q
}

// Client is a Demand API client. Create one with NewClient and call
// Authenticate before any resource method.
type Client struct {
	clientID string
	username string
	password string

	authBaseURL string
	baseURL     string

	httpClient *http.Client
	schemas    *schema.Registry
	logger     hclog.Logger

	mu      sync.RWMutex
	session Session
}

// NewClient validates the configuration and loads the request schemas. It
// does not contact the API.
//
// NewClient does not read the environment. Use NewClientFromEnvironment, or
// pass the result of ResolveConfig, to fall back to DYNATA_DEMAND_* variables.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseHost == "" {
		cfg.BaseHost = DefaultBaseHost
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigurationError{
			Msg: "all authentication data is required",
			Err: err,
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	logger := cfg.Logger.Named("demand-client")

	fsys := cfg.SchemaFS
	if fsys == nil && cfg.SchemaDir != "" {
		fsys = schema.Dir(cfg.SchemaDir)
	}
	if fsys == nil {
		fsys = schema.Bundled()
	}

	registry, err := schema.NewRegistry(schema.RegistryConfig{
		Fs:     fsys,
		Logger: logger,
	})
	if err != nil {
		return nil, &ConfigurationError{
			Msg: "error loading request schemas",
			Err: err,
		}
	}

	return newClient(cfg, registry, logger), nil
}

// NewClientFromEnvironment fills unset credentials and the base host from the
// DYNATA_DEMAND_* environment variables, then calls NewClient.
func NewClientFromEnvironment(explicit Config) (*Client, error) {
	env, err := LoadEnvironment()
	if err != nil {
		return nil, &ConfigurationError{
			Msg: "error reading environment",
			Err: err,
		}
	}
	return NewClient(ResolveConfig(explicit, env))
}

func newClient(cfg Config, registry *schema.Registry, logger hclog.Logger) *Client {
	host := cfg.baseHost()
	return &Client{
		clientID:    cfg.ClientID,
		username:    cfg.Username,
		password:    cfg.Password,
		authBaseURL: host + authPath,
		baseURL:     host + resourcePath,
		httpClient:  cfg.newHTTPClient(),
		schemas:     registry,
		logger:      logger,
	}
}

// Schemas returns the registry used to validate requests.
func (c *Client) Schemas() *schema.Registry {
	return c.schemas
}

// accessToken returns the current access token, or ErrNotAuthenticated. It
// only checks presence, not validity.
func (c *Client) accessToken() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session.AccessToken == "" {
		return "", ErrNotAuthenticated
	}
	return c.session.AccessToken, nil
}

func (c *Client) get(ctx context.Context, path string, query Query) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// do sends one authenticated request to a resource endpoint. There are no
// retries.
func (c *Client) do(ctx context.Context, method, path string, query Query, body any) (*Response, error) {
	token, err := c.accessToken()
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set directly so the header name is sent as-is rather than canonicalized.
	req.Header[accessTokenHeader] = []string{token}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending request", "method", method, "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("received response",
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIRequestError{
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       respBody,
		}
	}

	return decodeResponse(respBody)
}

// decodeResponse decodes a body of any JSON type. An empty body yields an
// empty Response.
func decodeResponse(body []byte) (*Response, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return &Response{}, nil
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &Response{value: value}, nil
}
