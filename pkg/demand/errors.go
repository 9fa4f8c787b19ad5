package demand

import (
	"errors"
	"fmt"

	"github.com/dynata/demandapi/pkg/demand/schema"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("invalid client configuration")

	// ErrNotAuthenticated is returned by resource operations called before a
	// session has been established.
	ErrNotAuthenticated = errors.New("the client must be authenticated before calling this method")

	// ErrMissingAccessToken is wrapped in an *AuthenticationError when the
	// auth service accepts a request but its response carries no token.
	ErrMissingAccessToken = errors.New("response did not include an access token")
)

// ValidationError reports request data that does not match its schema.
type ValidationError = schema.ValidationError

// ConfigurationError is returned by NewClient when credentials are missing or
// the schema bundle cannot be loaded.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// AuthenticationError is returned when the auth service rejects a token,
// refresh or logout request, or accepts one with an unusable response. Err is
// set in the latter case.
type AuthenticationError struct {
	Op         string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.StatusCode, string(e.Body))
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// APIRequestError is returned when a resource endpoint responds with a status
// of 400 or above. Body holds the raw response body.
type APIRequestError struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (e *APIRequestError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, string(e.Body))
}

// BusinessRuleError is returned when a request succeeds at the HTTP layer but
// the response reports that the operation did not.
type BusinessRuleError struct {
	Op       string
	Message  string
	Response *Response
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("%s: API responded with status message %q", e.Op, e.Message)
}
