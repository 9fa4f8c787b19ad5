package demand

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/afero"
)

const (
	// DefaultBaseHost is used when no base host is configured.
	DefaultBaseHost = "https://api.researchnow.com"

	// EnvPrefix is the prefix of the environment variables read by
	// LoadEnvironment, e.g. DYNATA_DEMAND_CLIENT_ID.
	EnvPrefix = "DYNATA_DEMAND"
)

// Config contains the credentials and settings for a Client.
type Config struct {
	ClientID string
	Username string
	Password string

	// BaseHost is the scheme and host of the API, without a path.
	// Default: https://api.researchnow.com
	BaseHost string

	// Timeout for each HTTP request. Zero means no timeout.
	// Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient overrides the HTTP client used for all requests (optional).
	HTTPClient *http.Client

	// SchemaDir loads request schemas from a directory instead of the bundled
	// set (optional).
	SchemaDir string

	// SchemaFS loads request schemas from a filesystem instead of the bundled
	// set (optional). Takes precedence over SchemaDir.
	SchemaFS afero.Fs

	Logger hclog.Logger
}

// Environment holds the settings that can be supplied through environment
// variables.
type Environment struct {
	ClientID string `split_words:"true"`
	Username string
	Password string
	BaseURL  string `split_words:"true"`
}

// LoadEnvironment reads DYNATA_DEMAND_CLIENT_ID, DYNATA_DEMAND_USERNAME,
// DYNATA_DEMAND_PASSWORD and DYNATA_DEMAND_BASE_URL from the process
// environment.
func LoadEnvironment() (Environment, error) {
	var env Environment
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Environment{}, fmt.Errorf("error reading environment: %w", err)
	}
	return env, nil
}

// ResolveConfig fills unset credentials in explicit from env, and the base
// host from env or DefaultBaseHost. Explicit values always win.
func ResolveConfig(explicit Config, env Environment) Config {
	cfg := explicit

	if cfg.ClientID == "" {
		cfg.ClientID = env.ClientID
	}
	if cfg.Username == "" {
		cfg.Username = env.Username
	}
	if cfg.Password == "" {
		cfg.Password = env.Password
	}
	if cfg.BaseHost == "" {
		cfg.BaseHost = env.BaseURL
	}
	if cfg.BaseHost == "" {
		cfg.BaseHost = DefaultBaseHost
	}

	return cfg
}

// Validate checks that all credentials are present and the base host is a
// usable URL.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ClientID, validation.Required),
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.BaseHost, validation.Required, validation.By(httpURL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("must be a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host")
	}

	return nil
}

func (c Config) newHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{
		Timeout: c.Timeout,
	}
}

func (c Config) baseHost() string {
	return strings.TrimRight(c.BaseHost, "/")
}
