package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"

	"github.com/dynata/demandapi/pkg/demand"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the CLI configuration file.
//
// Example:
//
//	demand {
//	  client_id = "my-client"
//	  username  = "api-user"
//	  base_host = "https://api.researchnow.com"
//	  timeout   = "30s"
//	}
//
//	output {
//	  format = "yaml"
//	}
type Config struct {
	Demand *Demand `hcl:"demand,block"`
	Output *Output `hcl:"output,block"`
}

// Demand holds the client settings. Every attribute is optional; unset
// credentials fall back to the environment.
type Demand struct {
	ClientID  string `hcl:"client_id,optional"`
	Username  string `hcl:"username,optional"`
	Password  string `hcl:"password,optional"`
	BaseHost  string `hcl:"base_host,optional"`
	Timeout   string `hcl:"timeout,optional"`
	SchemaDir string `hcl:"schema_dir,optional"`
}

// Output controls how command results are printed.
type Output struct {
	Format string `hcl:"format,optional"`
}

// LoadFile parses an HCL configuration file.
func LoadFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	var cfg Config
	if err := hclsimple.DecodeFile(filename, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Output != nil {
		switch c.Output.Format {
		case "", FormatJSON, FormatYAML:
		default:
			return fmt.Errorf("output format must be %q or %q, got: %q",
				FormatJSON, FormatYAML, c.Output.Format)
		}
	}

	if c.Demand != nil && c.Demand.Timeout != "" {
		if _, err := time.ParseDuration(c.Demand.Timeout); err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
	}

	return nil
}

// ClientConfig returns the explicit client settings from the file. Values
// not set in the file are left empty for ResolveConfig to fill.
func (c *Config) ClientConfig() demand.Config {
	if c == nil || c.Demand == nil {
		return demand.Config{}
	}

	// Validated by LoadFile.
	timeout, _ := time.ParseDuration(c.Demand.Timeout)

	return demand.Config{
		ClientID:  c.Demand.ClientID,
		Username:  c.Demand.Username,
		Password:  c.Demand.Password,
		BaseHost:  c.Demand.BaseHost,
		Timeout:   timeout,
		SchemaDir: c.Demand.SchemaDir,
	}
}

// OutputFormat returns the configured output format, defaulting to JSON.
func (c *Config) OutputFormat() string {
	if c == nil || c.Output == nil || c.Output.Format == "" {
		return FormatJSON
	}
	return c.Output.Format
}

// LoadDotEnv loads variables from an env file into the process environment
// without overriding variables that are already set. A missing file is not an
// error.
func LoadDotEnv(filename string) (bool, error) {
	if filename == "" {
		return false, nil
	}
	if err := godotenv.Load(filename); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("error loading %s: %w", filename, err)
	}
	return true, nil
}
