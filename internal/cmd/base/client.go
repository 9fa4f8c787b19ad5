package base

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/dynata/demandapi/internal/config"
	"github.com/dynata/demandapi/pkg/demand"
	"github.com/dynata/demandapi/pkg/session"
)

// ClientFlags are the flags shared by every command that talks to the API.
type ClientFlags struct {
	Config   string
	EnvFile  string
	Format   string
	LogLevel string
}

// AddFlags registers the shared flags on f.
func (cf *ClientFlags) AddFlags(f *FlagSet) {
	f.StringVar(
		&cf.Config, "config", "",
		"Path to an HCL configuration file.",
	)
	f.StringVar(
		&cf.EnvFile, "env-file", ".env",
		"Path to a dotenv file loaded before reading DYNATA_DEMAND_* variables. "+
			"A missing file is ignored.",
	)
	f.StringVar(
		&cf.Format, "format", "",
		"Output format, json or yaml. Defaults to the configuration file, then json.",
	)
	f.StringVar(
		&cf.LogLevel, "log-level", "",
		"Log level (trace, debug, info, warn, error).",
	)
}

// Env is a configured client plus the settings it was built from.
type Env struct {
	Client     *demand.Client
	Config     demand.Config
	Format     string
	SessionKey string
}

// Setup resolves configuration from the flags, the config file, the dotenv
// file and the environment, and builds a client.
func (c *Command) Setup(cf *ClientFlags) (*Env, error) {
	if cf.LogLevel != "" {
		level := hclog.LevelFromString(cf.LogLevel)
		if level == hclog.NoLevel {
			return nil, fmt.Errorf("invalid log level: %q", cf.LogLevel)
		}
		c.Log.SetLevel(level)
	}

	loaded, err := config.LoadDotEnv(cf.EnvFile)
	if err != nil {
		return nil, err
	}
	if loaded {
		c.Log.Debug("loaded env file", "path", cf.EnvFile)
	}

	var file *config.Config
	if cf.Config != "" {
		file, err = config.LoadFile(cf.Config)
		if err != nil {
			return nil, err
		}
	}

	env, err := demand.LoadEnvironment()
	if err != nil {
		return nil, err
	}

	cfg := demand.ResolveConfig(file.ClientConfig(), env)
	cfg.Logger = c.Log

	format := cf.Format
	if format == "" {
		format = file.OutputFormat()
	}
	if format != config.FormatJSON && format != config.FormatYAML {
		return nil, fmt.Errorf("format must be %q or %q, got: %q",
			config.FormatJSON, config.FormatYAML, format)
	}

	client, err := demand.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &Env{
		Client:     client,
		Config:     cfg,
		Format:     format,
		SessionKey: session.Key(cfg.BaseHost, cfg.Username),
	}, nil
}

// RestoreSession loads the saved token pair for e into its client.
func (c *Command) RestoreSession(e *Env) error {
	sess, err := c.Sessions.Load(e.SessionKey)
	if errors.Is(err, session.ErrNotFound) {
		return fmt.Errorf("no saved session for %s, run \"auth login\" first: %w",
			e.Config.Username, demand.ErrNotAuthenticated)
	}
	if err != nil {
		return err
	}

	e.Client.SetSession(sess)
	return nil
}

// Print writes v to the UI in the given format.
func (c *Command) Print(format string, v any) error {
	var (
		out []byte
		err error
	)

	switch format {
	case config.FormatYAML:
		out, err = yaml.Marshal(v)
	default:
		out, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}

	c.UI.Output(strings.TrimRight(string(out), "\n"))
	return nil
}

// Fail reports err to the UI and returns the exit code for a failed command.
func (c *Command) Fail(err error) int {
	c.UI.Error(fmt.Sprintf("error: %v", err))

	var validationErr *demand.ValidationError
	if errors.As(err, &validationErr) {
		for _, v := range validationErr.Violations() {
			c.UI.Error("  " + v)
		}
	}

	return 1
}
