package base

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/dynata/demandapi/pkg/session"
)

// Command holds what every subcommand needs.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Sessions persists token pairs between invocations.
	Sessions *session.Store
}

// NewCommand returns a Command that stores sessions in the OS keyring.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:      log,
		UI:       ui,
		Sessions: session.NewStore(),
	}
}
