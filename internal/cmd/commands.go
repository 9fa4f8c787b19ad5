package cmd

import (
	"maps"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/dynata/demandapi/internal/cmd/base"
	"github.com/dynata/demandapi/internal/cmd/commands/auth"
	"github.com/dynata/demandapi/internal/cmd/commands/resource"
	"github.com/dynata/demandapi/internal/cmd/commands/version"
)

// Commands is the mapping of all available commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"auth": func() (cli.Command, error) {
			return &auth.Command{Command: b}, nil
		},
		"auth login": func() (cli.Command, error) {
			return &auth.LoginCommand{Command: b}, nil
		},
		"auth refresh": func() (cli.Command, error) {
			return &auth.RefreshCommand{Command: b}, nil
		},
		"auth logout": func() (cli.Command, error) {
			return &auth.LogoutCommand{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}

	maps.Copy(Commands, resource.Factories(b))
}
