package version

import (
	"github.com/dynata/demandapi/internal/cmd/base"
	"github.com/dynata/demandapi/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version of the CLI"
}

func (c *Command) Help() string {
	return `Usage: demand version

  Prints the version of the CLI.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
