package cmd

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynata/demandapi/internal/version"
)

func TestInitCommands(t *testing.T) {
	ui := cli.NewMockUi()
	initCommands(hclog.NewNullLogger(), ui)

	for _, name := range []string{
		"auth", "auth login", "auth refresh", "auth logout",
		"version", "get-projects", "create-project", "get-line-item-detailed-report",
	} {
		factory, ok := Commands[name]
		require.True(t, ok, "missing command %q", name)

		cmd, err := factory()
		require.NoError(t, err)
		assert.NotEmpty(t, cmd.Synopsis(), name)
		assert.NotEmpty(t, cmd.Help(), name)
	}

	versionCmd, err := Commands["version"]()
	require.NoError(t, err)
	assert.Equal(t, 0, versionCmd.Run(nil))
	assert.Equal(t, version.Version+"\n", ui.OutputWriter.String())
}
