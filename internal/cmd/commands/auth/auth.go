package auth

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/mitchellh/cli"

	"github.com/dynata/demandapi/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage the Demand API session"
}

func (c *Command) Help() string {
	return `Usage: demand auth <subcommand> [options]

  This command groups subcommands that obtain, refresh and revoke the token
  pair used by every other command. The token pair is kept in the OS keyring.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type LoginCommand struct {
	*base.Command

	flags base.ClientFlags
}

func (c *LoginCommand) Synopsis() string {
	return "Authenticate with username and password"
}

func (c *LoginCommand) Help() string {
	return `Usage: demand auth login [options]

  Exchanges the configured client ID, username and password for a token pair
  and saves it for later commands.` + c.Flags().Help()
}

func (c *LoginCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("login", flag.ContinueOnError))
	c.flags.AddFlags(f)
	return f
}

func (c *LoginCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	env, err := c.Setup(&c.flags)
	if err != nil {
		return c.Fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := env.Client.Authenticate(ctx); err != nil {
		return c.Fail(err)
	}

	if err := c.Sessions.Save(env.SessionKey, env.Client.Session()); err != nil {
		return c.Fail(err)
	}

	c.UI.Info(fmt.Sprintf("Logged in as %s", env.Config.Username))
	return 0
}

type RefreshCommand struct {
	*base.Command

	flags base.ClientFlags
}

func (c *RefreshCommand) Synopsis() string {
	return "Refresh the saved access token"
}

func (c *RefreshCommand) Help() string {
	return `Usage: demand auth refresh [options]

  Exchanges the saved refresh token for a new token pair. If the refresh is
  rejected the saved pair is left unchanged.` + c.Flags().Help()
}

func (c *RefreshCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("refresh", flag.ContinueOnError))
	c.flags.AddFlags(f)
	return f
}

func (c *RefreshCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	env, err := c.Setup(&c.flags)
	if err != nil {
		return c.Fail(err)
	}
	if err := c.RestoreSession(env); err != nil {
		return c.Fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := env.Client.RefreshAccessToken(ctx); err != nil {
		return c.Fail(err)
	}

	if err := c.Sessions.Save(env.SessionKey, env.Client.Session()); err != nil {
		return c.Fail(err)
	}

	c.UI.Info("Access token refreshed")
	return 0
}

type LogoutCommand struct {
	*base.Command

	flags base.ClientFlags
}

func (c *LogoutCommand) Synopsis() string {
	return "Revoke the saved token pair"
}

func (c *LogoutCommand) Help() string {
	return `Usage: demand auth logout [options]

  Revokes the saved token pair and removes it from the keyring.` + c.Flags().Help()
}

func (c *LogoutCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("logout", flag.ContinueOnError))
	c.flags.AddFlags(f)
	return f
}

func (c *LogoutCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	env, err := c.Setup(&c.flags)
	if err != nil {
		return c.Fail(err)
	}
	if err := c.RestoreSession(env); err != nil {
		return c.Fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := env.Client.Logout(ctx); err != nil {
		return c.Fail(err)
	}

	if err := c.Sessions.Delete(env.SessionKey); err != nil {
		return c.Fail(err)
	}

	c.UI.Info("Logged out")
	return 0
}
