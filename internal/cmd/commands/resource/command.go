package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/cli"

	"github.com/dynata/demandapi/internal/cmd/base"
	"github.com/dynata/demandapi/pkg/demand"
)

// Command runs a single API operation with the saved session.
type Command struct {
	*base.Command

	op operation

	flags     base.ClientFlags
	flagQuery queryFlag
	flagBody  string
}

// Factories returns a command factory for every API operation, keyed by
// command name.
func Factories(b *base.Command) map[string]cli.CommandFactory {
	factories := make(map[string]cli.CommandFactory)
	for _, op := range operations() {
		factories[op.Name()] = func() (cli.Command, error) {
			return &Command{Command: b, op: op}, nil
		}
	}
	return factories
}

func (c *Command) Synopsis() string {
	return c.op.synopsis
}

func (c *Command) Help() string {
	usage := "Usage: demand " + c.op.Name() + " [options]"
	for _, arg := range c.op.args {
		usage += " <" + arg + ">"
	}

	var details string
	switch {
	case c.op.body:
		details = "The request body is read from the -body file, or stdin when it is \"-\"."
		if c.op.op == demand.OpCreateProject {
			details += "\n  A missing extProjectId is filled with a random UUID."
		}
	case c.op.query:
		details = "Filters and paging are passed as repeated -query key=value flags."
	default:
		details = "Prints the API response."
	}

	return usage + "\n\n  " + c.op.synopsis + ".\n\n  " + details + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet(c.op.Name(), flag.ContinueOnError))
	c.flags.AddFlags(f)

	if c.op.query {
		f.Var(
			&c.flagQuery, "query",
			"Query parameter as key=value. May be repeated.",
		)
	}
	if c.op.body {
		f.StringVar(
			&c.flagBody, "body", "",
			"(Required) Path to a JSON request body, or - for stdin.",
		)
	}

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	in, err := c.input(f.Args())
	if err != nil {
		c.UI.Error(err.Error())
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

	resp, err := c.op.call(ctx, env.Client, in)
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Print(env.Format, resp); err != nil {
		return c.Fail(err)
	}
	return 0
}

func (c *Command) input(args []string) (input, error) {
	if len(args) != len(c.op.args) {
		return input{}, fmt.Errorf("expected %d argument(s) (%s), got %d",
			len(c.op.args), strings.Join(c.op.args, ", "), len(args))
	}

	in := input{args: args}

	if c.op.query {
		query, err := c.flagQuery.Query()
		if err != nil {
			return input{}, err
		}
		in.query = query
	}

	if c.op.body {
		body, err := readBody(c.flagBody)
		if err != nil {
			return input{}, err
		}
		if c.op.op == demand.OpCreateProject {
			if id, _ := body["extProjectId"].(string); id == "" {
				body["extProjectId"] = uuid.NewString()
				c.Log.Info("generated project id", "extProjectId", body["extProjectId"])
			}
		}
		in.body = body
	}

	return in, nil
}

func readBody(path string) (map[string]any, error) {
	if path == "" {
		return nil, fmt.Errorf("-body is required")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading request body: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("error parsing request body: %w", err)
	}
	if body == nil {
		return nil, fmt.Errorf("request body must be a JSON object")
	}
	return body, nil
}
