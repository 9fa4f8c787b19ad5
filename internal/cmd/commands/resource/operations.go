package resource

import (
	"context"

	"github.com/iancoleman/strcase"

	"github.com/dynata/demandapi/pkg/demand"
)

// input is what a command collected from its arguments and flags.
type input struct {
	args  []string
	query demand.Query
	body  map[string]any
}

// operation describes how one client method is exposed on the command line.
type operation struct {
	op       string
	synopsis string
	args     []string
	query    bool
	body     bool
	call     func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error)
}

// Name returns the command name, the kebab-case form of the operation.
func (o operation) Name() string {
	return strcase.ToKebab(o.op)
}

func operations() []operation {
	return []operation{
		{
			op:       demand.OpGetAttributes,
			synopsis: "List targeting attributes for a country and language",
			args:     []string{"country-code", "language-code"},
			query:    true,
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetAttributes(ctx, in.args[0], in.args[1], in.query)
			},
		},
		{
			op:       demand.OpGetCountries,
			synopsis: "List countries",
			query:    true,
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetCountries(ctx, in.query)
			},
		},
		{
			op:       demand.OpGetSurveyTopics,
			synopsis: "List survey topic categories",
			query:    true,
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetSurveyTopics(ctx, in.query)
			},
		},
		{
			op:       demand.OpGetSources,
			synopsis: "List sample sources",
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetSources(ctx)
			},
		},
		{
			op:       demand.OpGetEvent,
			synopsis: "Show an event",
			args:     []string{"event-id"},
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetEvent(ctx, in.args[0])
			},
		},
		{
			op:       demand.OpGetEvents,
			synopsis: "List events",
			query:    true,
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetEvents(ctx, in.query)
			},
		},
		{
			op:       demand.OpCreateEvent,
			synopsis: "Create an event from a JSON document",
			body:     true,
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.CreateEvent(ctx, in.body)
			},
		},
		{
			op:       demand.OpCreateProject,
			synopsis: "Create a project from a JSON document",
			body:     true,
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.CreateProject(ctx, in.body)
			},
		},
		{
			op:       demand.OpGetProject,
			synopsis: "Show a project",
			args:     []string{"project-id"},
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetProject(ctx, in.args[0])
			},
		},
		{
			op:       demand.OpGetProjects,
			synopsis: "List projects",
			query:    true,
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetProjects(ctx, in.query)
			},
		},
		{
			op:       demand.OpGetProjectDetailedReport,
			synopsis: "Show the detailed report for a project",
			args:     []string{"project-id"},
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetProjectDetailedReport(ctx, in.args[0])
			},
		},
		{
			op:       demand.OpGetFeasibility,
			synopsis: "Show feasibility for a project",
			args:     []string{"project-id"},
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetFeasibility(ctx, in.args[0])
			},
		},
		{
			op:       demand.OpGetLineItem,
			synopsis: "Show a line item",
			args:     []string{"project-id", "line-item-id"},
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetLineItem(ctx, in.args[0], in.args[1])
			},
		},
		{
			op:       demand.OpGetLineItems,
			synopsis: "List the line items of a project",
			args:     []string{"project-id"},
			query:    true,
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetLineItems(ctx, in.args[0], in.query)
			},
		},
		{
			op:       demand.OpGetLineItemDetailedReport,
			synopsis: "Show the detailed report for a line item",
			args:     []string{"project-id", "line-item-id"},
			call: func(ctx context.Context, c *demand.Client, in input) (*demand.Response, error) {
				return c.GetLineItemDetailedReport(ctx, in.args[0], in.args[1])
			},
		},
	}
}
