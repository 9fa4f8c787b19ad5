package demand

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dynata/demandapi/pkg/demand/schema"
)

// ===================================================================
// Project endpoints
// ===================================================================
// All methods call /sample/v1/projects

// CreateProject creates a project with its line items. The response must
// carry status message "success", otherwise a *BusinessRuleError is returned
// even though the HTTP request succeeded.
func (c *Client) CreateProject(ctx context.Context, project any) (*Response, error) {
	if err := c.schemas.Validate(schema.Body, OpCreateProject, project); err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, "/projects", project)
	if err != nil {
		return nil, err
	}

	if msg := resp.StatusMessage(); msg != statusSuccess {
		return nil, &BusinessRuleError{
			Op:       "create project",
			Message:  msg,
			Response: resp,
		}
	}

	return resp, nil
}

// GetProject retrieves a project by its external id.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Response, error) {
	if err := c.validateProjectPath(OpGetProject, projectID); err != nil {
		return nil, err
	}
	return c.get(ctx, projectPath(projectID), nil)
}

// GetProjects lists projects, optionally filtered by query.
func (c *Client) GetProjects(ctx context.Context, query Query) (*Response, error) {
	if err := c.schemas.Validate(schema.Query, OpGetProjects, query.orEmpty()); err != nil {
		return nil, err
	}
	return c.get(ctx, "/projects", query)
}

// GetProjectDetailedReport retrieves the detailed field report of a project.
func (c *Client) GetProjectDetailedReport(ctx context.Context, projectID string) (*Response, error) {
	if err := c.validateProjectPath(OpGetProjectDetailedReport, projectID); err != nil {
		return nil, err
	}
	return c.get(ctx, projectPath(projectID)+"/detailedReport", nil)
}

// GetFeasibility retrieves the feasibility estimate for every line item of a
// project.
func (c *Client) GetFeasibility(ctx context.Context, projectID string) (*Response, error) {
	if err := c.validateProjectPath(OpGetFeasibility, projectID); err != nil {
		return nil, err
	}
	return c.get(ctx, projectPath(projectID)+"/feasibility", nil)
}

func (c *Client) validateProjectPath(op, projectID string) error {
	return c.schemas.Validate(schema.Path, op, map[string]string{
		"extProjectId": projectID,
	})
}

func projectPath(projectID string) string {
	return fmt.Sprintf("/projects/%s", url.PathEscape(projectID))
}
