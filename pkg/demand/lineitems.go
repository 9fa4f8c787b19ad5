package demand

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dynata/demandapi/pkg/demand/schema"
)

// ===================================================================
// Line item endpoints
// ===================================================================
// All methods call /sample/v1/projects/{extProjectId}/lineItems

// GetLineItem retrieves one line item of a project.
func (c *Client) GetLineItem(ctx context.Context, projectID, lineItemID string) (*Response, error) {
	if err := c.validateLineItemPath(OpGetLineItem, projectID, lineItemID); err != nil {
		return nil, err
	}
	return c.get(ctx, lineItemPath(projectID, lineItemID), nil)
}

// GetLineItems lists the line items of a project, optionally filtered by
// query.
func (c *Client) GetLineItems(ctx context.Context, projectID string, query Query) (*Response, error) {
	if err := c.validateProjectPath(OpGetLineItems, projectID); err != nil {
		return nil, err
	}
	if err := c.schemas.Validate(schema.Query, OpGetLineItems, query.orEmpty()); err != nil {
		return nil, err
	}
	return c.get(ctx, projectPath(projectID)+"/lineItems", query)
}

// GetLineItemDetailedReport retrieves the detailed field report of a line
// item.
func (c *Client) GetLineItemDetailedReport(ctx context.Context, projectID, lineItemID string) (*Response, error) {
	if err := c.validateLineItemPath(OpGetLineItemDetailedReport, projectID, lineItemID); err != nil {
		return nil, err
	}
	return c.get(ctx, lineItemPath(projectID, lineItemID)+"/detailedReport", nil)
}

func (c *Client) validateLineItemPath(op, projectID, lineItemID string) error {
	return c.schemas.Validate(schema.Path, op, map[string]string{
		"extProjectId":  projectID,
		"extLineItemId": lineItemID,
	})
}

func lineItemPath(projectID, lineItemID string) string {
	return fmt.Sprintf("%s/lineItems/%s", projectPath(projectID), url.PathEscape(lineItemID))
}
