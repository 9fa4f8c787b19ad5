package demand

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dynata/demandapi/pkg/demand/schema"
)

// ===================================================================
// Event endpoints
// ===================================================================
// All methods call /sample/v1/events

// GetEvent retrieves a single event.
func (c *Client) GetEvent(ctx context.Context, eventID string) (*Response, error) {
	if err := c.schemas.Validate(schema.Path, OpGetEvent, map[string]string{
		"eventId": eventID,
	}); err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/events/%s", url.PathEscape(eventID)), nil)
}

// GetEvents lists events, optionally filtered by query.
func (c *Client) GetEvents(ctx context.Context, query Query) (*Response, error) {
	if err := c.schemas.Validate(schema.Query, OpGetEvents, query.orEmpty()); err != nil {
		return nil, err
	}
	return c.get(ctx, "/events", query)
}

// CreateEvent posts a new event.
func (c *Client) CreateEvent(ctx context.Context, event any) (*Response, error) {
	if err := c.schemas.Validate(schema.Body, OpCreateEvent, event); err != nil {
		return nil, err
	}
	return c.post(ctx, "/events", event)
}
