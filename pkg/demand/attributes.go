package demand

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dynata/demandapi/pkg/demand/schema"
)

// ===================================================================
// Attributes and catalog endpoints
// ===================================================================
// All methods call /sample/v1/{attributes,countries,categories,sources}

// GetAttributes lists the targeting attributes available for a country and
// language, e.g. ("US", "en").
func (c *Client) GetAttributes(ctx context.Context, countryCode, languageCode string, query Query) (*Response, error) {
	if err := c.schemas.Validate(schema.Path, OpGetAttributes, map[string]string{
		"countryCode":  countryCode,
		"languageCode": languageCode,
	}); err != nil {
		return nil, err
	}
	if err := c.schemas.Validate(schema.Query, OpGetAttributes, query.orEmpty()); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/attributes/%s/%s", url.PathEscape(countryCode), url.PathEscape(languageCode))
	return c.get(ctx, path, query)
}

// GetCountries lists the countries that can be targeted.
func (c *Client) GetCountries(ctx context.Context, query Query) (*Response, error) {
	if err := c.schemas.Validate(schema.Query, OpGetCountries, query.orEmpty()); err != nil {
		return nil, err
	}
	return c.get(ctx, "/countries", query)
}

// GetSurveyTopics lists the survey topic categories.
func (c *Client) GetSurveyTopics(ctx context.Context, query Query) (*Response, error) {
	if err := c.schemas.Validate(schema.Query, OpGetSurveyTopics, query.orEmpty()); err != nil {
		return nil, err
	}
	return c.get(ctx, "/categories/surveyTopics", query)
}

// GetSources lists the sample sources. The endpoint takes no parameters.
func (c *Client) GetSources(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/sources", nil)
}
