// Package demand is a client for the Demand API, the vendor's sample and
// survey-panel REST API.
//
// # Overview
//
// Every Client method maps to exactly one HTTP endpoint. Requests are checked
// against the bundled JSON Schema documents (see package schema) before they
// are sent, and responses are returned as decoded JSON of whatever type the
// body holds, without any modeling of projects, line items or events.
//
// # Authentication
//
// A Client must call Authenticate before any resource method. Until then
// resource methods return ErrNotAuthenticated without touching the network.
//
//	client, err := demand.NewClientFromEnvironment(demand.Config{})
//	if err != nil {
//	    return err
//	}
//	if _, err := client.Authenticate(ctx); err != nil {
//	    return err
//	}
//	project, err := client.GetProject(ctx, "project-001")
//
// RefreshAccessToken replaces the token pair; if it fails the old pair is
// kept. Logout revokes the pair and clears it from the client.
//
// # Configuration
//
// Credentials are resolved in order: explicit Config value, then environment
// (DYNATA_DEMAND_CLIENT_ID, DYNATA_DEMAND_USERNAME, DYNATA_DEMAND_PASSWORD,
// DYNATA_DEMAND_BASE_URL), then DefaultBaseHost for the host only. The
// environment is read once by LoadEnvironment; ResolveConfig itself is pure.
// NewClient uses its Config as given, and NewClientFromEnvironment applies the
// environment fallback first.
//
// # Endpoints
//
// Auth (relative to {base}/auth/v1):
//   - POST /token/password
//   - POST /token/refresh
//   - POST /logout
//
// Resources (relative to {base}/sample/v1):
//   - GET  /attributes/:countryCode/:languageCode
//   - GET  /countries
//   - GET  /events
//   - GET  /events/:id
//   - POST /events
//   - GET  /projects
//   - POST /projects
//   - GET  /projects/:id
//   - GET  /projects/:id/detailedReport
//   - GET  /projects/:id/feasibility
//   - GET  /projects/:id/lineItems
//   - GET  /projects/:id/lineItems/:lineItemId
//   - GET  /projects/:id/lineItems/:lineItemId/detailedReport
//   - GET  /categories/surveyTopics
//   - GET  /sources
//
// # Error Handling
//
// Each call makes a single attempt; nothing is retried. Errors are:
//   - *ConfigurationError from NewClient
//   - ErrNotAuthenticated before a session exists
//   - *AuthenticationError from the auth endpoints
//   - *ValidationError when request data fails its schema
//   - *APIRequestError for any resource response with status >= 400
//   - *BusinessRuleError when CreateProject is not reported as "success"
package demand
