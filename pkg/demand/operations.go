package demand

// Operation names. They key the request schemas (as snake_case file names)
// and name the CLI commands (as kebab-case).
const (
	OpGetAttributes             = "GetAttributes"
	OpGetCountries              = "GetCountries"
	OpGetEvent                  = "GetEvent"
	OpGetEvents                 = "GetEvents"
	OpCreateEvent               = "CreateEvent"
	OpCreateProject             = "CreateProject"
	OpGetProject                = "GetProject"
	OpGetProjects               = "GetProjects"
	OpGetProjectDetailedReport  = "GetProjectDetailedReport"
	OpGetLineItem               = "GetLineItem"
	OpGetLineItems              = "GetLineItems"
	OpGetLineItemDetailedReport = "GetLineItemDetailedReport"
	OpGetFeasibility            = "GetFeasibility"
	OpGetSurveyTopics           = "GetSurveyTopics"
	OpGetSources                = "GetSources"
)

// statusSuccess is the status message the API reports for a successful write.
const statusSuccess = "success"
