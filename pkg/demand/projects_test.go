package demand

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProject() map[string]any {
	return map[string]any{
		"extProjectId":       "project-001",
		"title":              "Test Survey",
		"notificationEmails": []string{"api-test@example.com"},
		"devices":            []string{"mobile", "desktop", "tablet"},
		"category":           map[string]any{"surveyTopic": []string{"AUTOMOTIVE", "BUSINESS"}},
		"lineItems": []map[string]any{
			{
				"extLineItemId":       "lineitem-001",
				"title":               "US College",
				"countryISOCode":      "US",
				"languageISOCode":     "en",
				"surveyURL":           "https://example.com/survey?pid=<#DubKnowledge[1500/Entity id]>",
				"indicativeIncidence": 20.0,
				"daysInField":         20,
				"lengthOfInterview":   10,
				"deliveryType":        "BALANCED",
				"sources":             []map[string]any{{"id": 100}},
				"targets": []map[string]any{
					{"count": 200, "dailyLimit": 0, "type": "COMPLETE"},
				},
			},
		},
	}
}

func TestClient_CreateProject(t *testing.T) {
	body := `{"data": {"extProjectId": "project-001", "state": "PROVISIONED"}, "status": {"message": "success", "errors": []}}`

	f := newFakeAPI(t)
	f.handle("POST /sample/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "project-001", got["extProjectId"])
		assert.Len(t, got["lineItems"], 1)

		io.WriteString(w, body)
	})

	client := newAuthenticatedClient(t, f)
	resp, err := client.CreateProject(context.Background(), testProject())
	require.NoError(t, err)
	assert.Equal(t, decodeJSON(t, body), resp)
}

func TestClient_CreateProjectBusinessRule(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"failed status", `{"status": {"message": "failed"}}`, "failed"},
		{"missing status", `{"data": {}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeAPI(t)
			f.handleJSON("POST /sample/v1/projects", http.StatusOK, tt.body)

			client := newAuthenticatedClient(t, f)
			resp, err := client.CreateProject(context.Background(), testProject())
			require.Error(t, err)
			assert.Nil(t, resp)

			var ruleErr *BusinessRuleError
			require.True(t, errors.As(err, &ruleErr))
			assert.Equal(t, tt.message, ruleErr.Message)
			assert.Equal(t, decodeJSON(t, tt.body), ruleErr.Response)
		})
	}
}

func TestClient_CreateProjectValidation(t *testing.T) {
	f := newFakeAPI(t)
	f.handleJSON("POST /sample/v1/projects", http.StatusOK, `{"status": {"message": "success"}}`)

	client := newAuthenticatedClient(t, f)

	missingTitle := testProject()
	delete(missingTitle, "title")

	badLineItem := testProject()
	badLineItem["lineItems"] = []map[string]any{{"extLineItemId": "lineitem-001"}}

	tests := []struct {
		name    string
		project any
	}{
		{"missing title", missingTitle},
		{"incomplete line item", badLineItem},
		{"no line items", map[string]any{"extProjectId": "p", "title": "t", "lineItems": []any{}}},
		{"nil body", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateProject(context.Background(), tt.project)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "create_project", verr.Operation)
		})
	}

	assert.Equal(t, int32(0), f.calls.Load())
}

func TestClient_GetProject(t *testing.T) {
	body := `{"data": {"extProjectId": "project-001", "title": "Test Survey"}}`

	f := newFakeAPI(t)
	f.handleJSON("GET /sample/v1/projects/project-001", http.StatusOK, body)

	client := newAuthenticatedClient(t, f)
	resp, err := client.GetProject(context.Background(), "project-001")
	require.NoError(t, err)
	assert.Equal(t, decodeJSON(t, body), resp)
}

func TestClient_GetProjectEscapesID(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET /sample/v1/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a b", r.PathValue("id"))
		assert.Equal(t, "/sample/v1/projects/a%20b", r.URL.EscapedPath())
		io.WriteString(w, `{}`)
	})

	client := newAuthenticatedClient(t, f)
	_, err := client.GetProject(context.Background(), "a b")
	require.NoError(t, err)
}

func TestClient_GetProjectEmptyID(t *testing.T) {
	f := newFakeAPI(t)
	client := newAuthenticatedClient(t, f)

	_, err := client.GetProject(context.Background(), "")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, int32(0), f.calls.Load())
}

func TestClient_GetProjects(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET /sample/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "LAUNCHED", r.URL.Query().Get("state"))
		io.WriteString(w, `{"data": []}`)
	})

	client := newAuthenticatedClient(t, f)
	_, err := client.GetProjects(context.Background(), Query{"limit": 10, "state": "LAUNCHED"})
	require.NoError(t, err)

	_, err = client.GetProjects(context.Background(), Query{"state": "UNKNOWN"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestClient_GetProjectsRepeatedParams(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET /sample/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"title", "-createdAt"}, r.URL.Query()["sort"])
		assert.Equal(t, []string{"LAUNCHED", "PAUSED"}, r.URL.Query()["state"])
		io.WriteString(w, `{"data": []}`)
	})

	client := newAuthenticatedClient(t, f)
	_, err := client.GetProjects(context.Background(), Query{
		"sort":  []string{"title", "-createdAt"},
		"state": []string{"LAUNCHED", "PAUSED"},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestClient_ProjectReports(t *testing.T) {
	f := newFakeAPI(t)
	f.handleJSON("GET /sample/v1/projects/project-001/detailedReport", http.StatusOK, `{"data": {"report": "project"}}`)
	f.handleJSON("GET /sample/v1/projects/project-001/feasibility", http.StatusOK, `{"data": [{"feasible": true}]}`)

	client := newAuthenticatedClient(t, f)
	ctx := context.Background()

	report, err := client.GetProjectDetailedReport(ctx, "project-001")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"report": "project"}, report.Data())

	feasibility, err := client.GetFeasibility(ctx, "project-001")
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"feasible": true}}, feasibility.Data())
}
