package functional_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/limfang/btoflow/internal/testserver"
)

type authTransport struct {
	token string
}

func (a *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// connect opens an MCP session against the test server, authenticating
// with the given bearer token.
func connect(t *testing.T, ts *testserver.TestServer, token string) *sdkmcp.ClientSession {
	t.Helper()

	transport := &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL,
		HTTPClient: &http.Client{Transport: &authTransport{token: token}},
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(context.Background(), transport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

// callTool invokes a tool and returns the JSON payload of its result.
func callTool(t *testing.T, s *sdkmcp.ClientSession, name string, args map[string]any) json.RawMessage {
	t.Helper()

	res, err := s.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content")
	require.False(t, res.IsError, "tool error: %s", text.Text)
	return json.RawMessage(text.Text)
}

// callToolErr invokes a tool expecting a tool-level error and returns
// the error text.
func callToolErr(t *testing.T, s *sdkmcp.ClientSession, name string, args map[string]any) string {
	t.Helper()

	res, err := s.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func projectArgs(name string) map[string]any {
	open := time.Now().Truncate(24 * time.Hour)
	return map[string]any{
		"name":         name,
		"neighborhood": "Yishun",
		"slots": []map[string]any{
			{"type": "2-Room", "units": 2, "price": "350000"},
			{"type": "3-Room", "units": 3, "price": "450000"},
		},
		"open_date":     open.Format(time.DateOnly),
		"close_date":    open.AddDate(0, 0, 14).Format(time.DateOnly),
		"officer_slots": 5,
	}
}

func TestAuthenticationRequired(t *testing.T) {
	ts := testserver.NewHTTP(t, "manager-token", "S1000001A")
	ts.SeedPerson(t, "S1000001A", "Mallory", 45, "Married", "manager")

	session := connect(t, ts, "")
	_, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "list_projects"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unauthorized")
}

func TestToolDiscovery(t *testing.T) {
	ts := testserver.NewHTTP(t, "manager-token", "S1000001A")
	ts.SeedPerson(t, "S1000001A", "Mallory", 45, "Married", "manager")

	session := connect(t, ts, ts.Token)
	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Greater(t, len(tools.Tools), 20)

	names := make(map[string]bool)
	for _, tool := range tools.Tools {
		names[tool.Name] = true
		require.NotEmpty(t, tool.Description, "tool %s should have a description", tool.Name)
	}
	for _, want := range []string{"whoami", "lookup_person", "list_people", "create_project", "browse_projects", "apply", "approve_application", "book_flat", "register_officer", "booked_flats_report", "submit_enquiry", "import_people"} {
		require.True(t, names[want], "missing tool %s", want)
	}
}

func TestWhoami(t *testing.T) {
	ts := testserver.NewHTTP(t, "manager-token", "S1000001A")
	ts.SeedPerson(t, "S1000001A", "Mallory", 45, "Married", "manager")

	session := connect(t, ts, ts.Token)
	raw := callTool(t, session, "whoami", nil)

	var person struct {
		NRIC string `json:"nric"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(raw, &person))
	require.Equal(t, "S1000001A", person.NRIC)
	require.Equal(t, "manager", person.Role)
}

func TestPersonLookup(t *testing.T) {
	ts := testserver.NewHTTP(t, "manager-token", "S1000001A")
	ts.SeedPerson(t, "S1000001A", "Mallory", 45, "Married", "manager")
	ts.SeedPerson(t, "S2000002B", "Alice", 36, "Married", "applicant")

	session := connect(t, ts, ts.Token)

	var person struct {
		NRIC string `json:"nric"`
		Name string `json:"name"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, session, "lookup_person", map[string]any{
		"nric": "S2000002B",
	}), &person))
	require.Equal(t, "Alice", person.Name)
	require.Equal(t, "applicant", person.Role)

	errText := callToolErr(t, session, "lookup_person", map[string]any{"nric": "S9999999Z"})
	require.Contains(t, errText, "PERSON_NOT_FOUND")

	var list struct {
		People []struct {
			NRIC string `json:"nric"`
		} `json:"people"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, session, "list_people", map[string]any{
		"role": "applicant",
	}), &list))
	require.Len(t, list.People, 1)
	require.Equal(t, "S2000002B", list.People[0].NRIC)

	errText = callToolErr(t, session, "list_people", map[string]any{"role": "admin"})
	require.Contains(t, errText, "INVALID_INPUT")
}

func TestBookingWorkflow(t *testing.T) {
	ts := testserver.NewHTTP(t, "manager-token", "S1000001A")
	ts.SeedPerson(t, "S1000001A", "Mallory", 45, "Married", "manager")
	ts.SeedPerson(t, "S3000003C", "Oscar", 30, "Married", "officer")
	ts.SeedPerson(t, "S2000002B", "Alice", 36, "Married", "applicant")
	require.NoError(t, ts.AddAPIKey("officer-token", "S3000003C"))
	require.NoError(t, ts.AddAPIKey("applicant-token", "S2000002B"))

	mgrSession := connect(t, ts, "manager-token")
	offSession := connect(t, ts, "officer-token")
	appSession := connect(t, ts, "applicant-token")

	var proj struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, mgrSession, "create_project", projectArgs("Acacia Breeze")), &proj))

	var browse struct {
		Projects []struct {
			ID string `json:"id"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, appSession, "browse_projects", nil), &browse))
	require.Len(t, browse.Projects, 1)

	var app struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, appSession, "apply", map[string]any{
		"project_id": proj.ID,
		"flat_type":  "3-Room",
	}), &app))
	require.Equal(t, "PENDING", app.Status)

	// A second application while one is active is a tool error.
	errText := callToolErr(t, appSession, "apply", map[string]any{
		"project_id": proj.ID,
		"flat_type":  "2-Room",
	})
	require.Contains(t, errText, "ALREADY_ACTIVE")

	var approved struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, mgrSession, "approve_application", map[string]any{
		"application_id": app.ID,
	}), &approved))
	require.Equal(t, "SUCCESSFUL", approved.Status)

	var receipt struct {
		ApplicantNRIC string `json:"applicant_nric"`
		OfficerNRIC   string `json:"officer_nric"`
		FlatType      string `json:"flat_type"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, offSession, "book_flat", map[string]any{
		"application_id": app.ID,
	}), &receipt))
	require.Equal(t, "S2000002B", receipt.ApplicantNRIC)
	require.Equal(t, "S3000003C", receipt.OfficerNRIC)
	require.Equal(t, "3-Room", receipt.FlatType)

	var rep struct {
		Rows []struct {
			NRIC string `json:"nric"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(callTool(t, mgrSession, "booked_flats_report", map[string]any{
		"marital_status": "Married",
	}), &rep))
	require.Len(t, rep.Rows, 1)
	require.Equal(t, "S2000002B", rep.Rows[0].NRIC)
}

func TestRoleEnforcement(t *testing.T) {
	ts := testserver.NewHTTP(t, "applicant-token", "S2000002B")
	ts.SeedPerson(t, "S2000002B", "Alice", 36, "Married", "applicant")

	session := connect(t, ts, ts.Token)
	errText := callToolErr(t, session, "create_project", projectArgs("Acacia Breeze"))
	require.Contains(t, errText, "NOT_MANAGER")
}
