package integration_test

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// TestStdioProtocolCompliance runs the built server binary over stdio
// with the official MCP SDK client, which catches protocol framing
// issues in-process tests cannot see.
func TestStdioProtocolCompliance(t *testing.T) {
	binaryPath := "./bin/btoflow"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/btoflow"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("server binary not found, build it first")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"BTOFLOW_TRANSPORT_MODE=stdio",
		"BTOFLOW_DB_PATH=:memory:",
	)

	transport := &sdkmcp.CommandTransport{
		Command: cmd,
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	require.NoError(t, err, "failed to connect to server")
	defer session.Close()

	t.Run("ServerInfo", func(t *testing.T) {
		initResult := session.InitializeResult()
		require.NotNil(t, initResult)
		require.NotNil(t, initResult.ServerInfo)
		require.Equal(t, "btoflow", initResult.ServerInfo.Name)
		require.Equal(t, "0.1.0", initResult.ServerInfo.Version)
	})

	t.Run("ListTools", func(t *testing.T) {
		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		require.Greater(t, len(tools.Tools), 20)

		toolNames := make(map[string]bool)
		for _, tool := range tools.Tools {
			toolNames[tool.Name] = true
		}
		for _, want := range []string{
			"whoami",
			"create_project",
			"list_projects",
			"browse_projects",
			"apply",
			"approve_application",
			"book_flat",
			"register_officer",
			"submit_enquiry",
			"booked_flats_report",
			"import_people",
			"import_projects",
		} {
			require.True(t, toolNames[want], "missing tool %s", want)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		require.NoError(t, session.Ping(ctx, nil))
	})
}
