package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL, ts.URL, nil, 5*time.Second), ts
}

func TestEndpointURL_FunctionKey(t *testing.T) {
	c := NewClient("https://funcs.example.net/api/", "", map[string]string{
		EndpointSparkPoolMigration: "abc/+123",
	}, 0)

	got := c.endpointURL(EndpointSparkPoolMigration)
	want := "https://funcs.example.net/api/SparkPoolMigration?code=abc%2F%2B123"
	if got != want {
		t.Errorf("endpointURL = %q, want %q", got, want)
	}

	// No key configured, no code parameter.
	if got := c.endpointURL(EndpointListWorkspaces); strings.Contains(got, "code=") {
		t.Errorf("endpointURL without key = %q, should carry no code parameter", got)
	}
}

func TestEndpointURL_DatabricksBase(t *testing.T) {
	c := NewClient("https://syn.example.net/api", "https://dbx.example.net/api", nil, 0)

	if got := c.endpointURL(EndpointDatabricksJobsMigration); !strings.HasPrefix(got, "https://dbx.example.net/api/") {
		t.Errorf("Databricks endpoint routed to %q, want the Databricks base", got)
	}
	if got := c.endpointURL(EndpointNotebooksMigration); !strings.HasPrefix(got, "https://syn.example.net/api/") {
		t.Errorf("Synapse endpoint routed to %q, want the primary base", got)
	}
}

func TestPostJSON_NonOKStatus(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "function key invalid", http.StatusUnauthorized)
	}))

	err := c.postWrite(context.Background(), EndpointCreateWorkspace, map[string]string{}, nil)
	if err == nil {
		t.Fatal("expected error for HTTP 401")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "function key invalid") {
		t.Errorf("error = %v, want status and body excerpt", err)
	}
}

func TestPostJSON_MalformedBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	}))

	var dest map[string]interface{}
	err := c.postWrite(context.Background(), EndpointListCapacities, map[string]string{}, &dest)
	if err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}

func TestDiscoverSynapse(t *testing.T) {
	var gotPayload map[string]interface{}
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+EndpointConnectSynapse {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotPayload)
		json.NewEncoder(w).Encode(SynapseInventory{
			SparkPools: []RawSparkPool{{ID: "p1", Name: "analytics"}},
		})
	}))

	inv, err := c.DiscoverSynapse(context.Background(), models.SynapseCredentials{
		TenantID:      "t",
		ClientID:      "c",
		ClientSecret:  "s",
		WorkspaceName: "syn-ws",
	}, FullScope())
	if err != nil {
		t.Fatalf("DiscoverSynapse: %v", err)
	}
	if gotPayload["workspaceName"] != "syn-ws" {
		t.Errorf("payload workspaceName = %v", gotPayload["workspaceName"])
	}
	if len(inv.SparkPools) != 1 {
		t.Errorf("inventory pools = %d, want 1", len(inv.SparkPools))
	}
	// Workspace backfilled from the credentials when the response omits it.
	if inv.Workspace != "syn-ws" {
		t.Errorf("Workspace = %q, want backfilled syn-ws", inv.Workspace)
	}
}

func TestDiscoverSynapse_ReadRetries(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "transient", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(SynapseInventory{Workspace: "syn-ws"})
	}))

	if _, err := c.DiscoverSynapse(context.Background(), models.SynapseCredentials{WorkspaceName: "syn-ws"}, FullScope()); err != nil {
		t.Fatalf("DiscoverSynapse after transient 502: %v", err)
	}
	if calls != 2 {
		t.Errorf("discovery call count = %d, want a retry after the 502", calls)
	}
}

func TestMigrateSparkPools_NoRetryOnFailure(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := c.MigrateSparkPools(context.Background(), MigrationCredentials{}, "ws-id", []string{"pool-a"})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("migration call count = %d, writes must not be retried", calls)
	}
}

func TestMigrateNotebooks_OutcomeNormalization(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		json.NewDecoder(r.Body).Decode(&payload)
		if _, ok := payload["notebooks"]; !ok {
			t.Error("payload missing notebooks selection")
		}
		if _, ok := payload["synapse"]; !ok {
			t.Error("payload missing synapse credentials block")
		}
		io.WriteString(w, `{
			"Success": ["nb-ok"],
			"AlreadyExists": ["nb-dup"],
			"Failed": [{"name": "nb-bad", "message": "kernel not supported"}]
		}`)
	}))

	out, err := c.MigrateNotebooks(context.Background(), MigrationCredentials{
		Synapse: &models.SynapseCredentials{WorkspaceName: "syn-ws"},
	}, "ws-id", []string{"nb-ok", "nb-dup", "nb-bad"})
	if err != nil {
		t.Fatalf("MigrateNotebooks: %v", err)
	}
	if len(out.Succeeded) != 1 || out.Succeeded[0] != "nb-ok" {
		t.Errorf("Succeeded = %v", out.Succeeded)
	}
	if len(out.AlreadyExists) != 1 || out.AlreadyExists[0] != "nb-dup" {
		t.Errorf("AlreadyExists = %v", out.AlreadyExists)
	}
	if len(out.Failed) != 1 || out.Failed[0].Ref != "nb-bad" || out.Failed[0].Message != "kernel not supported" {
		t.Errorf("Failed = %v", out.Failed)
	}
}

func TestMigrateDatabricksJobs_OutcomeNormalization(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{
			"created": ["101"],
			"already_exists": ["102"],
			"failed": [{"job_id": "103", "error": "quota exceeded"}]
		}`)
	}))

	out, err := c.MigrateDatabricksJobs(context.Background(), MigrationCredentials{
		Databricks: &models.DatabricksCredentials{WorkspaceURL: "https://adb.example.net"},
	}, "ws-id", []string{"101", "102", "103"})
	if err != nil {
		t.Fatalf("MigrateDatabricksJobs: %v", err)
	}
	if len(out.Succeeded) != 1 || out.Succeeded[0] != "101" {
		t.Errorf("Succeeded = %v", out.Succeeded)
	}
	if len(out.AlreadyExists) != 1 || out.AlreadyExists[0] != "102" {
		t.Errorf("AlreadyExists = %v", out.AlreadyExists)
	}
	if len(out.Failed) != 1 || out.Failed[0].Ref != "103" || out.Failed[0].Message != "quota exceeded" {
		t.Errorf("Failed = %v", out.Failed)
	}
}

func TestListWorkspaces(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"workspaces": [
			{"workspaceId": "ws-1", "workspaceName": "Analytics", "capacityId": "cap-1", "region": "westeurope"}
		]}`)
	}))

	workspaces, err := c.ListWorkspaces(context.Background(), models.FabricCredentials{})
	if err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
	if len(workspaces) != 1 {
		t.Fatalf("got %d workspaces, want 1", len(workspaces))
	}
	ws := workspaces[0]
	if ws.ID != "ws-1" || ws.Name != "Analytics" || ws.CapacityID != "cap-1" || ws.Region != "westeurope" {
		t.Errorf("workspace = %+v", ws)
	}
}

func TestCreateWorkspace(t *testing.T) {
	var gotPayload map[string]string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotPayload)
		io.WriteString(w, `{"workspaceId": "ws-new", "workspaceName": "Fresh", "status": "created"}`)
	}))

	result, err := c.CreateWorkspace(context.Background(), models.FabricCredentials{TenantID: "t"},
		"Fresh", "cap-1", "westeurope", "ada@example.com")
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}
	if result.Status != "created" || result.WorkspaceID != "ws-new" {
		t.Errorf("result = %+v", result)
	}
	if gotPayload["requestingUserEmail"] != "ada@example.com" {
		t.Errorf("payload requestingUserEmail = %q", gotPayload["requestingUserEmail"])
	}
	if gotPayload["capacityId"] != "cap-1" {
		t.Errorf("payload capacityId = %q", gotPayload["capacityId"])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 200); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("x", 300)
	got := truncate(long, 200)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate(long) len = %d, want 200 chars plus ellipsis", len(got))
	}
}
