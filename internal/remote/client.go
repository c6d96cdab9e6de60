// Package remote wraps the deployed discovery and migration HTTP functions.
// Every endpoint is an opaque collaborator: one JSON POST in, one JSON
// document out.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Function endpoint names. Each is appended to the base URL and authorized
// by its own function key in the "code" query parameter.
const (
	EndpointConnectSynapse    = "ConnecttoSynapseWs"
	EndpointConnectDatabricks = "ConnecttoDatabricks"
	EndpointConnectFabric     = "connecttofabric"

	EndpointListWorkspaces  = "ListFabricWorkspaces"
	EndpointListCapacities  = "ListCapacities"
	EndpointCreateWorkspace = "CreateFabricWorkspace"

	EndpointSparkPoolMigration = "SparkPoolMigration"
	EndpointNotebooksMigration = "NotebooksMigration"
	EndpointPipelinesMigration = "PipelinesMigration"

	EndpointDatabricksNotebooksMigration = "DatabricksNotebooksMigration"
	EndpointDatabricksJobsMigration      = "DatabricksJobsMigration"
	EndpointDatabricksClustersMigration  = "DatabricksClustersMigration"
)

// databricksEndpoints lists the endpoints served by the Databricks function
// app rather than the Synapse one.
var databricksEndpoints = map[string]bool{
	EndpointConnectDatabricks:            true,
	EndpointDatabricksNotebooksMigration: true,
	EndpointDatabricksJobsMigration:      true,
	EndpointDatabricksClustersMigration:  true,
}

// Client is the shared HTTP client for all remote functions. Read-style
// calls (discovery, workspace and capacity listing) go through a retrying
// client; migration calls are never retried automatically.
type Client struct {
	baseURL           string
	databricksBaseURL string
	keys              map[string]string
	read              *http.Client
	write             *http.Client
}

// NewClient creates a Client. A zero timeout leaves the underlying client's
// default in place.
func NewClient(baseURL, databricksBaseURL string, keys map[string]string, timeout time.Duration) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	rc.HTTPClient.Timeout = timeout
	if databricksBaseURL == "" {
		databricksBaseURL = baseURL
	}
	return &Client{
		baseURL:           strings.TrimRight(baseURL, "/"),
		databricksBaseURL: strings.TrimRight(databricksBaseURL, "/"),
		keys:              keys,
		read:              rc.StandardClient(),
		write:             &http.Client{Timeout: timeout},
	}
}

// endpointURL builds the full URL for an endpoint, including its function key.
func (c *Client) endpointURL(endpoint string) string {
	base := c.baseURL
	if databricksEndpoints[endpoint] {
		base = c.databricksBaseURL
	}
	u := base + "/" + endpoint
	if key := c.keys[endpoint]; key != "" {
		u += "?code=" + url.QueryEscape(key)
	}
	return u
}

// postJSON issues a JSON POST to an endpoint and decodes the JSON response
// into dest. Non-2xx responses and malformed bodies surface as errors; the
// body is truncated into the message for diagnostics.
func (c *Client) postJSON(ctx context.Context, hc *http.Client, endpoint string, payload, dest interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(endpoint), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s: HTTP %d: %s", endpoint, resp.StatusCode, truncate(string(body), 200))
	}

	if dest != nil {
		if err := json.Unmarshal(body, dest); err != nil {
			return fmt.Errorf("parsing %s response: %w", endpoint, err)
		}
	}
	return nil
}

// postRead is for idempotent calls that may be retried.
func (c *Client) postRead(ctx context.Context, endpoint string, payload, dest interface{}) error {
	return c.postJSON(ctx, c.read, endpoint, payload, dest)
}

// postWrite is for calls with side effects; never retried here.
func (c *Client) postWrite(ctx context.Context, endpoint string, payload, dest interface{}) error {
	return c.postJSON(ctx, c.write, endpoint, payload, dest)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
