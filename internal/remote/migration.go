package remote

import (
	"context"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
)

// MigrationCredentials carries the source and target secrets for one
// migration call, captured once at run start and passed explicitly.
type MigrationCredentials struct {
	Synapse    *models.SynapseCredentials
	Databricks *models.DatabricksCredentials
	Fabric     models.FabricCredentials
}

// Failure is one per-item failure record from a migration endpoint.
type Failure struct {
	Ref     string
	Message string
}

// Outcome is the normalized classification every migration endpoint reduces
// to: succeeded refs, already-existing refs, and failure records. Synapse
// endpoints key results by asset name, Databricks ones by native ID.
type Outcome struct {
	Succeeded     []string
	AlreadyExists []string
	Failed        []Failure
}

// synapseMigrationResponse is the wire shape of the Synapse-side endpoints.
type synapseMigrationResponse struct {
	Success       []string `json:"Success"`
	AlreadyExists []string `json:"AlreadyExists"`
	Failed        []struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"Failed"`
}

func (r *synapseMigrationResponse) outcome() *Outcome {
	out := &Outcome{Succeeded: r.Success, AlreadyExists: r.AlreadyExists}
	for _, f := range r.Failed {
		out.Failed = append(out.Failed, Failure{Ref: f.Name, Message: f.Message})
	}
	return out
}

func synapseMigrationPayload(creds MigrationCredentials, targetWorkspaceID string) map[string]interface{} {
	var syn models.SynapseCredentials
	if creds.Synapse != nil {
		syn = *creds.Synapse
	}
	return map[string]interface{}{
		"synapse": map[string]string{
			"tenantId":      syn.TenantID,
			"clientId":      syn.ClientID,
			"clientSecret":  syn.ClientSecret,
			"workspaceName": syn.WorkspaceName,
		},
		"fabric": map[string]string{
			"tenantId":     creds.Fabric.TenantID,
			"clientId":     creds.Fabric.ClientID,
			"clientSecret": creds.Fabric.ClientSecret,
			"workspaceId":  targetWorkspaceID,
		},
	}
}

func (c *Client) synapseMigration(ctx context.Context, endpoint string, payload map[string]interface{}) (*Outcome, error) {
	var resp synapseMigrationResponse
	if err := c.postWrite(ctx, endpoint, payload, &resp); err != nil {
		return nil, err
	}
	return resp.outcome(), nil
}

// MigrateSparkPools migrates the named Spark pools into the target workspace.
func (c *Client) MigrateSparkPools(ctx context.Context, creds MigrationCredentials, targetWorkspaceID string, pools []string) (*Outcome, error) {
	payload := synapseMigrationPayload(creds, targetWorkspaceID)
	payload["selectedPools"] = pools
	payload["migrateConfigs"] = true
	return c.synapseMigration(ctx, EndpointSparkPoolMigration, payload)
}

// MigrateNotebooks migrates the named Synapse notebooks.
func (c *Client) MigrateNotebooks(ctx context.Context, creds MigrationCredentials, targetWorkspaceID string, notebooks []string) (*Outcome, error) {
	payload := synapseMigrationPayload(creds, targetWorkspaceID)
	payload["notebooks"] = notebooks
	return c.synapseMigration(ctx, EndpointNotebooksMigration, payload)
}

// MigratePipelines migrates the named Synapse pipelines.
func (c *Client) MigratePipelines(ctx context.Context, creds MigrationCredentials, targetWorkspaceID string, pipelines []string) (*Outcome, error) {
	payload := synapseMigrationPayload(creds, targetWorkspaceID)
	payload["pipelines"] = pipelines
	return c.synapseMigration(ctx, EndpointPipelinesMigration, payload)
}

// databricksMigrationResponse is the wire shape of the Databricks-side
// endpoints, keyed by native asset IDs.
type databricksMigrationResponse struct {
	Created       []string            `json:"created"`
	AlreadyExists []string            `json:"already_exists"`
	Failed        []databricksFailure `json:"failed"`
}

type databricksFailure struct {
	NotebookID string `json:"notebook_id,omitempty"`
	JobID      string `json:"job_id,omitempty"`
	ClusterID  string `json:"cluster_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (f databricksFailure) ref() string {
	switch {
	case f.NotebookID != "":
		return f.NotebookID
	case f.JobID != "":
		return f.JobID
	default:
		return f.ClusterID
	}
}

func (r *databricksMigrationResponse) outcome() *Outcome {
	out := &Outcome{Succeeded: r.Created, AlreadyExists: r.AlreadyExists}
	for _, f := range r.Failed {
		out.Failed = append(out.Failed, Failure{Ref: f.ref(), Message: f.Error})
	}
	return out
}

func databricksMigrationPayload(creds MigrationCredentials, targetWorkspaceID string) map[string]interface{} {
	var dbx models.DatabricksCredentials
	if creds.Databricks != nil {
		dbx = *creds.Databricks
	}
	return map[string]interface{}{
		"databricks": map[string]string{
			"workspaceUrl":        dbx.WorkspaceURL,
			"personalAccessToken": dbx.AccessToken,
		},
		"fabric": map[string]string{
			"tenantId":     creds.Fabric.TenantID,
			"clientId":     creds.Fabric.ClientID,
			"clientSecret": creds.Fabric.ClientSecret,
			"workspaceId":  targetWorkspaceID,
		},
	}
}

func (c *Client) databricksMigration(ctx context.Context, endpoint string, payload map[string]interface{}) (*Outcome, error) {
	var resp databricksMigrationResponse
	if err := c.postWrite(ctx, endpoint, payload, &resp); err != nil {
		return nil, err
	}
	return resp.outcome(), nil
}

// MigrateDatabricksNotebooks migrates Databricks notebooks by native ID.
func (c *Client) MigrateDatabricksNotebooks(ctx context.Context, creds MigrationCredentials, targetWorkspaceID string, ids []string) (*Outcome, error) {
	payload := databricksMigrationPayload(creds, targetWorkspaceID)
	payload["notebooks"] = ids
	return c.databricksMigration(ctx, EndpointDatabricksNotebooksMigration, payload)
}

// MigrateDatabricksJobs migrates Databricks jobs by native ID.
func (c *Client) MigrateDatabricksJobs(ctx context.Context, creds MigrationCredentials, targetWorkspaceID string, ids []string) (*Outcome, error) {
	payload := databricksMigrationPayload(creds, targetWorkspaceID)
	payload["jobs"] = ids
	return c.databricksMigration(ctx, EndpointDatabricksJobsMigration, payload)
}

// MigrateDatabricksClusters migrates Databricks clusters by native ID.
func (c *Client) MigrateDatabricksClusters(ctx context.Context, creds MigrationCredentials, targetWorkspaceID string, ids []string) (*Outcome, error) {
	payload := databricksMigrationPayload(creds, targetWorkspaceID)
	payload["clusters"] = ids
	return c.databricksMigration(ctx, EndpointDatabricksClustersMigration, payload)
}
