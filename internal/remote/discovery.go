package remote

import (
	"context"
	"encoding/json"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
)

// DiscoveryScope selects which Synapse asset kinds the discovery scan covers.
type DiscoveryScope struct {
	SparkPools     bool `json:"sparkPools"`
	Notebooks      bool `json:"notebooks"`
	Pipelines      bool `json:"pipelines"`
	LinkedServices bool `json:"linkedServices"`
}

// FullScope scans everything.
func FullScope() DiscoveryScope {
	return DiscoveryScope{SparkPools: true, Notebooks: true, Pipelines: true, LinkedServices: true}
}

// Raw payload shapes returned by the discovery functions. They mirror each
// platform's native API; only the fields the transformer reads are declared.

type RawSparkPool struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Properties struct {
		SparkVersion      string `json:"sparkVersion"`
		NodeSizeFamily    string `json:"nodeSizeFamily"`
		NodeCount         int    `json:"nodeCount"`
		ProvisioningState string `json:"provisioningState"`
	} `json:"properties"`
}

type RawSynapseNotebook struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Properties struct {
		Metadata struct {
			LanguageInfo struct {
				Name string `json:"name"`
			} `json:"language_info"`
		} `json:"metadata"`
	} `json:"properties"`
}

type RawPipeline struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Properties struct {
		Activities []json.RawMessage `json:"activities"`
	} `json:"properties"`
}

type RawLinkedService struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Properties struct {
		Type string `json:"type"`
	} `json:"properties"`
}

// SynapseInventory is the discovery snapshot of a Synapse workspace.
type SynapseInventory struct {
	Workspace      string               `json:"workspace"`
	SparkPools     []RawSparkPool       `json:"sparkPools"`
	Notebooks      []RawSynapseNotebook `json:"notebooks"`
	Pipelines      []RawPipeline        `json:"pipelines"`
	LinkedServices []RawLinkedService   `json:"linkedServices"`
}

// DiscoverSynapse runs the inventory scan of a Synapse workspace.
func (c *Client) DiscoverSynapse(ctx context.Context, creds models.SynapseCredentials, scope DiscoveryScope) (*SynapseInventory, error) {
	payload := map[string]interface{}{
		"tenantId":      creds.TenantID,
		"clientId":      creds.ClientID,
		"clientSecret":  creds.ClientSecret,
		"workspaceName": creds.WorkspaceName,
		"scope":         scope,
	}
	var inv SynapseInventory
	if err := c.postRead(ctx, EndpointConnectSynapse, payload, &inv); err != nil {
		return nil, err
	}
	if inv.Workspace == "" {
		inv.Workspace = creds.WorkspaceName
	}
	return &inv, nil
}

type RawDatabricksNotebook struct {
	ObjectID int64  `json:"object_id"`
	Path     string `json:"path"`
	Language string `json:"language"`
}

type RawDatabricksJob struct {
	JobID    int64 `json:"job_id"`
	Settings struct {
		Name     string `json:"name"`
		Schedule struct {
			QuartzCronExpression string `json:"quartz_cron_expression"`
		} `json:"schedule"`
		ExistingClusterID string            `json:"existing_cluster_id"`
		Tasks             []json.RawMessage `json:"tasks"`
	} `json:"settings"`
	CreatedTime int64 `json:"created_time"`
}

type RawDatabricksCluster struct {
	ClusterID    string `json:"cluster_id"`
	ClusterName  string `json:"cluster_name"`
	SparkVersion string `json:"spark_version"`
	NodeTypeID   string `json:"node_type_id"`
	NumWorkers   int    `json:"num_workers"`
	State        string `json:"state"`
}

// DatabricksInventory is the discovery snapshot of a Databricks workspace.
type DatabricksInventory struct {
	Counts struct {
		Notebooks int `json:"notebooks"`
		Folders   int `json:"folders"`
		Jobs      int `json:"jobs"`
		Clusters  int `json:"clusters"`
	} `json:"counts"`
	Notebooks []RawDatabricksNotebook `json:"notebooks"`
	Jobs      []RawDatabricksJob      `json:"jobs"`
	Clusters  []RawDatabricksCluster  `json:"clusters"`
}

// DiscoverDatabricks runs the inventory scan of a Databricks workspace.
func (c *Client) DiscoverDatabricks(ctx context.Context, creds models.DatabricksCredentials) (*DatabricksInventory, error) {
	payload := map[string]string{
		"databricksUrl":       creds.WorkspaceURL,
		"personalAccessToken": creds.AccessToken,
	}
	var inv DatabricksInventory
	if err := c.postRead(ctx, EndpointConnectDatabricks, payload, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

type RawFabricItem struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	WorkspaceID string `json:"workspaceId"`
}

type RawFabricWorkspace struct {
	WorkspaceID    string          `json:"workspaceId"`
	WorkspaceName  string          `json:"workspaceName"`
	CapacityID     string          `json:"capacityId"`
	Notebooks      []RawFabricItem `json:"notebooks"`
	Pipelines      []RawFabricItem `json:"pipelines"`
	Lakehouses     []RawFabricItem `json:"lakehouses"`
	Warehouses     []RawFabricItem `json:"warehouses"`
	SemanticModels []RawFabricItem `json:"semanticModels"`
	SparkPools     []RawFabricItem `json:"sparkPools"`
}

// FabricInventory is the target-side snapshot grouped by workspace.
type FabricInventory struct {
	Workspaces []RawFabricWorkspace `json:"workspaces"`
}

// ConnectFabric fetches the target tenant's workspace inventory.
func (c *Client) ConnectFabric(ctx context.Context, creds models.FabricCredentials) (*FabricInventory, error) {
	payload := map[string]string{
		"tenantId":     creds.TenantID,
		"clientId":     creds.ClientID,
		"clientSecret": creds.ClientSecret,
	}
	var inv FabricInventory
	if err := c.postRead(ctx, EndpointConnectFabric, payload, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}
