package models

// AssetKind determines which remote migration endpoint and payload shape
// applies to an asset.
type AssetKind string

const (
	KindSparkPool     AssetKind = "SparkPool"
	KindNotebook      AssetKind = "Notebook"
	KindPipeline      AssetKind = "Pipeline"
	KindLinkedService AssetKind = "LinkedService"
	KindJob           AssetKind = "Job"
	KindCluster       AssetKind = "Cluster"
	KindWorkflow      AssetKind = "Workflow"
	KindDLT           AssetKind = "DLT"
)

// Source identifies the platform an asset was discovered on.
type Source string

const (
	SourceSynapse    Source = "synapse"
	SourceDatabricks Source = "databricks"
)

// Asset is one discoverable unit in a source platform, normalized into the
// row shape the inventory tables consume.
type Asset struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Kind   AssetKind `json:"kind"`
	Source Source    `json:"source"`
	Status Status    `json:"status"`

	// Kind-specific attributes carried through from discovery.
	RuntimeVersion string `json:"runtimeVersion,omitempty"`
	NodeType       string `json:"nodeType,omitempty"`
	Nodes          int    `json:"nodes,omitempty"`
	Language       string `json:"language,omitempty"`
	Dependencies   int    `json:"dependencies,omitempty"`
	Activities     int    `json:"activities,omitempty"`
	Schedule       string `json:"schedule,omitempty"`
	Cluster        string `json:"cluster,omitempty"`
	Path           string `json:"path,omitempty"`
	Workers        int    `json:"workers,omitempty"`
	Tasks          int    `json:"tasks,omitempty"`
	LastModified   string `json:"lastModified,omitempty"`
	LastRun        string `json:"lastRun,omitempty"`
}

// MigrationRef returns the identifier a migration endpoint keys its per-item
// results by: display names for Synapse assets, native IDs for Databricks.
func (a *Asset) MigrationRef() string {
	if a.Source == SourceDatabricks {
		return a.ID
	}
	return a.Name
}

// FabricItem is one asset already present on the target side, flattened out
// of the per-workspace Fabric inventory.
type FabricItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Workspace    string `json:"workspace"`
	WorkspaceID  string `json:"workspaceId"`
	Status       Status `json:"status"`
	Description  string `json:"description,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
}
