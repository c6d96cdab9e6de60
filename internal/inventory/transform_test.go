package inventory

import (
	"encoding/json"
	"testing"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/remote"
)

func synapseInventory() *remote.SynapseInventory {
	inv := &remote.SynapseInventory{Workspace: "syn-ws"}

	pool := remote.RawSparkPool{ID: "pool-a", Name: "analytics"}
	pool.Properties.SparkVersion = "3.4"
	pool.Properties.NodeSizeFamily = "MemoryOptimized"
	pool.Properties.NodeCount = 5
	pool.Properties.ProvisioningState = "Succeeded"
	inv.SparkPools = []remote.RawSparkPool{pool, {Name: "provisioning"}}

	nb := remote.RawSynapseNotebook{ID: "nb-a", Name: "etl"}
	nb.Properties.Metadata.LanguageInfo.Name = "scala"
	inv.Notebooks = []remote.RawSynapseNotebook{nb, {ID: "nb-b", Name: "bare"}}

	pl := remote.RawPipeline{ID: "pl-a", Name: "ingest"}
	pl.Properties.Activities = make([]jsonRaw, 3)
	inv.Pipelines = []remote.RawPipeline{pl}

	ls := remote.RawLinkedService{ID: "ls-a", Name: "blob-store"}
	ls.Properties.Type = "AzureBlobStorage"
	inv.LinkedServices = []remote.RawLinkedService{ls}

	return inv
}

// jsonRaw keeps the fixture terse.
type jsonRaw = json.RawMessage

func TestFromSynapse_FullScope(t *testing.T) {
	assets := FromSynapse(synapseInventory(), remote.FullScope())
	if len(assets) != 6 {
		t.Fatalf("got %d assets, want 6", len(assets))
	}

	byID := make(map[string]models.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
		if a.Source != models.SourceSynapse {
			t.Errorf("asset %s source = %q", a.ID, a.Source)
		}
	}

	pool := byID["pool-a"]
	if pool.Kind != models.KindSparkPool || pool.Status != models.StatusReady {
		t.Errorf("provisioned pool = %+v, want Ready SparkPool", pool)
	}
	if pool.RuntimeVersion != "Spark 3.4" || pool.NodeType != "MemoryOptimized" || pool.Nodes != 5 {
		t.Errorf("pool attributes = %+v", pool)
	}

	// Second pool is still provisioning and has no ID of its own.
	pending := byID["pool-1"]
	if pending.Status != models.StatusPending {
		t.Errorf("unprovisioned pool status = %q, want Pending", pending.Status)
	}
	if pending.RuntimeVersion != "Spark N/A" || pending.NodeType != "General Purpose" {
		t.Errorf("unprovisioned pool attributes = %+v", pending)
	}

	if nb := byID["nb-a"]; nb.Language != "Scala" {
		t.Errorf("notebook language = %q, want capitalized Scala", nb.Language)
	}
	if nb := byID["nb-b"]; nb.Language != "Python" {
		t.Errorf("notebook without metadata language = %q, want Python default", nb.Language)
	}

	if pl := byID["pl-a"]; pl.Activities != 3 || pl.Status != models.StatusSuccess {
		t.Errorf("pipeline = %+v", pl)
	}

	if ls := byID["ls-a"]; ls.Kind != models.KindLinkedService || ls.NodeType != "AzureBlobStorage" {
		t.Errorf("linked service = %+v", ls)
	}
}

func TestFromSynapse_ScopeFilters(t *testing.T) {
	scope := remote.DiscoveryScope{Notebooks: true}
	assets := FromSynapse(synapseInventory(), scope)
	if len(assets) != 2 {
		t.Fatalf("got %d assets, want only the 2 notebooks", len(assets))
	}
	for _, a := range assets {
		if a.Kind != models.KindNotebook {
			t.Errorf("out-of-scope kind %q leaked through", a.Kind)
		}
	}
}

func TestFromDatabricks(t *testing.T) {
	inv := &remote.DatabricksInventory{
		Notebooks: []remote.RawDatabricksNotebook{
			{ObjectID: 4451, Path: "/Users/ada/etl", Language: "PYTHON"},
			{Path: "/Shared/no-object-id"},
			{},
		},
		Jobs: []remote.RawDatabricksJob{
			func() remote.RawDatabricksJob {
				j := remote.RawDatabricksJob{JobID: 101}
				j.Settings.Name = "nightly"
				j.Settings.Schedule.QuartzCronExpression = "0 0 2 * * ?"
				j.Settings.ExistingClusterID = "c-1"
				j.Settings.Tasks = make([]jsonRaw, 2)
				return j
			}(),
			{},
		},
		Clusters: []remote.RawDatabricksCluster{
			{ClusterID: "c-1", ClusterName: "shared", SparkVersion: "13.3.x", NodeTypeID: "i3.xlarge", NumWorkers: 4},
		},
	}

	assets := FromDatabricks(inv)
	if len(assets) != 6 {
		t.Fatalf("got %d assets, want 6", len(assets))
	}

	byID := make(map[string]models.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}

	// Native object ID wins as the asset ID; name is the path basename.
	nb := byID["4451"]
	if nb.Kind != models.KindNotebook || nb.Name != "etl" || nb.Path != "/Users/ada/etl" {
		t.Errorf("notebook = %+v", nb)
	}
	if nb.Language != "PYTHON" {
		t.Errorf("language = %q, want passthrough", nb.Language)
	}

	// No object ID: path stands in.
	if _, ok := byID["/Shared/no-object-id"]; !ok {
		t.Error("notebook without object_id should use its path as ID")
	}
	// Neither: positional fallback.
	if a, ok := byID["notebook-2"]; !ok || a.Name != "Unnamed Notebook 3" {
		t.Errorf("bare notebook = %+v, want positional fallback", a)
	}

	job := byID["101"]
	if job.Kind != models.KindJob || job.Name != "nightly" || job.Schedule != "0 0 2 * * ?" || job.Cluster != "c-1" || job.Tasks != 2 {
		t.Errorf("job = %+v", job)
	}
	if _, ok := byID["job-1"]; !ok {
		t.Error("job without job_id should use positional fallback ID")
	}

	cl := byID["c-1"]
	if cl.Kind != models.KindCluster || cl.RuntimeVersion != "13.3.x" || cl.NodeType != "i3.xlarge" || cl.Workers != 4 {
		t.Errorf("cluster = %+v", cl)
	}
}

func TestFromFabric(t *testing.T) {
	inv := &remote.FabricInventory{
		Workspaces: []remote.RawFabricWorkspace{
			{
				WorkspaceID:   "ws-1",
				WorkspaceName: "Analytics",
				Notebooks:     []remote.RawFabricItem{{ID: "item-1", DisplayName: "etl"}},
				Lakehouses:    []remote.RawFabricItem{{ID: "item-2", DisplayName: "bronze"}},
			},
			{
				WorkspaceID:   "ws-2",
				WorkspaceName: "Finance",
				Notebooks:     []remote.RawFabricItem{{ID: "item-1", DisplayName: "etl"}},
			},
		},
	}

	items := FromFabric(inv)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	seen := make(map[string]bool)
	for _, it := range items {
		if seen[it.ID] {
			t.Errorf("duplicate synthesized ID %q across workspaces", it.ID)
		}
		seen[it.ID] = true
	}

	first := items[0]
	if first.ID != "ws-1/item-1" || first.Type != "Notebook" || first.Workspace != "Analytics" {
		t.Errorf("first item = %+v", first)
	}
	if items[1].Type != "Lakehouse" {
		t.Errorf("second item type = %q, want Lakehouse", items[1].Type)
	}
}
