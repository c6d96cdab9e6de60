// Package inventory maps raw discovery payloads into the normalized asset
// rows the console tables and the migration run consume. All functions are
// pure; discovery attributes pass through untouched.
package inventory

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/remote"
)

// FromSynapse normalizes a Synapse discovery snapshot. Kinds outside the
// requested scope are dropped even if the endpoint returned them.
func FromSynapse(inv *remote.SynapseInventory, scope remote.DiscoveryScope) []models.Asset {
	var assets []models.Asset

	if scope.SparkPools {
		for i, pool := range inv.SparkPools {
			status := models.StatusPending
			if pool.Properties.ProvisioningState == "Succeeded" {
				status = models.StatusReady
			}
			assets = append(assets, models.Asset{
				ID:             fallback(pool.ID, fmt.Sprintf("pool-%d", i)),
				Name:           fallback(pool.Name, fmt.Sprintf("Unnamed Pool %d", i+1)),
				Kind:           models.KindSparkPool,
				Source:         models.SourceSynapse,
				Status:         status,
				RuntimeVersion: "Spark " + fallback(pool.Properties.SparkVersion, "N/A"),
				NodeType:       fallback(pool.Properties.NodeSizeFamily, "General Purpose"),
				Nodes:          pool.Properties.NodeCount,
			})
		}
	}

	if scope.Notebooks {
		for i, nb := range inv.Notebooks {
			assets = append(assets, models.Asset{
				ID:       fallback(nb.ID, fmt.Sprintf("notebook-%d", i)),
				Name:     fallback(nb.Name, fmt.Sprintf("Unnamed Notebook %d", i+1)),
				Kind:     models.KindNotebook,
				Source:   models.SourceSynapse,
				Status:   models.StatusReady,
				Language: capitalize(fallback(nb.Properties.Metadata.LanguageInfo.Name, "python")),
			})
		}
	}

	if scope.Pipelines {
		for i, pl := range inv.Pipelines {
			assets = append(assets, models.Asset{
				ID:         fallback(pl.ID, fmt.Sprintf("pipeline-%d", i)),
				Name:       fallback(pl.Name, fmt.Sprintf("Unnamed Pipeline %d", i+1)),
				Kind:       models.KindPipeline,
				Source:     models.SourceSynapse,
				Status:     models.StatusSuccess,
				Activities: len(pl.Properties.Activities),
			})
		}
	}

	if scope.LinkedServices {
		for i, ls := range inv.LinkedServices {
			assets = append(assets, models.Asset{
				ID:       fallback(ls.ID, fmt.Sprintf("service-%d", i)),
				Name:     fallback(ls.Name, fmt.Sprintf("Unnamed Service %d", i+1)),
				Kind:     models.KindLinkedService,
				Source:   models.SourceSynapse,
				Status:   models.StatusReady,
				NodeType: fallback(ls.Properties.Type, "Unknown"),
			})
		}
	}

	return assets
}

// FromDatabricks normalizes a Databricks discovery snapshot. Native numeric
// IDs become the asset IDs the migration endpoints key their results by.
func FromDatabricks(inv *remote.DatabricksInventory) []models.Asset {
	var assets []models.Asset

	for i, nb := range inv.Notebooks {
		id := fmt.Sprintf("notebook-%d", i)
		if nb.ObjectID != 0 {
			id = strconv.FormatInt(nb.ObjectID, 10)
		} else if nb.Path != "" {
			id = nb.Path
		}
		name := fmt.Sprintf("Unnamed Notebook %d", i+1)
		if nb.Path != "" {
			name = path.Base(nb.Path)
		}
		assets = append(assets, models.Asset{
			ID:       id,
			Name:     name,
			Kind:     models.KindNotebook,
			Source:   models.SourceDatabricks,
			Status:   models.StatusReady,
			Language: capitalize(fallback(nb.Language, "python")),
			Path:     nb.Path,
		})
	}

	for i, job := range inv.Jobs {
		id := fmt.Sprintf("job-%d", i)
		if job.JobID != 0 {
			id = strconv.FormatInt(job.JobID, 10)
		}
		assets = append(assets, models.Asset{
			ID:       id,
			Name:     fallback(job.Settings.Name, fmt.Sprintf("Unnamed Job %d", i+1)),
			Kind:     models.KindJob,
			Source:   models.SourceDatabricks,
			Status:   models.StatusReady,
			Schedule: job.Settings.Schedule.QuartzCronExpression,
			Cluster:  job.Settings.ExistingClusterID,
			Tasks:    len(job.Settings.Tasks),
		})
	}

	for i, cl := range inv.Clusters {
		assets = append(assets, models.Asset{
			ID:             fallback(cl.ClusterID, fmt.Sprintf("cluster-%d", i)),
			Name:           fallback(cl.ClusterName, fmt.Sprintf("Unnamed Cluster %d", i+1)),
			Kind:           models.KindCluster,
			Source:         models.SourceDatabricks,
			Status:         models.StatusReady,
			RuntimeVersion: cl.SparkVersion,
			NodeType:       cl.NodeTypeID,
			Workers:        cl.NumWorkers,
		})
	}

	return assets
}

// FromFabric flattens the per-workspace target inventory into rows. IDs are
// synthesized from workspace ID plus native ID so the same item name in two
// workspaces never collides.
func FromFabric(inv *remote.FabricInventory) []models.FabricItem {
	var items []models.FabricItem

	add := func(ws remote.RawFabricWorkspace, raw remote.RawFabricItem, itemType string) {
		items = append(items, models.FabricItem{
			ID:          ws.WorkspaceID + "/" + raw.ID,
			Name:        raw.DisplayName,
			Type:        itemType,
			Workspace:   ws.WorkspaceName,
			WorkspaceID: ws.WorkspaceID,
			Status:      models.StatusSuccess,
			Description: raw.Description,
		})
	}

	for _, ws := range inv.Workspaces {
		for _, it := range ws.Notebooks {
			add(ws, it, "Notebook")
		}
		for _, it := range ws.Pipelines {
			add(ws, it, "Pipeline")
		}
		for _, it := range ws.Lakehouses {
			add(ws, it, "Lakehouse")
		}
		for _, it := range ws.Warehouses {
			add(ws, it, "Warehouse")
		}
		for _, it := range ws.SemanticModels {
			add(ws, it, "Semantic Model")
		}
		for _, it := range ws.SparkPools {
			add(ws, it, "Spark Pool")
		}
	}

	return items
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
