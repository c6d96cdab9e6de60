package models

// TargetWorkspace is the resolved destination of a migration run.
type TargetWorkspace struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CapacityID string `json:"capacityId"`
	Region     string `json:"region"`
}

// Capacity is one Fabric capacity offered for new workspaces. Only Active
// capacities are presented to the user.
type Capacity struct {
	CapacityID   string `json:"capacityId"`
	CapacityName string `json:"capacityName"`
	SKU          string `json:"sku"`
	Region       string `json:"region"`
	State        string `json:"state"`
}

// CapacityStateActive is the only capacity state eligible for selection.
const CapacityStateActive = "Active"

// Workspace creation outcomes. Both are success paths for starting a run;
// they differ only in the status message shown to the user.
const (
	WorkspaceCreated       = "created"
	WorkspaceAlreadyExists = "already-exists"
)
