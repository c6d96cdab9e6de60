package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/remote"
)

// minWorkspaceNameLength matches the console's availability check, which only
// fires once the name has at least three characters.
const minWorkspaceNameLength = 3

var (
	ErrNameTooShort = fmt.Errorf("workspace name must be at least %d characters", minWorkspaceNameLength)
	ErrMissingEmail = errors.New("requesting user email not found in profile")
)

// NameAvailability is the advisory result of a workspace name check. The
// authoritative check happens server-side during creation.
type NameAvailability struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Resolver produces the TargetWorkspace a run migrates into, either from the
// existing workspace list or through create-or-reuse.
type Resolver struct {
	client *remote.Client
}

// NewResolver creates a Resolver.
func NewResolver(client *remote.Client) *Resolver {
	return &Resolver{client: client}
}

// ListWorkspaces fetches the target tenant's workspaces.
func (r *Resolver) ListWorkspaces(ctx context.Context, creds models.FabricCredentials) ([]models.TargetWorkspace, error) {
	return r.client.ListWorkspaces(ctx, creds)
}

// ListCapacities fetches capacities and keeps only Active ones.
func (r *Resolver) ListCapacities(ctx context.Context, creds models.FabricCredentials) ([]models.Capacity, error) {
	all, err := r.client.ListCapacities(ctx, creds)
	if err != nil {
		return nil, err
	}
	active := make([]models.Capacity, 0, len(all))
	for _, c := range all {
		if c.State == models.CapacityStateActive {
			active = append(active, c)
		}
	}
	return active, nil
}

// CheckName reports whether a workspace name is free, comparing
// case-insensitively on trimmed names.
func (r *Resolver) CheckName(ctx context.Context, creds models.FabricCredentials, name string) (*NameAvailability, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minWorkspaceNameLength {
		return nil, ErrNameTooShort
	}
	workspaces, err := r.client.ListWorkspaces(ctx, creds)
	if err != nil {
		return nil, err
	}
	taken := false
	for _, ws := range workspaces {
		if strings.EqualFold(strings.TrimSpace(ws.Name), trimmed) {
			taken = true
			break
		}
	}
	return &NameAvailability{Name: trimmed, Available: !taken}, nil
}

// CreateOrReuse creates a workspace or adopts the existing one of the same
// name. Both outcomes return a usable TargetWorkspace; the status tells them
// apart. Fails before any network call if the operator email is missing.
func (r *Resolver) CreateOrReuse(ctx context.Context, creds models.FabricCredentials, name, capacityID, region, requestingUserEmail string) (*models.TargetWorkspace, string, error) {
	if strings.TrimSpace(requestingUserEmail) == "" {
		return nil, "", ErrMissingEmail
	}

	result, err := r.client.CreateWorkspace(ctx, creds, strings.TrimSpace(name), capacityID, region, requestingUserEmail)
	if err != nil {
		return nil, "", err
	}

	switch result.Status {
	case models.WorkspaceCreated, models.WorkspaceAlreadyExists:
	default:
		return nil, "", fmt.Errorf("unexpected workspace status %q", result.Status)
	}

	ws := &models.TargetWorkspace{
		ID:         result.WorkspaceID,
		Name:       result.WorkspaceName,
		CapacityID: result.CapacityID,
		Region:     result.Region,
	}
	if ws.CapacityID == "" {
		ws.CapacityID = capacityID
	}
	if ws.Region == "" {
		ws.Region = region
	}
	return ws, result.Status, nil
}
