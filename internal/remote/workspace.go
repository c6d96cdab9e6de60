package remote

import (
	"context"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
)

func fabricCredsPayload(creds models.FabricCredentials) map[string]string {
	return map[string]string{
		"tenantId":     creds.TenantID,
		"clientId":     creds.ClientID,
		"clientSecret": creds.ClientSecret,
	}
}

// ListWorkspaces fetches the target tenant's workspaces.
func (c *Client) ListWorkspaces(ctx context.Context, creds models.FabricCredentials) ([]models.TargetWorkspace, error) {
	var resp struct {
		Workspaces []struct {
			WorkspaceID   string `json:"workspaceId"`
			WorkspaceName string `json:"workspaceName"`
			CapacityID    string `json:"capacityId"`
			Region        string `json:"region"`
		} `json:"workspaces"`
	}
	if err := c.postRead(ctx, EndpointListWorkspaces, fabricCredsPayload(creds), &resp); err != nil {
		return nil, err
	}
	out := make([]models.TargetWorkspace, 0, len(resp.Workspaces))
	for _, w := range resp.Workspaces {
		out = append(out, models.TargetWorkspace{
			ID:         w.WorkspaceID,
			Name:       w.WorkspaceName,
			CapacityID: w.CapacityID,
			Region:     w.Region,
		})
	}
	return out, nil
}

// ListCapacities fetches all capacities in the target tenant, active or not.
func (c *Client) ListCapacities(ctx context.Context, creds models.FabricCredentials) ([]models.Capacity, error) {
	var resp struct {
		Capacities []models.Capacity `json:"capacities"`
	}
	if err := c.postRead(ctx, EndpointListCapacities, fabricCredsPayload(creds), &resp); err != nil {
		return nil, err
	}
	return resp.Capacities, nil
}

// CreateWorkspaceResult is the create-or-reuse outcome. Status is either
// "created" or "already-exists"; both let the caller proceed.
type CreateWorkspaceResult struct {
	WorkspaceID   string `json:"workspaceId"`
	WorkspaceName string `json:"workspaceName"`
	Status        string `json:"status"`
	CapacityID    string `json:"capacityId,omitempty"`
	Region        string `json:"region,omitempty"`
}

// CreateWorkspace creates a workspace, or reuses an existing one of the same
// name. The requesting user's email is required by the remote function for
// workspace role assignment.
func (c *Client) CreateWorkspace(ctx context.Context, creds models.FabricCredentials, name, capacityID, region, requestingUserEmail string) (*CreateWorkspaceResult, error) {
	payload := map[string]string{
		"tenantId":            creds.TenantID,
		"clientId":            creds.ClientID,
		"clientSecret":        creds.ClientSecret,
		"workspaceName":       name,
		"capacityId":          capacityID,
		"region":              region,
		"requestingUserEmail": requestingUserEmail,
	}
	var result CreateWorkspaceResult
	if err := c.postWrite(ctx, EndpointCreateWorkspace, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
