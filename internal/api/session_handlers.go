package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/inventory"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/remote"
)

// ConnectSynapse stores Synapse credentials and runs discovery, returning
// the normalized inventory. Validation happens before any network call.
func (s *Server) ConnectSynapse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		models.SynapseCredentials
		Scope remote.DiscoveryScope `json:"scope"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.TenantID == "" || req.ClientID == "" || req.ClientSecret == "" || req.WorkspaceName == "" {
		writeError(w, http.StatusBadRequest, "tenantId, clientId, clientSecret and workspaceName are required")
		return
	}
	scope := req.Scope
	if scope == (remote.DiscoveryScope{}) {
		scope = remote.FullScope()
	}

	inv, err := s.Remote.DiscoverSynapse(r.Context(), req.SynapseCredentials, scope)
	if err != nil {
		s.Log.Warnw("synapse discovery failed", "workspace", req.WorkspaceName, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	assets := inventory.FromSynapse(inv, scope)
	s.Sessions.SetSynapse(req.SynapseCredentials, inv.Workspace, assets)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workspace": inv.Workspace,
		"count":     len(assets),
		"assets":    assets,
	})
}

// ConnectDatabricks stores Databricks credentials and runs discovery.
func (s *Server) ConnectDatabricks(w http.ResponseWriter, r *http.Request) {
	var req models.DatabricksCredentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	req.WorkspaceURL = cleanWorkspaceURL(req.WorkspaceURL)
	req.AccessToken = strings.TrimSpace(req.AccessToken)
	if req.WorkspaceURL == "" || req.AccessToken == "" {
		writeError(w, http.StatusBadRequest, "workspaceUrl and accessToken are required")
		return
	}

	inv, err := s.Remote.DiscoverDatabricks(r.Context(), req)
	if err != nil {
		s.Log.Warnw("databricks discovery failed", "url", req.WorkspaceURL, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	assets := inventory.FromDatabricks(inv)
	if len(assets) == 0 {
		writeError(w, http.StatusNotFound, "no assets found in this workspace — check the workspace URL and access token")
		return
	}
	s.Sessions.SetDatabricks(req, assets)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"counts": inv.Counts,
		"assets": assets,
	})
}

// ConnectFabric stores target credentials and fetches the target inventory.
func (s *Server) ConnectFabric(w http.ResponseWriter, r *http.Request) {
	var req models.FabricCredentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.TenantID == "" || req.ClientID == "" || req.ClientSecret == "" {
		writeError(w, http.StatusBadRequest, "tenantId, clientId and clientSecret are required")
		return
	}

	inv, err := s.Remote.ConnectFabric(r.Context(), req)
	if err != nil {
		s.Log.Warnw("fabric connect failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	items := inventory.FromFabric(inv)
	s.Sessions.SetFabric(req, items)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workspaces": len(inv.Workspaces),
		"items":      items,
	})
}

// GetSession summarizes the session without revealing secrets.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	syn, synapse := s.Sessions.SynapseCreds()
	dbx, databricks := s.Sessions.DatabricksCreds()
	_, fabric := s.Sessions.FabricCreds()
	profile, _ := s.Sessions.Profile()

	resp := map[string]interface{}{
		"synapseConnected":    synapse,
		"databricksConnected": databricks,
		"fabricConnected":     fabric,
		"synapseWorkspace":    s.Sessions.SynapseWorkspace(),
		"profile":             profile,
	}
	if synapse {
		resp["synapse"] = map[string]string{
			"tenantId":      syn.TenantID,
			"clientId":      syn.ClientID,
			"clientSecret":  models.MaskSecret(syn.ClientSecret),
			"workspaceName": syn.WorkspaceName,
		}
	}
	if databricks {
		resp["databricks"] = map[string]string{
			"workspaceUrl": dbx.WorkspaceURL,
			"accessToken":  models.MaskSecret(dbx.AccessToken),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// SetProfile caches the logged-in operator's profile; the email is required
// later for workspace creation.
func (s *Server) SetProfile(w http.ResponseWriter, r *http.Request) {
	var p models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(p.Email) == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	s.Sessions.SetProfile(p)
	writeJSON(w, http.StatusOK, p)
}

// Logout wipes the session.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.Sessions.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// cleanWorkspaceURL normalizes a Databricks workspace URL: trims whitespace
// and trailing slashes, and defaults the scheme to https.
func cleanWorkspaceURL(raw string) string {
	u := strings.TrimSpace(raw)
	u = strings.TrimRight(u, "/")
	if u == "" {
		return ""
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u
}
