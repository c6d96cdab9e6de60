package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/orchestrator"
)

// fabricCreds pulls the target credentials from the session, or fails the
// request if neither Fabric nor Synapse is connected.
func (s *Server) fabricCreds(w http.ResponseWriter) (models.FabricCredentials, bool) {
	creds, ok := s.Sessions.FabricCreds()
	if !ok {
		writeError(w, http.StatusBadRequest, "no target credentials — connect to Fabric or Synapse first")
	}
	return creds, ok
}

func (s *Server) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	creds, ok := s.fabricCreds(w)
	if !ok {
		return
	}
	workspaces, err := s.Resolver.ListWorkspaces(r.Context(), creds)
	if err != nil {
		s.Log.Warnw("workspace list failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if workspaces == nil {
		workspaces = []models.TargetWorkspace{}
	}
	writeJSON(w, http.StatusOK, workspaces)
}

func (s *Server) ListCapacities(w http.ResponseWriter, r *http.Request) {
	creds, ok := s.fabricCreds(w)
	if !ok {
		return
	}
	capacities, err := s.Resolver.ListCapacities(r.Context(), creds)
	if err != nil {
		s.Log.Warnw("capacity list failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, capacities)
}

func (s *Server) CheckWorkspaceName(w http.ResponseWriter, r *http.Request) {
	creds, ok := s.fabricCreds(w)
	if !ok {
		return
	}
	availability, err := s.Resolver.CheckName(r.Context(), creds, r.URL.Query().Get("name"))
	if err != nil {
		if errors.Is(err, orchestrator.ErrNameTooShort) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

// CreateWorkspace resolves a target workspace by create-or-reuse. Both a
// fresh workspace and an existing one of the same name succeed; the status
// in the response tells them apart.
func (s *Server) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkspaceName string `json:"workspaceName"`
		CapacityID    string `json:"capacityId"`
		Region        string `json:"region"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.WorkspaceName == "" || req.CapacityID == "" {
		writeError(w, http.StatusBadRequest, "workspaceName and capacityId are required")
		return
	}
	creds, ok := s.fabricCreds(w)
	if !ok {
		return
	}
	profile, _ := s.Sessions.Profile()

	ws, status, err := s.Resolver.CreateOrReuse(r.Context(), creds,
		req.WorkspaceName, req.CapacityID, req.Region, profile.Email)
	if err != nil {
		if errors.Is(err, orchestrator.ErrMissingEmail) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.Log.Warnw("workspace creation failed", "name", req.WorkspaceName, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	code := http.StatusCreated
	if status == models.WorkspaceAlreadyExists {
		code = http.StatusOK
	}
	writeJSON(w, code, map[string]interface{}{
		"workspace": ws,
		"status":    status,
	})
}
