package api

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/orchestrator"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/remote"
)

// StartRun creates a migration run from the selected assets. The response
// carries the run with every item already Running; progress is read from
// the run endpoints or the event stream.
func (s *Server) StartRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source          models.Source          `json:"source"`
		AssetIDs        []string               `json:"assetIds"`
		TargetWorkspace models.TargetWorkspace `json:"targetWorkspace"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(req.AssetIDs) == 0 {
		writeError(w, http.StatusBadRequest, "no assets selected")
		return
	}
	if req.TargetWorkspace.ID == "" || req.TargetWorkspace.Name == "" {
		writeError(w, http.StatusBadRequest, "targetWorkspace id and name are required")
		return
	}
	if req.Source != models.SourceSynapse && req.Source != models.SourceDatabricks {
		writeError(w, http.StatusBadRequest, "source must be \"synapse\" or \"databricks\"")
		return
	}

	creds, ok := s.migrationCreds(w, req.Source)
	if !ok {
		return
	}

	discovered := s.Sessions.Assets(req.Source)
	byID := make(map[string]models.Asset, len(discovered))
	for _, a := range discovered {
		byID[a.ID] = a
	}
	selected := make([]models.Asset, 0, len(req.AssetIDs))
	for _, id := range req.AssetIDs {
		asset, found := byID[id]
		if !found {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown asset id %q — run discovery first", id))
			return
		}
		selected = append(selected, asset)
	}

	run, err := s.Orch.Start(selected, req.TargetWorkspace, creds)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, run.View())
}

// migrationCreds assembles the credential pair captured at run start.
func (s *Server) migrationCreds(w http.ResponseWriter, source models.Source) (remote.MigrationCredentials, bool) {
	fabric, ok := s.Sessions.FabricCreds()
	if !ok {
		writeError(w, http.StatusBadRequest, "no target credentials — connect to Fabric or Synapse first")
		return remote.MigrationCredentials{}, false
	}
	creds := remote.MigrationCredentials{Fabric: fabric}
	switch source {
	case models.SourceSynapse:
		syn, connected := s.Sessions.SynapseCreds()
		if !connected {
			writeError(w, http.StatusBadRequest, "not connected to Synapse")
			return remote.MigrationCredentials{}, false
		}
		creds.Synapse = &syn
	case models.SourceDatabricks:
		dbx, connected := s.Sessions.DatabricksCreds()
		if !connected {
			writeError(w, http.StatusBadRequest, "not connected to Databricks")
			return remote.MigrationCredentials{}, false
		}
		creds.Databricks = &dbx
	}
	return creds, true
}

func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs := s.Runs.List()
	views := make([]models.RunView, 0, len(runs))
	for _, run := range runs {
		views = append(views, run.View())
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	run := s.Runs.Get(chi.URLParam(r, "id"))
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run.View())
}

// RetryRun re-arms only the Failed items of a run.
func (s *Server) RetryRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rearmed, err := s.Orch.RetryFailed(id)
	switch {
	case errors.Is(err, orchestrator.ErrRunNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orchestrator.ErrNothingToRetry):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusAccepted, map[string]interface{}{"rearmed": rearmed})
	}
}

// ExportRunCSV downloads the run report.
func (s *Server) ExportRunCSV(w http.ResponseWriter, r *http.Request) {
	run := s.Runs.Get(chi.URLParam(r, "id"))
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "migration-report-"+run.ID+".csv"))

	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "name", "kind", "source", "target_workspace", "status", "error"})
	for _, item := range run.Items() {
		cw.Write([]string{
			item.ID,
			item.Name,
			string(item.Kind),
			string(item.Source),
			item.TargetWorkspace,
			string(item.Status),
			item.ErrorMessage,
		})
	}
	cw.Flush()
}
