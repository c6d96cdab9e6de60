package api

import (
	"net/http"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
)

func (s *Server) ListSynapseAssets(w http.ResponseWriter, r *http.Request) {
	assets := s.Sessions.Assets(models.SourceSynapse)
	if assets == nil {
		assets = []models.Asset{}
	}
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) ListDatabricksAssets(w http.ResponseWriter, r *http.Request) {
	assets := s.Sessions.Assets(models.SourceDatabricks)
	if assets == nil {
		assets = []models.Asset{}
	}
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) ListFabricInventory(w http.ResponseWriter, r *http.Request) {
	items := s.Sessions.FabricInventory()
	if items == nil {
		items = []models.FabricItem{}
	}
	writeJSON(w, http.StatusOK, items)
}
