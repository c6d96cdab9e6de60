package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/orchestrator"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/remote"
)

// Server holds shared state for all API handlers.
type Server struct {
	Sessions *models.SessionStore
	Runs     *models.RunStore
	Remote   *remote.Client
	Orch     *orchestrator.Orchestrator
	Resolver *orchestrator.Resolver
	Log      *zap.SugaredLogger
}

// NewRouter builds the chi router with all API routes.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Route("/api", func(r chi.Router) {
		// Source/target connections
		r.Post("/connect/synapse", s.ConnectSynapse)
		r.Post("/connect/databricks", s.ConnectDatabricks)
		r.Post("/connect/fabric", s.ConnectFabric)

		// Session
		r.Get("/session", s.GetSession)
		r.Post("/session/profile", s.SetProfile)
		r.Delete("/session", s.Logout)

		// Discovered inventories
		r.Get("/assets/synapse", s.ListSynapseAssets)
		r.Get("/assets/databricks", s.ListDatabricksAssets)
		r.Get("/assets/fabric", s.ListFabricInventory)

		// Target workspaces and capacities
		r.Get("/workspaces", s.ListWorkspaces)
		r.Get("/workspaces/check-name", s.CheckWorkspaceName)
		r.Post("/workspaces", s.CreateWorkspace)
		r.Get("/capacities", s.ListCapacities)

		// Migration runs
		r.Post("/runs", s.StartRun)
		r.Get("/runs", s.ListRuns)
		r.Get("/runs/{id}", s.GetRun)
		r.Post("/runs/{id}/retry", s.RetryRun)
		r.Get("/runs/{id}/report.csv", s.ExportRunCSV)
	})

	// WebSocket (outside /api to avoid JSON content-type assumptions)
	r.Get("/ws/runs/{id}/events", s.StreamRunEvents)

	return r
}
