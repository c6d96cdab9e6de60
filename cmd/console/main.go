package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/api"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/config"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/models"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/orchestrator"
	"github.com/Revanth-Nannaveni/Synapse-to-Fabric/internal/remote"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-v" {
			fmt.Printf("console %s (commit: %s, built: %s)\n", version, commit, date)
			os.Exit(0)
		}
	}

	cfg := config.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	client := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.DatabricksBaseURL, cfg.Remote.Keys, time.Duration(cfg.Remote.RequestTimeout))
	runs := models.NewRunStore()
	sessions := models.NewSessionStore()

	server := &api.Server{
		Sessions: sessions,
		Runs:     runs,
		Remote:   client,
		Orch: orchestrator.New(client, runs,
			orchestrator.ExistingAssetPolicy(cfg.Migration.ExistingAssetPolicy), log),
		Resolver: orchestrator.NewResolver(client),
		Log:      log,
	}

	log.Infow("migration console starting",
		"version", version,
		"listen", cfg.Listen,
		"existing_asset_policy", cfg.Migration.ExistingAssetPolicy)

	if err := http.ListenAndServe(cfg.Listen, api.NewRouter(server)); err != nil {
		log.Fatalw("server exited", "error", err)
	}
}
