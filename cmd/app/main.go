package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veldra/planforge/internal/catalog"
	"github.com/veldra/planforge/internal/config"
	"github.com/veldra/planforge/internal/planner"
	"github.com/veldra/planforge/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)

	loader := catalog.NewLoader(cfg.SchemaDir)
	plannerService, err := planner.NewService(loader, cfg.DataDir, cfg.PlanCacheSize, cfg.PlanCacheTTL)
	if err != nil {
		slog.Error("Failed to load catalog", "data_dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	info := plannerService.CatalogInfo(context.Background())
	slog.Info("Catalog loaded",
		"items", info.Items,
		"recipes", info.Recipes,
		"machines", info.Machines)

	srv := server.NewServer(cfg.Port, cfg.APIKey, plannerService)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
