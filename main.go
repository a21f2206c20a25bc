// Package main is the entry point for the employee API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"employeeapi/src/app/server"
	"employeeapi/src/core/ports"
	"employeeapi/src/infra/config"
	"employeeapi/src/infra/db"
	"employeeapi/src/infra/logger"
	"employeeapi/src/infra/metrics"
	"employeeapi/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"store", cfg.Store.Kind,
		"log_level", cfg.Log.Level,
	)

	// Metrics registry with runtime collectors
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(reg)

	employees, closeStore, err := openStore(context.Background(), cfg, log, m)
	if err != nil {
		return err
	}
	defer closeStore()

	// Create and run HTTP server
	srv := server.New(cfg, log, server.Deps{
		Employees: employees,
		Registry:  reg,
		Metrics:   m,
	})

	// Run blocks until shutdown signal is received
	return srv.Run()
}

// openStore builds the configured record store and returns its cleanup func.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger, m *metrics.Metrics) (ports.EmployeeRepository, func(), error) {
	storeLog := logger.WithComponent(log, "store")

	if cfg.Store.Kind == config.StoreMemory {
		log.Warn("using in-memory store, records are lost on restart")
		return repo.NewMemoryRepository(storeLog, m), func() {}, nil
	}

	pg, err := db.New(ctx, cfg.Database, storeLog)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
	}

	return repo.NewPostgresRepository(pg.Pool, storeLog, m), pg.Close, nil
}
