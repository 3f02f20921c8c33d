// Package main implements the entry point for the todos API server,
// which stores users' todo lists and serves them over a versioned REST
// interface with JWT bearer authentication.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
)

// main is the entry point for the todos-api server. It is responsible
// for initializing configuration, setting up logging, establishing the
// database connection, injecting dependencies, and starting the HTTP
// server. With a -migrate command it runs that migration operation and
// exits instead.
func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status) and exit")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run wires the application together and hands control to the server
// loop. Split from main so the exit path stays in one place.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	logger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, migrateCmd)
	}

	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	app, err := newApplication(cfg, logger, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
