package main

import (
	"fmt"

	"github.com/phrazzld/todos-api/internal/config"
)

// loadAppConfig loads the application configuration from environment
// variables or config file. Returns the loaded config and any loading
// error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}
