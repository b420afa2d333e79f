// Package main implements the entry point for the users API server, which
// exposes user CRUD endpoints backed by operations on the remote query
// service.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/lola-users/internal/config"
)

func main() {
	cfg, logger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// initializeApp loads configuration and sets up logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := loadAppConfig()
	if err != nil {
		return nil, nil, err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"log_format", cfg.Server.LogFormat)
	logger.Debug("Query service configuration",
		"base_url", cfg.Query.BaseURL,
		"api_key_present", cfg.Query.APIKey != "",
		"timeout_seconds", cfg.Query.TimeoutSeconds)

	return cfg, logger, nil
}

// startupMessage is printed once the listener is bound.
func startupMessage(port int) string {
	return fmt.Sprintf("Server started at http://localhost:%d", port)
}
