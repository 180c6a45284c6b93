package main

import (
	"os"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/logger"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/server"
)

// @title ZEVABA-YAN API
// @version 1.0
// @description Social interaction backend: conversations, club boards, publications, moderation and notifications

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
