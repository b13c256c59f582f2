package main

import (
	"context"
	"flag"
	"os"

	"github.com/devkale/coursehub/docs"
	"github.com/devkale/coursehub/internal/bootstrap"
	"github.com/devkale/coursehub/internal/pkg/logger"
	"github.com/devkale/coursehub/internal/server"
)

// @title CourseHub API
// @version 1.0
// @description Course scheduling and instructor assignment service
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port

	ctx := context.Background()

	database, err := bootstrap.SetupDatabase(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to set up database")
		os.Exit(1)
	}
	defer database.Close()

	deps, err := bootstrap.BuildDependencies(ctx, cfg, database)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build dependencies")
		os.Exit(1)
	}

	router := bootstrap.SetupRouter(deps)

	srv := server.New(cfg.Server.Port, router)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server error")
		os.Exit(1)
	}
}
