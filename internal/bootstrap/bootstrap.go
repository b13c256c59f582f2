// Package bootstrap assembles the application: configuration, logging,
// database, dependency wiring and the HTTP router.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devkale/coursehub/internal/app/controllers"
	"github.com/devkale/coursehub/internal/app/migrations"
	"github.com/devkale/coursehub/internal/app/repositories"
	"github.com/devkale/coursehub/internal/app/routes"
	"github.com/devkale/coursehub/internal/app/services"
	"github.com/devkale/coursehub/internal/config"
	"github.com/devkale/coursehub/internal/db"
	"github.com/devkale/coursehub/internal/middleware"
	"github.com/devkale/coursehub/internal/pkg/auth"
	"github.com/devkale/coursehub/internal/pkg/filestorage"
	"github.com/devkale/coursehub/internal/pkg/helpers"
	"github.com/devkale/coursehub/internal/pkg/logger"
	"github.com/devkale/coursehub/internal/seed"
)

// Dependencies holds everything the server needs at runtime.
type Dependencies struct {
	Config      *config.Config
	DB          *db.PostgresDB
	JWTService  *auth.JWTService
	Services    *services.Services
	Controllers *controllers.Controllers
}

// LoadConfigAndSetupLogger loads configuration and configures the global
// logger from it.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "pretty",
	})

	logger.Info().Str("mode", cfg.Server.Mode).Msg("Configuration loaded")
	return cfg, nil
}

// SetupDatabase connects to PostgreSQL and applies pending migrations.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return database, nil
}

// BuildDependencies wires repositories, services and controllers, and seeds
// demo data when enabled.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, "/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	repos := repositories.NewRepositories(database.Pool)
	svcs := services.NewServices(repos, jwtService, fileStorage)
	ctrls := controllers.NewControllers(svcs)

	if cfg.Seed.Enabled {
		if err := seed.Run(ctx, repos); err != nil {
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	return &Dependencies{
		Config:      cfg,
		DB:          database,
		JWTService:  jwtService,
		Services:    svcs,
		Controllers: ctrls,
	}, nil
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(deps *Dependencies) *gin.Engine {
	if deps.Config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	routes.RegisterRoutes(router, deps.Controllers, deps.JWTService, deps.Config.Server.StoragePath)

	return router
}
