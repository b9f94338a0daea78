package app

import (
	"context"
	"fmt"

	"github.com/storyarchive/content-api/config"
	"github.com/storyarchive/content-api/middleware"
	"github.com/storyarchive/content-api/repositories"
	"github.com/storyarchive/content-api/repositories/postgres"
	"github.com/storyarchive/content-api/services/auth"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users    repositories.UserRepository
	Contents repositories.ContentRepository

	// Auth
	AuthService    *auth.Service
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initRepositories()
	deps.initAuth(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL connection and schema
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	if err := factory.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Users = repos.Users
	d.Contents = repos.Contents

	d.Logger.Info("repositories initialized")
}

// initAuth wires the token manager, auth service, and auth middleware. The
// signing secret is read once here and never changes afterwards.
func (d *Dependencies) initAuth(cfg *config.Config) {
	tokens := auth.NewTokenManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	d.AuthService = auth.NewService(d.Users, tokens, cfg.Auth.BcryptCost, d.Logger)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.AuthService, d.Logger)
	d.Logger.Info("auth service initialized",
		zap.Duration("token_ttl", cfg.Auth.TokenTTL),
		zap.Int("bcrypt_cost", cfg.Auth.BcryptCost))
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
