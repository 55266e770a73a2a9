package container

import (
	"devimpact/internal/config"
	"devimpact/internal/handler"
	"devimpact/internal/repository"
	"devimpact/internal/service"
	"devimpact/internal/service/auth"
	"devimpact/internal/teamform"
	"devimpact/pkg/database"
	"devimpact/pkg/logger"
	"devimpact/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           *database.PostgresDB
	RedisClient  *redis.Client
	Repositories *repository.Repositories
	Services     *service.Services
	Scorer       *teamform.Scorer
}

// New creates a new dependency injection container. db may be nil in tests
// that never reach the repositories.
func New(cfg *config.Config, log *logger.Logger, db *database.PostgresDB) (*Container, error) {
	// Initialize Redis client if Redis URL is configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	repos := &repository.Repositories{
		Registration: repository.NewRegistrationRepository(db),
	}

	scorer := teamform.NewScorer(teamform.WithConfig(cfg.Scoring))

	supabase := service.NewSupabaseClient(cfg, log.Named("supabase"))
	notifier := service.NewNotificationService(supabase, cfg.EmailFunction, cfg.EmailEnabled, log.Named("notify"))
	if !cfg.EmailEnabled {
		log.Info("Status emails disabled")
	}
	cache := service.NewCacheService(redisClient, log.Named("cache").Logger)

	services := &service.Services{
		Auth:         auth.NewService(cfg.SupabaseJWTSecret, cfg.AdminEmails, log.Named("auth")),
		Registration: service.NewRegistrationService(repos.Registration, notifier, cache, scorer.MaxTeamSize(), log.Named("registration")),
		Team:         service.NewTeamService(repos.Registration, scorer, notifier, cache, log.Named("team")),
		Notifier:     notifier,
		Cache:        cache,
	}

	return &Container{
		Config:       cfg,
		Logger:       log,
		DB:           db,
		RedisClient:  redisClient,
		Repositories: repos,
		Services:     services,
		Scorer:       scorer,
	}, nil
}

// GetAuthService returns the auth service
func (c *Container) GetAuthService() service.AuthService {
	return c.Services.Auth
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// HealthChecks returns the dependency probes served on /health. The database
// is critical, the cache only degrades the service.
func (c *Container) HealthChecks() []handler.HealthCheck {
	var checks []handler.HealthCheck
	if c.DB != nil {
		checks = append(checks, handler.HealthCheck{Name: "database", Critical: true, Check: c.DB.Health})
	}
	if c.HasRedis() {
		checks = append(checks, handler.HealthCheck{Name: "cache", Check: c.Services.Cache.HealthCheck})
	}
	return checks
}

// Drain waits for in-flight status emails
func (c *Container) Drain() {
	c.Services.Notifier.Wait()
}

