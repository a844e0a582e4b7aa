package container

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/ndemidov/tgdating-backend/internal/config"
	httpdelivery "github.com/ndemidov/tgdating-backend/internal/delivery/http"
	"github.com/ndemidov/tgdating-backend/internal/delivery/http/handler"
	"github.com/ndemidov/tgdating-backend/internal/delivery/http/middleware"
	"github.com/ndemidov/tgdating-backend/internal/infrastructure/database"
	"github.com/ndemidov/tgdating-backend/internal/infrastructure/server"
	"github.com/ndemidov/tgdating-backend/internal/pkg/logger"
	"github.com/ndemidov/tgdating-backend/internal/repository/postgres"
	"github.com/ndemidov/tgdating-backend/internal/repository/redisrepo"
	"github.com/ndemidov/tgdating-backend/internal/usecase/auth"
	"github.com/ndemidov/tgdating-backend/internal/usecase/feed"
	"github.com/ndemidov/tgdating-backend/internal/usecase/onboarding"
	"github.com/ndemidov/tgdating-backend/internal/usecase/profile"
	"github.com/ndemidov/tgdating-backend/internal/usecase/swipe"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *logger.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log, err := logger.New(cfg.Server.Env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	decisionRepo := postgres.NewDecisionRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	sessionRepo := redisrepo.NewSessionRepository(redisClient, cfg.Onboarding.SessionTTL)
	txManager := postgres.NewTxManager(db)

	// Use cases
	authUseCase := auth.NewTelegramAuthUseCase(
		profileRepo,
		cfg.Telegram.BotToken,
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiryMin)*time.Minute,
		cfg.Telegram.MaxAuthAge,
		log,
	)
	onboardingUseCase := onboarding.NewOnboardingUseCase(
		sessionRepo,
		profileRepo,
		onboarding.Options{
			PhotoRequired: cfg.Onboarding.PhotoRequired,
			SkipToken:     cfg.Onboarding.PhotoSkipToken,
		},
		log,
	)
	profileUseCase := profile.NewProfileUseCase(profileRepo)
	feedUseCase := feed.NewFeedUseCase(profileRepo, decisionRepo, log)
	swipeUseCase := swipe.NewSwipeUseCase(decisionRepo, matchRepo, profileRepo, txManager, feedUseCase, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	onboardingHandler := handler.NewOnboardingHandler(onboardingUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	feedHandler := handler.NewFeedHandler(feedUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase)

	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	router := httpdelivery.NewRouter(
		authHandler,
		onboardingHandler,
		profileHandler,
		feedHandler,
		swipeHandler,
		authMiddleware,
	)

	srv := server.NewServer(&cfg.Server, router.Setup(), log)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Error("failed to close redis", "error", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	if c.Log != nil {
		c.Log.Sync()
	}

	return nil
}
