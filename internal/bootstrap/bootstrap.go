package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/hakunamatata40/ZEVABA-YAN/internal/app/controllers"
	appMigrations "github.com/hakunamatata40/ZEVABA-YAN/internal/app/migrations"
	appRepos "github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories/memory"
	appRoutes "github.com/hakunamatata40/ZEVABA-YAN/internal/app/routes"
	appServices "github.com/hakunamatata40/ZEVABA-YAN/internal/app/services"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/config"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/db"
	appMiddleware "github.com/hakunamatata40/ZEVABA-YAN/internal/middleware"
	pkgAuth "github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/auth"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/events"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/logger"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/ratelimit"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/websocket"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store          appRepos.Store
	Database       *db.PostgresDB // nil with the memory driver
	Redis          *redis.Client  // nil when rate limiting is disabled
	NATS           *events.NATSPublisher
	Hub            *websocket.Hub
	JWTService     *pkgAuth.JWTService
	Services       *appServices.Services
	Limiter        *ratelimit.Limiter
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Format: logger.Format(strings.ToLower(cfg.Logging.Format)),
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured store. For postgres it connects, pings and
// applies the embedded migrations when enabled.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (appRepos.Store, *db.PostgresDB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using the in-memory store; data is lost on restart")
		return memory.NewStore(memory.WithLogger(logger.Component("store"))), nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if cfg.Database.MigrationsEnabled {
		lgr.Info().Msg("Running database migrations...")
		migrator := appMigrations.NewMigrator(cfg.GetPostgresConnectionString(), logger.Component("migrations"))
		if err := migrator.Up(); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			database.Close()
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
	}

	return appRepos.NewPostgresStore(database, logger.Component("store")), database, nil
}

// BuildDependencies initializes infrastructure clients, services and controllers.
func BuildDependencies(cfg *config.Config, store appRepos.Store, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: store, Database: database, Logger: lgr}

	if cfg.Redis.Enabled {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := deps.Redis.Ping(ctx).Err()
		cancel()
		if err != nil {
			// The limiter fails open, so an unreachable Redis only loses limiting
			lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis ping failed")
		} else {
			lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
		}
	}
	deps.Limiter = ratelimit.NewLimiter(deps.Redis, logger.Component("ratelimit"))

	var publisher appServices.EventPublisher = events.NoopPublisher{}
	if cfg.NATS.Enabled {
		natsPublisher, err := events.NewNATSPublisher(events.Config{URL: cfg.NATS.URL, Name: cfg.NATS.Name}, logger.Component("nats"))
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		deps.NATS = natsPublisher
		publisher = natsPublisher
	}

	deps.Hub = websocket.NewHub(logger.Component("websocket"))
	go deps.Hub.Run()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(appServices.Dependencies{
		Store:     store,
		Pusher:    deps.Hub,
		Publisher: publisher,
		Logger:    lgr,
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, store.Repos().UserRepository)

	deps.Controllers = appRoutes.Controllers{
		Conversation: appControllers.NewConversationController(deps.Services.Conversation, deps.Services.Thread),
		Message:      appControllers.NewMessageController(deps.Services.Messaging, deps.Services.Thread),
		Publication:  appControllers.NewPublicationController(deps.Services.Engagement),
		User:         appControllers.NewUserController(deps.Services.Moderation, deps.Services.Social),
		Club:         appControllers.NewClubController(deps.Services.Club, deps.Services.Social),
		Notification: appControllers.NewNotificationController(deps.Services.Notification),
		WebSocket:    websocket.NewHandler(deps.Hub, logger.Component("websocket")),
	}

	return deps, nil
}

// SeedDefaultData creates the demo data and logs dev tokens for the new accounts
func SeedDefaultData(ctx context.Context, deps *Dependencies) {
	users, err := seed.CreateDefaultData(ctx, deps.Store, deps.Logger)
	if err != nil {
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		return
	}
	seed.LogDevTokens(deps.JWTService, users, deps.Logger)
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(cors.Default(), appMiddleware.RequestLogger(lgr), gin.Recovery())
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	appRoutes.SetupRouter(router,
		deps.Controllers,
		deps.AuthMiddleware,
		appRoutes.RateLimits{
			Limiter: deps.Limiter,
			Message: ratelimit.NewRule(ratelimit.KeyMessage, cfg.RateLimit.MessageLimit, config.Duration(cfg.RateLimit.MessageWindow, time.Minute)),
			Report:  ratelimit.NewRule(ratelimit.KeyReport, cfg.RateLimit.ReportLimit, config.Duration(cfg.RateLimit.ReportWindow, time.Hour)),
		},
		appRoutes.Options{
			MetricsEnabled: cfg.Metrics.Enabled,
			MetricsPath:    cfg.Metrics.Path,
		},
	)

	return router
}

// Close releases the infrastructure clients in reverse order of creation
func (d *Dependencies) Close() {
	if d.Hub != nil {
		d.Hub.Stop()
	}
	if d.NATS != nil {
		d.NATS.Close()
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
	if d.Database != nil {
		d.Logger.Info().Msg("Closing database connection pool...")
		d.Database.Close()
	}
}
