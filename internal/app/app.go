// Package app assembles the storefront service from its configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"vitrine/internal/config"
	"vitrine/internal/handlers"
	"vitrine/internal/middleware"
	"vitrine/internal/models"
	"vitrine/internal/repositories"
	"vitrine/internal/services"
	"vitrine/internal/storage"
	"vitrine/internal/store"
	"vitrine/pkg/gemini"
	"vitrine/pkg/rabbitmq"

	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Deps are the external services the application talks to. Nil fields are
// treated as not configured.
type Deps struct {
	Store     store.Client
	Uploader  storage.Uploader
	Generator services.TextGenerator
	Broker    *rabbitmq.Client
}

// App is the assembled service.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	deps   Deps
	repos  repositories.Set

	Fiber *fiber.App
	Sync  *services.Synchronizer
	Auth  *services.AuthService

	closers []func() error
}

// New opens every configured dependency and builds the App.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	var deps Deps
	var closers []func() error

	client, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	deps.Store = client
	if closeStore != nil {
		closers = append(closers, closeStore)
	}

	if cfg.DriveEnabled() {
		uploader, err := storage.NewDriveUploader(ctx, cfg.DriveCredentialsFile, cfg.DriveFolderID, logger)
		if err != nil {
			return nil, err
		}
		deps.Uploader = uploader
	}

	if gen := gemini.NewClient(gemini.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}); gen != nil {
		deps.Generator = gen
	} else {
		logger.Warn("GEMINI_API_KEY is not set; description generation is disabled")
	}

	if cfg.RabbitMQURL != "" {
		broker, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, InstanceID: cfg.InstanceID}, logger)
		if err != nil {
			return nil, err
		}
		deps.Broker = broker
		closers = append(closers, broker.Close)
	}

	a, err := Build(cfg, deps, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closers...)
	return a, nil
}

// Build wires the services and HTTP routes on top of deps.
func Build(cfg *config.Config, deps Deps, logger *zap.Logger) (*App, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("a store client is required")
	}
	if deps.Uploader == nil {
		deps.Uploader = storage.Unprovisioned{}
	}
	if cfg.InstanceID == "" {
		cfg.InstanceID = fmt.Sprintf("vitrine-%d", time.Now().UnixNano())
	}

	node, err := snowflake.NewNode(time.Now().UnixNano() % 1024)
	if err != nil {
		return nil, fmt.Errorf("failed to create id node: %w", err)
	}
	repos := repositories.NewStoreSet(deps.Store, node)

	var publisher services.ChangePublisher
	if deps.Broker != nil {
		publisher = deps.Broker
	}
	sync := services.NewSynchronizer(services.NewLoader(repos, logger), repos, publisher, logger)

	credentials := services.StaticCredentials{Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash}
	if credentials.Username == "" || credentials.PasswordHash == "" {
		logger.Warn("ADMIN_USERNAME or ADMIN_PASSWORD_HASH is not set; admin login is disabled")
	}
	auth := services.NewAuthService(credentials, cfg.JWTSecret, logger)

	a := &App{
		cfg:    cfg,
		logger: logger,
		deps:   deps,
		repos:  repos,
		Sync:   sync,
		Auth:   auth,
	}
	a.Fiber = a.routes()
	return a, nil
}

func (a *App) routes() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "vitrine",
		BodyLimit:   10 * 1024 * 1024,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	admin := services.NewAdminService(a.Sync)
	describer := services.NewDescriber(a.deps.Generator, a.logger)
	tenants := services.NewTenantService(repositories.NewStoreClientConfigRepository(a.deps.Store))

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(a.Auth, a.logger).RegisterRoutes(apiV1)
	handlers.NewStorefrontHandler(a.Sync).RegisterRoutes(apiV1)
	handlers.NewTenantHandler(tenants, a.logger).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(a.Auth, a.logger))
	handlers.NewAdminHandler(admin, a.Sync, describer, a.deps.Uploader, a.logger).RegisterRoutes(protected)

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		code := fiber.StatusOK
		if !a.Sync.Loaded() {
			status = "loading"
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"instance": a.cfg.InstanceID,
		})
	})
	return app
}

// Start seeds demo data when configured, loads the first snapshot and
// subscribes to change events from other instances.
func (a *App) Start(ctx context.Context) error {
	if a.cfg.SeedDemoData {
		if err := SeedDemoData(ctx, a.repos, a.logger); err != nil {
			return err
		}
	}
	if err := a.Sync.Reload(ctx); err != nil {
		return err
	}
	if a.deps.Broker != nil {
		err := a.deps.Broker.ConsumeChanges(func(event models.ChangeEvent) error {
			a.logger.Info("Reloading after remote change",
				zap.String("entity", event.Entity), zap.String("action", event.Action), zap.String("origin", event.Origin))
			return a.Sync.Reload(context.Background())
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Listen serves HTTP on the configured port until Shutdown.
func (a *App) Listen() error {
	a.logger.Info("Starting server", zap.String("port", a.cfg.AppPort))
	return a.Fiber.Listen(a.cfg.AppPort)
}

// Shutdown stops the HTTP server and closes every dependency.
func (a *App) Shutdown() error {
	err := a.Fiber.Shutdown()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if cerr := a.closers[i](); cerr != nil {
			a.logger.Error("Error closing dependency", zap.Error(cerr))
		}
	}
	return err
}

func openStore(cfg *config.Config) (store.Client, func() error, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverMemory:
		return store.NewMemoryClient(), nil, nil
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	client := store.NewGORMClient(db)
	if err := client.Migrate(); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	return client, sqlDB.Close, nil
}
