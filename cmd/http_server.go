package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/activity"
	activitypg "github.com/tracksure/tracksure/internal/activity/postgres"
	"github.com/tracksure/tracksure/internal/assistant"
	assistantpg "github.com/tracksure/tracksure/internal/assistant/postgres"
	"github.com/tracksure/tracksure/internal/auth"
	authpg "github.com/tracksure/tracksure/internal/auth/postgres"
	"github.com/tracksure/tracksure/internal/category"
	categorypg "github.com/tracksure/tracksure/internal/category/postgres"
	"github.com/tracksure/tracksure/internal/core/events"
	"github.com/tracksure/tracksure/internal/dashboard"
	dashboardpg "github.com/tracksure/tracksure/internal/dashboard/postgres"
	"github.com/tracksure/tracksure/internal/document"
	documentpg "github.com/tracksure/tracksure/internal/document/postgres"
	"github.com/tracksure/tracksure/internal/notification"
	notificationpg "github.com/tracksure/tracksure/internal/notification/postgres"
	"github.com/tracksure/tracksure/internal/product"
	productpg "github.com/tracksure/tracksure/internal/product/postgres"
	"github.com/tracksure/tracksure/internal/qrcode"
	qrcodepg "github.com/tracksure/tracksure/internal/qrcode/postgres"
	"github.com/tracksure/tracksure/internal/realtime"
	"github.com/tracksure/tracksure/internal/status"
	statuspg "github.com/tracksure/tracksure/internal/status/postgres"
	"github.com/tracksure/tracksure/internal/tenant"
	tenantpg "github.com/tracksure/tracksure/internal/tenant/postgres"
	"github.com/tracksure/tracksure/internal/transport/rest"
	"github.com/tracksure/tracksure/internal/upload"
	"github.com/tracksure/tracksure/internal/user"
	userpg "github.com/tracksure/tracksure/internal/user/postgres"
	"github.com/tracksure/tracksure/pkg/logger"
	"github.com/tracksure/tracksure/pkg/storage"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Registry *realtime.Registry
	Model    *assistant.GeminiModel
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.Registry.Stop()
		if deps.Model != nil {
			if err := deps.Model.Close(); err != nil {
				deps.Logger.Error("Model close error", "error", err)
			}
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm rides on the already-pooled pgx connection.
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	ctx := context.Background()

	storageClient, err := storage.New(ctx, config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	bus := events.NewEventBus(log)

	// Auth and the tenant-scope guard everything else hangs off.
	authRepo := authpg.NewAuthRepository(gdb)
	tokens := auth.NewTokenGenerator(config.Security.JWTSecret, config.Security.TokenDuration)
	authService := auth.NewService(authRepo, tokens, config.Security.BCryptCost, log)
	guard := auth.NewGuard(authRepo, log)
	authHandler := auth.NewHandler(authService)

	tenantService := tenant.NewService(tenantpg.NewTenantRepository(gdb), guard, log)
	userService := user.NewService(userpg.NewUserRepository(gdb), guard, config.Security.BCryptCost, log)
	categoryService := category.NewService(categorypg.NewCategoryRepository(gdb), guard, log)
	statusService := status.NewService(statuspg.NewStatusRepository(gdb), guard, log)
	productService := product.NewService(productpg.NewProductRepository(gdb), guard, bus, log)
	documentService := document.NewService(documentpg.NewDocumentRepository(gdb), guard, log)
	qrcodeService := qrcode.NewService(qrcodepg.NewQRCodeRepository(gdb), guard, tenantService,
		storageClient, config.Frontend.BaseURL, log)

	registry := realtime.NewRegistry(config.Realtime.HeartbeatInterval, log)
	registry.Start()

	notificationService := notification.NewService(notificationpg.NewNotificationRepository(gdb), registry, log)
	notification.RegisterEventHandlers(bus, notificationService, log)

	activityRepo := activitypg.NewActivityRepository(gdb)
	activity.RegisterEventHandlers(bus, activityRepo, log)
	activityService := activity.NewService(activityRepo, guard, log)

	dashboardService := dashboard.NewService(dashboardpg.NewDashboardRepository(gdb), guard, log)

	model, err := assistant.NewGeminiModel(ctx, config.Assistant.APIKey, config.Assistant.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize assistant model: %w", err)
	}
	tools := assistant.BuildTools(productService, categoryService, statusService, notificationService)
	assistantService := assistant.NewService(assistantpg.NewChatRepository(gdb), model, tools, log)

	uploadService := upload.NewService(storageClient, log)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, rest.Handlers{
		Auth:         authHandler,
		Tenant:       tenant.NewHandler(tenantService),
		User:         user.NewHandler(userService),
		Category:     category.NewHandler(categoryService),
		Status:       status.NewHandler(statusService),
		Product:      product.NewHandler(productService),
		Document:     document.NewHandler(documentService),
		QRCode:       qrcode.NewHandler(qrcodeService, authService),
		Notification: notification.NewHandler(notificationService),
		Realtime:     realtime.NewHandler(registry, authService, notificationService),
		Dashboard:    dashboard.NewHandler(dashboardService),
		Assistant:    assistant.NewHandler(assistantService),
		Upload:       upload.NewHandler(uploadService),
		Activity:     activity.NewHandler(activityService),
	}, config.Server.AllowedOrigins, log)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Router:   router,
		Registry: registry,
		Model:    model,
		Logger:   log,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
