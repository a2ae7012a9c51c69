package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	paymentUseCase "github.com/guineapay/djomy-bridge/internal/domain/usecase/payment"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	"github.com/guineapay/djomy-bridge/internal/domain/port/gateway"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/api/handler"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/api/routes"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/cache"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/database"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/djomy"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/logger"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/repository"
	timeProvider "github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/time"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	// Setup database configuration
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database and bring the schema up to date
	conn, err := database.NewConnection(dbConfig)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer conn.Close()

	if err := conn.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Webhook event dedup store
	eventStore := cache.NewRedisEventStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer eventStore.Close()

	if err := eventStore.Ping(context.Background()); err != nil {
		appLogger.Error("Failed to connect to redis", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories
	transactionRepo := repository.NewTransactionRepository(conn.DB, tp, appLogger)

	// Djomy provider adapter
	providerCfg := entity.NewProviderConfig(
		cfg.Djomy.ClientID,
		cfg.Djomy.ClientSecret,
		cfg.Djomy.PartnerDomain,
		cfg.Djomy.Environment,
	)
	providerCfg.APIBaseURL = cfg.Djomy.BaseURL
	djomyClient := djomy.NewClient(providerCfg, cfg.Djomy.HTTPTimeout, appLogger)
	djomyGateway := djomy.NewGateway(providerCfg, djomyClient)

	registry := gateway.NewRegistry()
	registry.Register(djomyGateway)

	// Callback URLs the provider sends the payer back to
	publicBase := strings.TrimSuffix(cfg.Server.PublicBaseURL, "/")
	urls := paymentUseCase.CallbackURLs{
		ReturnURL: publicBase + routes.ReturnPath,
		CancelURL: publicBase + routes.CancelPath,
	}

	// Initialize use cases
	paymentService := paymentUseCase.NewService(transactionRepo, registry, eventStore, tp, appLogger, urls)

	// Initialize API handlers
	paymentHandler := handler.NewPaymentHandler(paymentService, publicBase+"/payment/status", appLogger)
	posHandler := handler.NewPosHandler(paymentService, appLogger)
	transactionHandler := handler.NewTransactionHandler(paymentService, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, paymentHandler, posHandler, transactionHandler)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.PublicBaseURL == "" {
		missingConfigs = append(missingConfigs, "server.publicBaseUrl")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host")
	}

	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username")
	}

	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database")
	}

	if cfg.Redis.Addr == "" {
		missingConfigs = append(missingConfigs, "redis.addr")
	}

	if cfg.Djomy.ClientID == "" {
		missingConfigs = append(missingConfigs, "djomy.clientId (or DJB_DJOMY_CLIENT_ID environment variable)")
	}

	if cfg.Djomy.ClientSecret == "" {
		missingConfigs = append(missingConfigs, "djomy.clientSecret (or DJB_DJOMY_CLIENT_SECRET environment variable)")
	}

	if cfg.Djomy.HTTPTimeout == 0 {
		missingConfigs = append(missingConfigs, "djomy.httpTimeout")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// Production deployments must talk to the live provider with a partner domain
	if cfg.Environment == config.Production {
		var warnings []string

		if cfg.Djomy.Environment != entity.EnvProduction {
			warnings = append(warnings, "djomy.environment is not 'production'; payments will hit the sandbox")
		}

		if cfg.Djomy.PartnerDomain == "" {
			warnings = append(warnings, "djomy.partnerDomain is empty; the provider may reject API calls")
		}

		if strings.ToLower(cfg.Database.SSLMode) == "disable" {
			warnings = append(warnings, "database.sslMode should not be 'disable' in production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential issues in production configuration: %v", warnings)
		}
	}

	return nil
}
