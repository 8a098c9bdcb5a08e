package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coccyx/gogen-api/internal/api"
	"github.com/coccyx/gogen-api/internal/auth"
	"github.com/coccyx/gogen-api/internal/config"
	"github.com/coccyx/gogen-api/internal/legacy"
	"github.com/coccyx/gogen-api/internal/logger"
	"github.com/coccyx/gogen-api/internal/service"
	"github.com/coccyx/gogen-api/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the registry API server",
	Long: `Start the registry API server.

Without --config the server uses defaults (table "gogen", bucket
"gogen-configs", GitHub as identity and legacy document provider). A YAML
configuration file can override any of these, including local-development
endpoints for the item and blob stores.`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second
	serverRequestTimeout   = 30 * time.Second // Must cover a full multi-page scan
	serverReadTimeout      = 10 * time.Second
	serverWriteTimeout     = 35 * time.Second // Must be > serverRequestTimeout to let middleware handle timeout
	serverIdleTimeout      = 60 * time.Second
)

func init() {
	serveCmd.Flags().String("address", "", "Address to listen on (overrides config)")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format)")

	if err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address")); err != nil {
		logger.Fatalf("Failed to bind address flag: %v", err)
	}
	if err := viper.BindPFlag("config", serveCmd.Flags().Lookup("config")); err != nil {
		logger.Fatalf("Failed to bind config flag: %v", err)
	}
}

// loadConfig builds the effective configuration from file, defaults, and
// flag/env overrides.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if path := viper.GetString("config"); path != "" {
		loaded, err := config.NewLoader().Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
		logger.Infof("Loaded configuration from %s", path)
	} else {
		cfg = config.Default()
	}

	if address := viper.GetString("address"); address != "" {
		cfg.Address = address
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	logger.Initialize(viper.GetBool("debug"))

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Infof("Starting registry API server on %s (table: %s, bucket: %s)",
		cfg.Address, cfg.Table, cfg.Bucket)

	// Wire the external-store clients. Timeouts and retry bounds are client
	// configuration; the service core never retries.
	awsCfg, err := store.NewAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return fmt.Errorf("failed to configure AWS clients: %w", err)
	}
	items := store.NewDynamoStore(store.NewDynamoClient(awsCfg, cfg.AWS.DynamoEndpoint), cfg.Table)
	blobs := store.NewS3BlobStore(store.NewS3Client(awsCfg, cfg.AWS.S3Endpoint), cfg.Bucket)
	tokens := auth.NewProviderValidator(cfg.IdentityEndpoint)
	docs := legacy.NewGistProvider(cfg.LegacyEndpoint)

	svc, err := service.New(items, blobs, tokens, docs)
	if err != nil {
		return fmt.Errorf("failed to create registry service: %w", err)
	}

	router := api.NewServer(svc,
		api.WithMiddlewares(
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(serverRequestTimeout),
			api.LoggingMiddleware,
		),
	)

	server := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	go func() {
		logger.Infof("Server listening on %s", cfg.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logger.Info("Server shutdown complete")
	return nil
}
