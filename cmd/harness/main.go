package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file if present
	"github.com/rxtech-lab/contract-harness/internal/api"
	"github.com/rxtech-lab/contract-harness/internal/config"
	"github.com/rxtech-lab/contract-harness/internal/logger"
	"github.com/rxtech-lab/contract-harness/internal/server"
	"github.com/rxtech-lab/contract-harness/internal/services"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Build information (set via ldflags)
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "harness",
		Short:        "HTTP test harness for deploying and driving contracts on a development chain",
		Version:      fmt.Sprintf("%s (commit %s, built %s)", Version, CommitHash, BuildTime),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	log, err := logger.New(logger.Config{Debug: cfg.Debug, Level: level})
	if err != nil {
		return fmt.Errorf("can't initialize logger: %w", err)
	}
	defer log.Sync()

	hookService := services.NewHookService()
	if err := server.RegisterHooks(hookService, server.InitializeHooks(log)...); err != nil {
		return err
	}

	chainService, artifacts, client, err := server.InitializeServices(ctx, cfg, hookService, log)
	if err != nil {
		log.Error("failed to initialize services", "error", err)
		return err
	}
	defer client.Close()

	apiServer := api.NewAPIServer(chainService, artifacts, log)
	port, err := apiServer.Start(cfg.Address())
	if err != nil {
		log.Error("failed to start API server", "error", err)
		return err
	}
	log.Info("API server started", "host", cfg.Host, "port", port, "version", Version)

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info("shutting down server")
	if err := apiServer.Shutdown(); err != nil {
		log.Error("error shutting down API server", "error", err)
		return err
	}

	log.Info("server shut down successfully")
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
