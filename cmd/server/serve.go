package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tmacphee13/simplelife/internal/config"
	"github.com/Tmacphee13/simplelife/internal/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	envFile  string
	rootDir  string
	logLevel string
)

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "File of environment variables to load before reading PORT")
	rootCmd.Flags().StringVar(&rootDir, "root", "", "Directory to serve (overrides STATIC_ROOT)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
}

// resolveConfig loads the .env file and the environment, then applies any
// flags set on cmd.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnv(envFile); err != nil {
		return nil, err
	}
	cfg := config.Load()

	if cmd.Flags().Changed("root") {
		cfg.Root = rootDir
	}
	if cmd.Flags().Changed("log-level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := cfg.Validate(); err != nil {
		slog.Warn("static root is incomplete", "root", cfg.Root, "error", err)
	}

	srv := server.New(cfg.Root, slog.Default())
	if err := srv.Listen(cfg.Addr()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve()
	}()

	select {
	case <-ctx.Done():
		slog.Info("received signal, shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
