package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visit-analytics/internal/app"
	"visit-analytics/internal/shared/configs"

	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP ingestion and query service",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		cfg, err := configs.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Initialize application
		application, err := app.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Start server in goroutine
		serverErr := make(chan error, 1)
		go func() {
			if err := application.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		fmt.Println("Server started")

		// Wait for interrupt signal
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case <-quit:
		case err := <-serverErr:
			return fmt.Errorf("server failed: %w", err)
		}

		// Graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := application.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "./configs/configs.yml", "config file (YAML)")
	rootCmd.AddCommand(serveCmd)
}
