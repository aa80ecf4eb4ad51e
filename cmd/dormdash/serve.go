package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dormdash/campus-eats/internal/catalog"
	"github.com/dormdash/campus-eats/internal/config"
	"github.com/dormdash/campus-eats/internal/db"
	"github.com/dormdash/campus-eats/internal/db/repository"
	"github.com/dormdash/campus-eats/internal/metrics"
	"github.com/dormdash/campus-eats/internal/router"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		deps := router.Dependencies{
			Config:  cfg,
			Metrics: metrics.New(),
		}

		switch cfg.Catalog.Source {
		case "postgres":
			database, err := db.NewPostgres(cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.Migrate(cfg.Database, false); err != nil {
				return err
			}

			repos := repository.NewRepositories(database)
			deps.Catalog = repos.Catalog
			deps.Health = database.HealthCheck
		default:
			deps.Catalog = catalog.NewFixture(time.Now)
		}
		log.Printf("Using %s catalog", cfg.Catalog.Source)

		r, err := router.New(deps)
		if err != nil {
			return err
		}

		server := &http.Server{
			Addr:              cfg.Server.Address,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server starting on %s", cfg.Server.Address)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		// Wait for shutdown signal
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-quit:
		}
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return err
		}

		log.Println("Server exited properly")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
