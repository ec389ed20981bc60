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

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/showcase/internal/catalog"
	"github.com/Zachkp/showcase/internal/clock"
	"github.com/Zachkp/showcase/internal/config"
	"github.com/Zachkp/showcase/internal/metrics"
	"github.com/Zachkp/showcase/internal/session"
	"github.com/Zachkp/showcase/internal/web"
)

var configDir string

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd := &cobra.Command{
		Use:   "showcase",
		Short: "Portfolio site with auto-advancing carousels",
		RunE:  serve,
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding showcase.yaml")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the site",
		RunE:  serve,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Write the built-in slide decks into the catalog",
		RunE:  seed,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Store, error) {
	store, err := catalog.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func seed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}

	store, err := openCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Seed(cmd.Context(), catalog.Builtin())
}

func serve(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.Decks(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		log.Println("Catalog is empty, seeding built-in decks")
		if err := store.Seed(ctx, catalog.Builtin()); err != nil {
			return err
		}
	}

	metrics.Register()

	hub := session.NewHub(store, clock.Real(), session.Config{
		TTL:      cfg.MountTTL,
		Interval: cfg.CarouselInterval,
	})
	defer hub.Close()
	go hub.Run(ctx, cfg.SweepInterval)

	srv := web.New(hub, store, web.Options{
		AdminUsername:  cfg.AdminUsername,
		AdminPassword:  cfg.AdminPassword,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}
	return nil
}
