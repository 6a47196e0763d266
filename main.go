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

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"menu-api/internal/auth"
	"menu-api/internal/cache"
	"menu-api/internal/config"
	"menu-api/internal/database"
	"menu-api/internal/handlers"
	"menu-api/internal/logger"
	"menu-api/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "menu-api",
	Short: "Restaurant menu backend",
	Long: `menu-api serves a bilingual (en/ar) restaurant menu: categories,
products, per-language site content and a global theme, with an
admin area behind JWT bearer tokens.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the MongoDB indexes and exit",
	RunE:  runIndexes,
}

func init() {
	rootCmd.AddCommand(serveCmd, indexesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := logger.Init(cfg.Log); err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger.Get("app"), nil
}

func runIndexes(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if cfg.StoreDriver != config.StoreMongo {
		return fmt.Errorf("indexes needs STORE_DRIVER=%s", config.StoreMongo)
	}

	manager := database.NewManager(cfg.MongoURI, cfg.DBName)
	defer manager.Close(context.Background())

	db, err := manager.Database(cmd.Context())
	if err != nil {
		return err
	}
	if err := database.EnsureIndexes(cmd.Context(), db); err != nil {
		return err
	}
	log.WithField("db", cfg.DBName).Info("indexes ready")
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	var (
		st      store.Store
		manager *database.Manager
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn("using in-memory store, data is lost on restart")
		st = store.NewMemory()
	default:
		manager = database.NewManager(cfg.MongoURI, cfg.DBName)
		st = store.NewMongo(manager)

		// The server starts even when MongoDB is down; the manager connects
		// on the first request that needs it.
		if db, err := manager.Database(cmd.Context()); err != nil {
			log.WithError(err).Warn("mongo not reachable at startup")
		} else if err := database.EnsureIndexes(cmd.Context(), db); err != nil {
			log.WithError(err).Warn("index warning")
		}
	}

	cc, err := cache.New(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		log.WithError(err).Warn("cache disabled")
		cc = cache.Noop{}
	}
	defer cc.Close()

	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware())
	handlers.RegisterRoutes(r, handlers.Deps{
		Store:  st,
		Cache:  cc,
		Tokens: auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpire),
		SuperAdmin: handlers.SuperAdmin{
			Username: cfg.SuperAdminUsername,
			Password: cfg.SuperAdminPassword,
		},
	})

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Address).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown")
	}
	if manager != nil {
		if err := manager.Close(shutdownCtx); err != nil {
			log.WithError(err).Error("mongo disconnect")
		}
	}
	return nil
}
