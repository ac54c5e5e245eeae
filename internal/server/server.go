// Package server assembles the catalog service: store, cache, controllers,
// middleware, routes, and the background sweeper, then runs the HTTP
// listener until the process is told to stop.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vipani/app/controllers"
	"github.com/shashiranjanraj/vipani/app/models"
	"github.com/shashiranjanraj/vipani/app/repositories"
	"github.com/shashiranjanraj/vipani/app/routes"
	"github.com/shashiranjanraj/vipani/app/services"
	"github.com/shashiranjanraj/vipani/config"
	"github.com/shashiranjanraj/vipani/pkg/cache"
	"github.com/shashiranjanraj/vipani/pkg/database"
	"github.com/shashiranjanraj/vipani/pkg/logger"
	"github.com/shashiranjanraj/vipani/pkg/metrics"
	"github.com/shashiranjanraj/vipani/pkg/middleware"
	"github.com/shashiranjanraj/vipani/pkg/reqid"
	"github.com/shashiranjanraj/vipani/pkg/router"
	"github.com/shashiranjanraj/vipani/pkg/schedule"
)

// Start boots the service and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	closeLogs, err := logger.AttachMongoSink()
	if err != nil {
		logger.Warn("mongo log sink unavailable, logging to stdout only", "error", err)
	}
	defer closeLogs()

	db, err := database.Open(config.DatabaseDriver(), config.DatabaseDSN(), models.SetupJoinTable)
	if err != nil {
		return err
	}

	cc, err := cache.Connect(config.RedisAddr(), config.RedisPassword(), config.CacheTTL())
	if err != nil {
		logger.Warn("redis unavailable, serving uncached", "error", err)
		cc = nil
	}
	defer cc.Close()

	r := NewRouter(db, cc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// With cascade off, deletes leave dangling join rows behind; the
	// sweeper cleans them up on an interval.
	if !config.CascadeDelete() {
		sweeper := services.NewSweeper(db)
		schedule.Every(config.SweepInterval()).Run(func() {
			sctx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			_, _ = sweeper.Sweep(sctx)
		})
		schedule.Start(ctx)
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("vipani listening", "addr", srv.Addr, "env", config.AppEnv())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the full middleware chain and catalog routes on top of
// the given store and cache. Exposed so tests can assemble the same stack
// against an in-memory database.
func NewRouter(db *gorm.DB, cc *cache.Cache) *router.Router {
	cascade := config.CascadeDelete()

	links := services.NewTagLinkService(db)
	deps := routes.Deps{
		Categories: controllers.NewCategoryController(repositories.NewCategoryRepository(db, cascade), cc),
		Products:   controllers.NewProductController(repositories.NewProductRepository(db, cascade), links, cc),
		Tags:       controllers.NewTagController(repositories.NewTagRepository(db, cascade), cc),
	}

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimitMax(), config.RateLimitWindow()))

	routes.RegisterAPI(r, deps)
	return r
}
