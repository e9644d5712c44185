package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"

	"github.com/citystats/citystats-service/internal/application/citystats"
	"github.com/citystats/citystats-service/internal/config"
	"github.com/citystats/citystats-service/internal/infrastructure/caching/redis"
	"github.com/citystats/citystats-service/internal/infrastructure/chart"
	"github.com/citystats/citystats-service/internal/infrastructure/db/postgres"
	"github.com/citystats/citystats-service/internal/logger"
	"github.com/citystats/citystats-service/internal/transport/http/handlers"
	mw "github.com/citystats/citystats-service/internal/transport/http/middleware"
	"github.com/citystats/citystats-service/internal/transport/http/router"
)

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB
	Redis  *redis.Client
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if u, err := url.Parse(cfg.DatabaseURL); err == nil && u.Host != "" {
		zlog.Info().
			Str("db_driver", cfg.DBDriver).
			Str("db_user", u.User.Username()).
			Str("db_host", u.Host).
			Str("db_db", u.Path).
			Msg("db config loaded")
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLife)

	{
		ctx, cancel := context.WithTimeout(rootCtx, cfg.DBPingTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}

	app, err := NewApp(cfg, db)
	if err != nil {
		zlog.Fatal().Err(err).Msg("app init failed")
	}
	defer func() {
		if app.Redis != nil {
			_ = app.Redis.Close()
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.AppEnv).Msg("listening")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		zlog.Info().Msg("shutdown signal received")
	case err := <-errCh:
		zlog.Error().Err(err).Msg("http server crashed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("graceful shutdown failed")
	}
	zlog.Info().Msg("shutdown complete")
}

func NewApp(cfg *config.Config, db *sql.DB) (*App, error) {
	// 1) Infrastructure
	repo := postgres.New(db)

	renderer, err := chart.NewRenderer(chart.DefaultStyle)
	if err != nil {
		return nil, err
	}

	checkers := []handlers.ReadinessChecker{
		handlers.NewPingChecker("postgres", repo.Ping),
	}

	var (
		rdb     *redis.Client
		limiter mw.Limiter
	)
	if cfg.RedisURL != "" {
		c, err := redis.New(cfg.RedisURL)
		if err != nil {
			// in-process limiting still applies
			zlog.Warn().Err(err).Msg("redis unavailable: using in-process rate limit")
		} else {
			rdb = c
			limiter = c
			checkers = append(checkers, handlers.NewPingChecker("redis", c.Ping))
			zlog.Info().Msg("redis rate limiter ready")
		}
	}

	// 2) Application
	svc := citystats.New(repo, repo, chart.NewRentalChart(renderer))

	// 3) Transport
	h := handlers.NewStatsHandler(svc)
	z := handlers.NewHealthHandler(cfg.ReadyzDBTimeout, checkers...)

	// 4) Router
	httpHandler := router.New(h, z, limiter, cfg)

	// 5) Server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}

	return &App{
		Config: cfg,
		Server: srv,
		DB:     db,
		Redis:  rdb,
	}, nil
}
