package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	zlog "github.com/rs/zerolog/log"

	"github.com/explorewithme/explore-with-me/services/stats-service/internal/application/stats"
	"github.com/explorewithme/explore-with-me/services/stats-service/internal/config"
	"github.com/explorewithme/explore-with-me/services/stats-service/internal/infrastructure/postgres"
	"github.com/explorewithme/explore-with-me/services/stats-service/internal/logger"
	"github.com/explorewithme/explore-with-me/services/stats-service/internal/transport/http/handlers"
	"github.com/explorewithme/explore-with-me/services/stats-service/internal/transport/http/router"
)

type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db pool init failed")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		zlog.Fatal().Err(err).Msg("db ping failed")
	}

	svc := stats.New(postgres.NewHitRepo(pool), sysClock{})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.New(handlers.NewStatsHandler(svc), cfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
}
