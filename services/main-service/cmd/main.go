package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/event"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/like"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/request"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/user"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/config"
	cacheredis "github.com/explorewithme/explore-with-me/services/main-service/internal/infrastructure/caching/redis"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/infrastructure/db/postgres"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/infrastructure/messaging/rabbitmq"
	statsclient "github.com/explorewithme/explore-with-me/services/main-service/internal/infrastructure/stats"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/logger"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/handlers"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/router"
)

// sysClock implements the application Clock ports using system time.
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}

	// infrastructure
	eventRepo := postgres.NewEventRepo(db)
	userRepo := postgres.NewUserRepo(db)
	likeRepo := postgres.NewLikeRepo(db)
	requestRepo := postgres.NewRequestRepo(db)

	var pub event.EventPublisher = event.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit publisher init failed")
		}
		defer p.Close()
		pub = p
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: moderation events will not be published")
	}

	var cache *cacheredis.Client
	if cfg.RedisURL != "" {
		c, err := cacheredis.New(cfg.RedisURL)
		if err != nil {
			zlog.Fatal().Err(err).Msg("redis init failed")
		}
		defer c.Close()
		cache = c
	} else {
		zlog.Warn().Msg("REDIS_URL empty: caching disabled")
	}

	stats := statsclient.New(cfg.StatsURL, cfg.StatsApp, cfg.StatsTimeout)

	// application
	var eventCache event.Cache
	var likeCache like.Cache
	if cache != nil {
		eventCache = cache
		likeCache = cache
	}
	eventSvc := event.New(eventRepo, userRepo, sysClock{}, pub, eventCache, stats, cfg.CacheTTLDetails)
	likeSvc := like.New(likeRepo, userRepo, sysClock{}, likeCache, cfg.CacheTTLRanking)
	requestSvc := request.New(requestRepo, sysClock{})
	userSvc := user.New(userRepo)

	// transport
	httpHandler := router.New(
		handlers.NewEventsHandler(eventSvc, stats),
		handlers.NewLikesHandler(likeSvc),
		handlers.NewRequestsHandler(requestSvc),
		handlers.NewUsersHandler(userSvc),
		handlers.NewHealthHandler(),
		cfg,
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
}
