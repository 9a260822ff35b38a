package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/explorewithme/explore-with-me/services/stats-service/internal/config"
	"github.com/explorewithme/explore-with-me/services/stats-service/internal/transport/http/handlers"
	appmw "github.com/explorewithme/explore-with-me/services/stats-service/internal/transport/http/middleware"
)

func New(stats *handlers.StatsHandler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(appmw.AccessLog)

	if cfg.RateLimitRPS > 0 {
		r.Use(httprate.Limit(
			cfg.RateLimitRPS,
			time.Second,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		))
	}

	r.Get("/healthz", handlers.Health)

	r.Post("/hit", stats.RecordHit)
	r.Get("/stats", stats.QueryStats)

	return r
}
