package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/config"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/handlers"
	appmw "github.com/explorewithme/explore-with-me/services/main-service/internal/transport/http/middleware"
)

func New(
	events *handlers.EventsHandler,
	likes *handlers.LikesHandler,
	requests *handlers.RequestsHandler,
	users *handlers.UsersHandler,
	z *handlers.HealthHandler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(appmw.RequestID)
	r.Use(appmw.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(appmw.AccessLog)

	if cfg.RLEnabled {
		r.Use(httprate.Limit(
			cfg.RLLimit,
			cfg.RLWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		))
	}

	r.Get("/healthz", z.Healthz)

	// public
	r.Get("/events", events.ListPublic)
	r.Get("/events/{event_id}", events.GetPublic)
	r.Get("/events/{event_id}/likes", likes.EventLikers)
	r.Get("/initiators/rating", likes.Ranking)

	// initiator / per-user
	r.Route("/users/{user_id}", func(r chi.Router) {
		r.Post("/events", events.Create)
		r.Get("/events", events.ListMine)
		r.Get("/events/{event_id}", events.GetMine)
		r.Patch("/events/{event_id}", events.Update)

		r.Post("/likes", likes.Apply)
		r.Get("/likes", likes.UserLikes)
		r.Delete("/likes/{event_id}/remove", likes.Remove)

		r.Post("/requests", requests.Create)
		r.Get("/requests", requests.ListMine)
		r.Patch("/requests/{request_id}/cancel", requests.Cancel)
		r.Get("/events/{event_id}/requests", requests.ListForEvent)
		r.Patch("/events/{event_id}/requests/{request_id}", requests.Decide)
	})

	// admin
	r.Route("/admin", func(r chi.Router) {
		r.Get("/events", events.AdminSearch)
		r.Patch("/events/{event_id}", events.AdminUpdate)

		r.Post("/users", users.Create)
		r.Get("/users", users.List)
		r.Delete("/users/{user_id}", users.Delete)
	})

	return r
}
