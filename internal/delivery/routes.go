package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type RouteOptions struct {
	AccessToken     string
	RateLimitPerMin int
}

func RegisterRoutes(
	r chi.Router,
	hPage *PageHandler,
	hAPI *APIHandler,
	hAudio *AudioHandler,
	opts RouteOptions,
) {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(httputil.RecoverMiddleware)

	limit := httprate.LimitByIP(opts.RateLimitPerMin, time.Minute)

	// --- страница ---
	r.Get("/", hPage.Index)
	r.With(limit).Post("/translate", hPage.Translate)
	r.Get("/audio/{id}", hAudio.Download)

	// --- api ---
	r.Route("/api", func(ar chi.Router) {
		ar.Use(AuthMiddleware(opts.AccessToken))

		ar.Get("/languages", hAPI.Languages)
		ar.With(limit).Post("/translate", hAPI.Translate)
	})

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
}
