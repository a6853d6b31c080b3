package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mfreitas/tally/internal/http/ai"
	"github.com/mfreitas/tally/internal/http/categorize"
	"github.com/mfreitas/tally/internal/http/export"
	"github.com/mfreitas/tally/internal/http/importcsv"
	"github.com/mfreitas/tally/internal/http/ledger"
	"github.com/mfreitas/tally/internal/http/respond"
)

var startedAt = time.Now()

func New(
	ledgerAPI *ledger.Handler,
	aiAPI *ai.Handler,
	importAPI *importcsv.Handler,
	exportAPI *export.Handler,
	categoriesAPI *categorize.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", health)

		r.Route("/ai", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			aiAPI.Routes(r)
		})

		r.Route("/import", importAPI.Routes)

		r.Route("/export", exportAPI.Routes)

		r.Route("/categories", func(r chi.Router) {
			categoriesAPI.Routes(r)
		})

		// Collection routes go last so the static prefixes above win.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			ledgerAPI.Routes(r)
		})
	})

	return router
}

type healthResponse struct {
	Uptime    float64 `json:"uptime"`
	Timestamp int64   `json:"timestamp"`
}

func health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, true, healthResponse{
		Uptime:    time.Since(startedAt).Seconds(),
		Timestamp: time.Now().UnixMilli(),
	}, "Server is healthy")
}
