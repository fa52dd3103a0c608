package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/fpo-database/backend/internal/handler/health"
	recordHandler "github.com/zhouzirui/fpo-database/backend/internal/handler/record"
	"github.com/zhouzirui/fpo-database/backend/internal/metrics"
	middlewarePkg "github.com/zhouzirui/fpo-database/backend/internal/middleware"
	"github.com/zhouzirui/fpo-database/backend/internal/model/record"
	"github.com/zhouzirui/fpo-database/backend/pkg/utils"
)

// Options tweaks the router. A nil Metrics disables instrumentation and the
// /metrics endpoint.
type Options struct {
	AllowedOrigins []string
	Metrics        *metrics.Metrics
}

// NewRouter wires HTTP routes to the record snapshot.
func NewRouter(records record.Store, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(middlewarePkg.Metrics(opts.Metrics))
	}
	r.Use(middleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	health.New(records).RegisterRoutes(r)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	recordsHandler := recordHandler.New(records, opts.Metrics)
	r.Route("/fpo_database", func(api chi.Router) {
		recordsHandler.RegisterRoutes(api)
	})

	return r
}
