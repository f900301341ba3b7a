package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/triplingo-backend/internal/config"
	"github.com/heartmarshall/triplingo-backend/internal/transport/dataloader"
	"github.com/heartmarshall/triplingo-backend/internal/transport/middleware"
)

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health     *HealthHandler
	Lessons    *LessonHandler
	Phrasebook *PhrasebookHandler
	Places     *PlaceHandler
	Admin      *AdminHandler
}

// RouterDeps holds what NewRouter needs besides the handlers.
type RouterDeps struct {
	Logger         *slog.Logger
	CORS           config.CORSConfig
	Loaders        *dataloader.Repos
	RateLimiter    *middleware.RateLimiter
	AdminPerMinute int
}

// NewRouter mounts all routes. Probes skip the request logger; admin
// routes are rate limited per client IP.
func NewRouter(h Handlers, deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	api := http.NewServeMux()

	api.HandleFunc("GET /trips", h.Lessons.ListTrips)
	api.HandleFunc("GET /trips/{id}/situations", h.Lessons.ListSituations)
	api.HandleFunc("GET /situations/{id}/phrases", h.Lessons.ListPhrases)

	api.HandleFunc("GET /phrasebook", h.Phrasebook.List)
	api.HandleFunc("GET /phrasebook/recent", h.Phrasebook.Recent)
	api.HandleFunc("GET /phrasebook/status", h.Phrasebook.Status)
	api.HandleFunc("POST /phrasebook", h.Phrasebook.Save)
	api.HandleFunc("POST /phrasebook/practice", h.Phrasebook.Practice)
	api.HandleFunc("DELETE /phrasebook/{id}", h.Phrasebook.Delete)

	api.HandleFunc("GET /places", h.Places.List)
	api.HandleFunc("POST /places", h.Places.Save)
	api.HandleFunc("DELETE /places/{id}", h.Places.Delete)

	admin := http.NewServeMux()
	admin.HandleFunc("POST /admin/seeds/import", h.Admin.ImportSeeds)
	admin.HandleFunc("POST /admin/reset", h.Admin.Reset)

	var adminHandler http.Handler = admin
	if deps.RateLimiter != nil && deps.AdminPerMinute > 0 {
		adminHandler = deps.RateLimiter.Limit(deps.AdminPerMinute)(admin)
	}
	api.Handle("/admin/", adminHandler)

	mux.Handle("/", middleware.Chain(
		middleware.Logger(deps.Logger),
		dataloader.Middleware(deps.Loaders),
	)(api))

	return middleware.Chain(
		middleware.Recovery(deps.Logger),
		middleware.RequestID,
		middleware.CORS(deps.CORS),
	)(mux)
}
