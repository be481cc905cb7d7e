package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/gauthamsrinivas7/CourtSide/internal/catalog"
	"github.com/gauthamsrinivas7/CourtSide/internal/digest"
	"github.com/gauthamsrinivas7/CourtSide/internal/prefs"
)

// Router wires the local JSON API the presentation layer consumes. It never
// drives scheduler internals: everything funnels through the gate, the view
// and the fetch primitive.
type Router struct {
	log     *zap.Logger
	gate    *prefs.Gate
	catalog *catalog.Catalog
	fetcher *digest.Fetcher
	view    *digest.View
	hub     *Hub
}

// NewRouter creates the API router.
func NewRouter(log *zap.Logger, gate *prefs.Gate, cat *catalog.Catalog, fetcher *digest.Fetcher, view *digest.View, hub *Hub) *Router {
	return &Router{
		log:     log,
		gate:    gate,
		catalog: cat,
		fetcher: fetcher,
		view:    view,
		hub:     hub,
	}
}

// Handler builds the route table.
func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /api/teams", rt.handleTeamSearch)

	mux.HandleFunc("GET /api/preferences", rt.handleGetPreferences)
	mux.HandleFunc("PUT /api/preferences", rt.handlePutPreferences)
	mux.HandleFunc("DELETE /api/preferences", rt.handleDeletePreferences)

	mux.HandleFunc("GET /api/digest", rt.handleDigest)
	mux.HandleFunc("POST /api/digest/generate", rt.handleGenerate)
	mux.HandleFunc("POST /api/digest/mode", rt.handleMode)
	mux.HandleFunc("POST /api/digest/notification/dismiss", rt.handleDismissNotification)

	mux.HandleFunc("GET /api/events", rt.handleEvents)

	return mux
}
