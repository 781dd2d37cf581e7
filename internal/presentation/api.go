package presentation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Caia-Tech/pairforge/internal/analytics"
	"github.com/Caia-Tech/pairforge/internal/storage"
	"github.com/Caia-Tech/pairforge/pkg/pair"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// API serves read-only report and dataset views. It is separate from the
// main API so a reporting frontend can be exposed without any of the
// mutating endpoints.
type API struct {
	renderer *Renderer
	store    storage.Store
	config   *APIConfig
}

// APIConfig configures the presentation API
type APIConfig struct {
	Port       int    `json:"port"`
	Host       string `json:"host"`
	BasePath   string `json:"base_path"`
	EnableCORS bool   `json:"enable_cors"`
}

// DefaultAPIConfig returns the standard presentation API configuration.
func DefaultAPIConfig() *APIConfig {
	return &APIConfig{
		Port:       8081,
		Host:       "localhost",
		BasePath:   "/api/v1",
		EnableCORS: true,
	}
}

// NewAPI creates a new presentation API
func NewAPI(renderer *Renderer, store storage.Store, config *APIConfig) *API {
	if config == nil {
		config = DefaultAPIConfig()
	}
	return &API{
		renderer: renderer,
		store:    store,
		config:   config,
	}
}

// Start starts the API server
func (api *API) Start() error {
	handler := api.addMiddleware(api.Routes())

	addr := fmt.Sprintf("%s:%d", api.config.Host, api.config.Port)
	log.Info().Str("address", addr).Msg("Starting presentation API")

	return http.ListenAndServe(addr, handler)
}

// Routes configures the read-only route set.
func (api *API) Routes() *mux.Router {
	router := mux.NewRouter()
	base := router.PathPrefix(api.config.BasePath).Subrouter()

	base.HandleFunc("/report", api.getReport).Methods("GET")
	base.HandleFunc("/pairs", api.listPairs).Methods("GET")
	base.HandleFunc("/pairs/{index:[0-9]+}", api.getPair).Methods("GET")
	base.HandleFunc("/health", api.healthCheck).Methods("GET")

	return router
}

func (api *API) addMiddleware(router http.Handler) http.Handler {
	if api.config.EnableCORS {
		router = api.corsMiddleware(router)
	}
	return api.loggingMiddleware(router)
}

func (api *API) getReport(w http.ResponseWriter, r *http.Request) {
	format, err := ParseOutputFormat(r.URL.Query().Get("format"))
	if err != nil {
		api.sendError(w, http.StatusBadRequest, "Invalid format", err)
		return
	}

	ds, err := api.store.List(r.Context())
	if err != nil {
		api.sendError(w, http.StatusInternalServerError, "Failed to load dataset", err)
		return
	}

	rendered, err := api.renderer.Render(analytics.Analyze(ds), format)
	if err != nil {
		api.sendError(w, http.StatusInternalServerError, "Failed to render report", err)
		return
	}

	switch rendered.Format {
	case FormatJSON:
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, rendered.Content)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, rendered.Content)
	}
}

func (api *API) listPairs(w http.ResponseWriter, r *http.Request) {
	ds, err := api.store.List(r.Context())
	if err != nil {
		api.sendError(w, http.StatusInternalServerError, "Failed to load dataset", err)
		return
	}

	api.sendJSON(w, map[string]interface{}{
		"pairs": ds,
		"stats": pair.ComputeStats(ds),
	})
}

func (api *API) getPair(w http.ResponseWriter, r *http.Request) {
	var index int
	if _, err := fmt.Sscanf(mux.Vars(r)["index"], "%d", &index); err != nil {
		api.sendError(w, http.StatusBadRequest, "Invalid pair index", err)
		return
	}

	p, err := api.store.Get(r.Context(), index)
	if err != nil {
		api.sendError(w, http.StatusNotFound, "Pair not found", err)
		return
	}
	api.sendJSON(w, p)
}

func (api *API) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := api.store.Health(r.Context()); err != nil {
		api.sendError(w, http.StatusServiceUnavailable, "Store unhealthy", err)
		return
	}
	api.sendJSON(w, map[string]interface{}{
		"status":    "healthy",
		"service":   "pairforge-presentation",
		"timestamp": time.Now().UTC(),
	})
}

func (api *API) sendJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (api *API) sendError(w http.ResponseWriter, status int, message string, err error) {
	log.Warn().Err(err).Int("status", status).Msg(message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   message,
		"details": err.Error(),
	})
}

func (api *API) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (api *API) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("Presentation API request")
	})
}
