// Package api serves the dashboard's read-only JSON endpoints over a Store.
package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"momo-dashboard/internal/logger"
	"momo-dashboard/internal/store"
)

// Handler serves the dashboard API.
type Handler struct {
	store store.Store
	log   zerolog.Logger
}

// NewHandler creates the API handler.
func NewHandler(st store.Store, log zerolog.Logger) *Handler {
	return &Handler{store: st, log: log}
}

// Routes returns the mux with every endpoint and the middleware chain applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/summary", get(h.Summary))
	mux.HandleFunc("/api/transactions", get(h.Transactions))
	mux.HandleFunc("/api/debug/types", get(h.DebugTypes))
	mux.HandleFunc("/api/status", get(h.Status))
	mux.HandleFunc("/health", get(h.Health))

	return Recovery(h.log)(
		RequestID(
			Logger(h.log)(
				CORS(mux),
			),
		),
	)
}

// Summary handles GET /api/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.Aggregate(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load summary")
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

// Transactions handles GET /api/transactions?type=<category>
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("type")

	txns, err := h.store.Query(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).Debug().
		Str("type", filter).
		Int("rows", len(txns)).
		Msg("Transactions filtered")

	WriteJSON(w, http.StatusOK, txns)
}

// DebugTypes handles GET /api/debug/types
func (h *Handler) DebugTypes(w http.ResponseWriter, r *http.Request) {
	infos, err := h.store.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to list categories")
		return
	}
	WriteJSON(w, http.StatusOK, infos)
}

// Status handles GET /api/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.store.Status(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load import status")
		return
	}
	WriteJSON(w, http.StatusOK, status)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// fail logs a store error and answers 500. An empty message exposes the
// error text, as the transactions endpoint does.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, message string) {
	logger.FromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Store request failed")
	if message == "" {
		message = err.Error()
	}
	WriteError(w, http.StatusInternalServerError, message)
}

func get(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		next(w, r)
	}
}
