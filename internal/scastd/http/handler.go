// Package http serves the player's local control API and the renderer
// WebSocket.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/slidecast/slidecast/api/types/v1alpha1"
)

// Player is the scheduler surface the control API needs.
type Player interface {
	Status() v1alpha1.PlayerStatus
	Refresh()
	Reset()
	ReportEvent(ev v1alpha1.RendererEvent)
}

// Pairer exchanges a link code for a device identity.
type Pairer interface {
	Pair(ctx context.Context, code string) (string, error)
	Unpair(ctx context.Context) error
}

// Identity reports the pairing state.
type Identity interface {
	Paired(ctx context.Context) bool
}

// Handler serves the control API.
type Handler struct {
	player   Player
	pairer   Pairer
	identity Identity
	hub      *Hub
	// pairLimiter guards the pairing endpoint, which forwards every
	// attempt to the remote service
	pairLimiter func(http.Handler) http.Handler
	logger      zerolog.Logger
}

// NewHandler creates the control API handler and binds the hub to the
// player. pairLimiter may be nil to disable rate limiting on the pairing
// endpoint.
func NewHandler(player Player, pairer Pairer, identity Identity,
	pairLimiter func(http.Handler) http.Handler, hub *Hub, logger zerolog.Logger) *Handler {
	l := logger.With().Str("component", "control-http").Logger()
	hub.player = player
	return &Handler{
		player:      player,
		pairer:      pairer,
		identity:    identity,
		hub:         hub,
		pairLimiter: pairLimiter,
		logger:      l,
	}
}

// Run drives the renderer hub until ctx is cancelled.
func (h *Handler) Run(ctx context.Context) {
	h.hub.run(ctx)
}

// Sink returns the render sink broadcasting to connected renderers.
func (h *Handler) Sink() *Hub {
	return h.hub
}

// Router returns the control API router with all routes mounted.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(requestIDHeaderMiddleware)
	r.Use(recoverMiddleware(h.logger))
	r.Use(logMiddleware(h.logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1alpha1", func(r chi.Router) {
		r.Get("/status", h.handleStatus)

		r.Group(func(r chi.Router) {
			if h.pairLimiter != nil {
				r.Use(h.pairLimiter)
			}
			r.Post("/pair", h.handlePair)
		})
		r.Post("/unpair", h.handleUnpair)

		r.Get("/ws", h.ServeWS)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			h.respondJSON(w, http.StatusNotFound, v1alpha1.Error{
				Code: "NOT_FOUND", Message: "not found",
			})
		})
	})

	return r
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := h.player.Status()
	status.Paired = h.identity.Paired(r.Context())
	if !status.Paired {
		status.State = v1alpha1.PlayerStateUnpaired
	}
	h.respondJSON(w, http.StatusOK, status)
}

func (h *Handler) handlePair(w http.ResponseWriter, r *http.Request) {
	var req v1alpha1.PairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, v1alpha1.Error{
			Code: "INVALID_REQUEST", Message: "invalid request body",
		})
		return
	}

	id, err := h.pairer.Pair(r.Context(), req.Code)
	if err != nil {
		h.respondError(w, err)
		return
	}

	// Pull content immediately instead of waiting out the poll interval.
	h.player.Refresh()

	h.logger.Info().Str("uuid", id).Msg("device paired")
	h.respondJSON(w, http.StatusOK, v1alpha1.LinkResponse{UUID: id})
}

func (h *Handler) handleUnpair(w http.ResponseWriter, r *http.Request) {
	if err := h.pairer.Unpair(r.Context()); err != nil {
		h.respondError(w, err)
		return
	}
	h.player.Reset()

	h.logger.Info().Msg("device unpaired")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.Error().Err(err).Msg("failed to encode response")
		}
	}
}
