package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gridmind/minesweeper-agent/internal/game"
	"github.com/gridmind/minesweeper-agent/internal/game/core"
)

// Handler serves the game API on top of a Manager.
type Handler struct {
	manager *Manager
	logger  zerolog.Logger

	defaultBoard game.Config
}

// NewHandler creates an API handler. defaultBoard is used when a create
// request omits dimensions.
func NewHandler(manager *Manager, defaultBoard game.Config, logger zerolog.Logger) *Handler {
	return &Handler{
		manager:      manager,
		logger:       logger.With().Str("component", "http_handler").Logger(),
		defaultBoard: defaultBoard,
	}
}

// Routes registers all API endpoints on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /games", h.createGame)
	mux.HandleFunc("GET /games/{id}", h.getGame)
	mux.HandleFunc("POST /games/{id}/step", h.stepGame)
	mux.HandleFunc("POST /games/{id}/autoplay", h.autoplayGame)
	mux.HandleFunc("DELETE /games/{id}", h.deleteGame)
	mux.HandleFunc("GET /healthz", h.health)
	return mux
}

type createGameRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Mines  int `json:"mines"`
}

func (h *Handler) createGame(w http.ResponseWriter, r *http.Request) {
	cfg := h.defaultBoard

	if r.Body != nil && r.ContentLength != 0 {
		var req createGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Width != 0 || req.Height != 0 || req.Mines != 0 {
			cfg = game.Config{Width: req.Width, Height: req.Height, Mines: req.Mines}
		}
	}

	view, err := h.manager.CreateGame(cfg)
	if err != nil {
		if errors.Is(err, core.ErrInvalidDimension) || errors.Is(err, core.ErrTooManyMines) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	view, err := h.manager.GetGame(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) stepGame(w http.ResponseWriter, r *http.Request) {
	view, err := h.manager.StepGame(r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrGameNotFound):
			h.writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, core.ErrGameOver):
			h.writeError(w, http.StatusConflict, err.Error())
		default:
			h.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) autoplayGame(w http.ResponseWriter, r *http.Request) {
	view, err := h.manager.AutoplayGame(r.Context(), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrGameNotFound):
			h.writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, core.ErrGameOver):
			h.writeError(w, http.StatusConflict, err.Error())
		default:
			h.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.DeleteGame(r.PathValue("id")); err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"games":  h.manager.GameCount(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
