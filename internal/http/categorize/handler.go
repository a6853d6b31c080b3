// Package categorize exposes the learned category mappings.
package categorize

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfreitas/tally/internal/categorize"
	"github.com/mfreitas/tally/internal/http/respond"
)

type Handler struct {
	svc *categorize.Service
}

func NewHandler(svc *categorize.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	description := r.URL.Query().Get("description")
	if description == "" {
		respond.Error(w, http.StatusBadRequest, "description query parameter is required")
		return
	}

	category, err := h.svc.Suggest(r.Context(), description)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respond.JSON(w, http.StatusOK, true, suggestResponse{
		Description: description,
		Category:    category,
	}, "")
}

type learnRequest struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Pattern == "" || req.Category == "" {
		respond.Error(w, http.StatusBadRequest, "pattern and category are required")
		return
	}

	if err := h.svc.Learn(r.Context(), req.Pattern, req.Category); err != nil {
		respond.Error(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respond.JSON(w, http.StatusCreated, true, nil, "Mapping created")
}
