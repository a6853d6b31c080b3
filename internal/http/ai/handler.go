// Package ai exposes the assistant chat endpoint.
package ai

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfreitas/tally/internal/assistant"
	"github.com/mfreitas/tally/internal/http/respond"
	"github.com/mfreitas/tally/internal/ledger"
)

type Handler struct {
	assistantSvc *assistant.Service
	ledgerSvc    *ledger.Service
}

func NewHandler(assistantSvc *assistant.Service, ledgerSvc *ledger.Service) *Handler {
	return &Handler{
		assistantSvc: assistantSvc,
		ledgerSvc:    ledgerSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/chat", h.chat)
}

type chatRequest struct {
	Messages []assistant.Message `json:"messages"`
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Messages == nil {
		respond.Error(w, http.StatusBadRequest, "Messages array is required")
		return
	}

	// The business context is built server-side so a reply is always grounded
	// in the stored dataset rather than whatever the client claims.
	reply, err := h.assistantSvc.Reply(r.Context(), req.Messages, h.businessContext(r))
	if err != nil {
		// The only error Reply surfaces is a canceled request context.
		if r.Context().Err() != nil {
			return
		}

		slog.Error("assistant reply failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "AI Service Error")

		return
	}

	respond.JSON(w, http.StatusOK, true, reply, "")
}

func (h *Handler) businessContext(r *http.Request) assistant.Context {
	ds, err := h.ledgerSvc.Dataset(r.Context())
	if err != nil {
		// A reply without context beats no reply.
		slog.Warn("failed to load dataset for assistant context", "error", err)
		return assistant.Context{}
	}

	return assistant.Context{
		Metrics:          &ds.Metrics,
		TransactionCount: len(ds.Transactions),
		CustomerCount:    len(ds.Customers),
		DebtCount:        len(ds.Debts),
	}
}
