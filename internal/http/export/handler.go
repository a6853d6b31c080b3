// Package export serves CSV downloads of the ledger collections.
package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mfreitas/tally/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/transactions", h.transactions)
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"", time.Now().Format("20060102")))

	if err := h.svc.WriteTransactionsCSV(r.Context(), w); err != nil {
		// Headers are gone already; the truncated body is all we can signal.
		slog.Error("failed to write transactions csv", "error", err)
	}
}
