// Package importcsv handles statement CSV uploads.
package importcsv

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfreitas/tally/internal/categorize"
	"github.com/mfreitas/tally/internal/http/respond"
	"github.com/mfreitas/tally/internal/importer"
	"github.com/mfreitas/tally/internal/ledger"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
	ledgerSvc *ledger.Service
	catSvc    *categorize.Service
}

func NewHandler(importSvc *importer.Service, ledgerSvc *ledger.Service, catSvc *categorize.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		ledgerSvc: ledgerSvc,
		catSvc:    catSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importedTransaction struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type importResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []importedTransaction `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, http.StatusBadRequest, "Failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "File field is required")
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(importer.FormatStatement, file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	for i, p := range params {
		if p.Category != "" {
			continue
		}

		suggested, err := h.catSvc.Suggest(r.Context(), p.Description)
		if err != nil || suggested == "" {
			continue
		}

		params[i].Category = suggested
	}

	txs, err := h.ledgerSvc.CreateTransactionBatch(r.Context(), params)
	if err != nil {
		var verr *ledger.ValidationError
		if errors.As(err, &verr) {
			respond.JSON(w, http.StatusBadRequest, false, verr.Messages, "Validation Error")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "Server Error")

		return
	}

	resp := importResponse{
		Imported:     len(txs),
		Transactions: make([]importedTransaction, 0, len(txs)),
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, importedTransaction{
			ID:          tx.ID.String(),
			Amount:      tx.Amount.StringFixed(2),
			Type:        string(tx.Type),
			Category:    tx.Category,
			Description: tx.Description,
			Date:        tx.Date.Format("2006-01-02"),
		})
	}

	respond.JSON(w, http.StatusCreated, true, resp, fmt.Sprintf("Imported %d transactions", len(txs)))
}
