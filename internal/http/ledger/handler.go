// Package ledger exposes the dataset collections over HTTP.
package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfreitas/tally/internal/http/respond"
	"github.com/mfreitas/tally/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/data", h.data)
	r.Post("/debts/{id}/pay", h.payDebt)

	r.Get("/{collection}", h.list)
	r.Post("/{collection}", h.create)
	r.Patch("/{collection}/{id}", h.update)
	r.Delete("/{collection}/{id}", h.delete)
}

func (h *Handler) data(w http.ResponseWriter, r *http.Request) {
	ds, err := h.svc.Dataset(r.Context())
	if err != nil {
		h.writeError(w, err, "")
		return
	}

	respond.JSON(w, http.StatusOK, true, toDatasetResponse(ds), "")
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		data any
		err  error
	)

	switch ledger.Collection(chi.URLParam(r, "collection")) {
	case ledger.CollectionTransactions:
		var txs []*ledger.Transaction
		if txs, err = h.svc.ListTransactions(r.Context()); err == nil {
			data = toTransactionResponses(txs)
		}
	case ledger.CollectionCustomers:
		var cs []*ledger.Customer
		if cs, err = h.svc.ListCustomers(r.Context()); err == nil {
			data = toCustomerResponses(cs)
		}
	case ledger.CollectionDebts:
		var ds []*ledger.Debt
		if ds, err = h.svc.ListDebts(r.Context()); err == nil {
			data = toDebtResponses(ds)
		}
	default:
		// Unknown collections list as empty rather than erroring.
		data = []any{}
	}

	if err != nil {
		h.writeError(w, err, "")
		return
	}

	respond.JSON(w, http.StatusOK, true, data, "")
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	switch ledger.Collection(chi.URLParam(r, "collection")) {
	case ledger.CollectionTransactions:
		h.createTransaction(w, r)
	case ledger.CollectionCustomers:
		h.createCustomer(w, r)
	case ledger.CollectionDebts:
		h.createDebt(w, r)
	default:
		respond.Error(w, http.StatusNotFound, "Collection not found")
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	switch ledger.Collection(chi.URLParam(r, "collection")) {
	case ledger.CollectionTransactions:
		h.updateTransaction(w, r, id)
	case ledger.CollectionCustomers:
		h.updateCustomer(w, r, id)
	case ledger.CollectionDebts:
		h.updateDebt(w, r, id)
	default:
		respond.Error(w, http.StatusNotFound, "Collection not found")
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	switch ledger.Collection(chi.URLParam(r, "collection")) {
	case ledger.CollectionTransactions:
		if err := h.svc.DeleteTransaction(r.Context(), id); err != nil {
			h.writeError(w, err, "Transaction not found")
			return
		}

		respond.JSON(w, http.StatusOK, true, nil, "Transaction deleted")
	case ledger.CollectionCustomers:
		if err := h.svc.DeleteCustomer(r.Context(), id); err != nil {
			h.writeError(w, err, "Customer not found")
			return
		}

		respond.JSON(w, http.StatusOK, true, nil, "Customer deleted")
	case ledger.CollectionDebts:
		if err := h.svc.DeleteDebt(r.Context(), id); err != nil {
			h.writeError(w, err, "Debt not found")
			return
		}

		respond.JSON(w, http.StatusOK, true, nil, "Debt deleted")
	default:
		respond.Error(w, http.StatusNotFound, "Collection not found")
	}
}

type createTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        ledger.Type     `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date,omitempty"`
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := ledger.TransactionParams{
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
	}
	if req.Date != nil {
		params.Date = *req.Date
	}

	tx, err := h.svc.CreateTransaction(r.Context(), params)
	if err != nil {
		h.writeError(w, err, "")
		return
	}

	respond.JSON(w, http.StatusCreated, true, toTransactionResponse(tx), "Transaction created")
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.svc.CreateCustomer(r.Context(), ledger.CustomerParams{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		h.writeError(w, err, "")
		return
	}

	respond.JSON(w, http.StatusCreated, true, toCustomerResponse(c), "Customer created")
}

type createDebtRequest struct {
	CustomerName string          `json:"customerName"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      string          `json:"dueDate"`
	Description  string          `json:"description"`
}

func (h *Handler) createDebt(w http.ResponseWriter, r *http.Request) {
	var req createDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dueDate, ok := parseDate(req.DueDate)
	if req.DueDate != "" && !ok {
		respond.Error(w, http.StatusBadRequest, "Invalid due date")
		return
	}

	d, err := h.svc.CreateDebt(r.Context(), ledger.DebtParams{
		CustomerName: req.CustomerName,
		Amount:       req.Amount,
		DueDate:      dueDate,
		Description:  req.Description,
	})
	if err != nil {
		h.writeError(w, err, "")
		return
	}

	respond.JSON(w, http.StatusCreated, true, toDebtResponse(d), "Debt created")
}

type updateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *ledger.Type     `json:"type,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.svc.GetTransaction(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Transaction not found")
		return
	}

	if req.Amount != nil {
		tx.Amount = *req.Amount
	}

	if req.Type != nil {
		tx.Type = *req.Type
	}

	if req.Category != nil {
		tx.Category = *req.Category
	}

	if req.Description != nil {
		tx.Description = *req.Description
	}

	if req.Date != nil {
		tx.Date = *req.Date
	}

	if err := h.svc.UpdateTransaction(r.Context(), tx); err != nil {
		h.writeError(w, err, "Transaction not found")
		return
	}

	respond.JSON(w, http.StatusOK, true, toTransactionResponse(tx), "Transaction updated")
}

type updateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req updateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.svc.GetCustomer(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Customer not found")
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}

	if req.Phone != nil {
		c.Phone = *req.Phone
	}

	if req.Email != nil {
		c.Email = *req.Email
	}

	if err := h.svc.UpdateCustomer(r.Context(), c); err != nil {
		h.writeError(w, err, "Customer not found")
		return
	}

	respond.JSON(w, http.StatusOK, true, toCustomerResponse(c), "Customer updated")
}

// updateDebtRequest excludes amount, status and paidAmount: the owed amount is
// fixed at creation and the payment fields only move through the pay endpoint.
type updateDebtRequest struct {
	CustomerName *string `json:"customerName,omitempty"`
	DueDate      *string `json:"dueDate,omitempty"`
	Description  *string `json:"description,omitempty"`
}

func (h *Handler) updateDebt(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req updateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.svc.GetDebt(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Debt not found")
		return
	}

	if req.CustomerName != nil {
		d.CustomerName = *req.CustomerName
	}

	if req.DueDate != nil {
		dueDate, ok := parseDate(*req.DueDate)
		if !ok {
			respond.Error(w, http.StatusBadRequest, "Invalid due date")
			return
		}

		d.DueDate = dueDate
	}

	if req.Description != nil {
		d.Description = *req.Description
	}

	if err := h.svc.UpdateDebt(r.Context(), d); err != nil {
		h.writeError(w, err, "Debt not found")
		return
	}

	respond.JSON(w, http.StatusOK, true, toDebtResponse(d), "Debt updated")
}

type payDebtRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) payDebt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var req payDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.svc.PayDebt(r.Context(), id, req.Amount)
	if err != nil {
		h.writeError(w, err, "Debt not found")
		return
	}

	respond.JSON(w, http.StatusOK, true, toDebtResponse(d), "Payment recorded")
}

func (h *Handler) writeError(w http.ResponseWriter, err error, notFoundMsg string) {
	var verr *ledger.ValidationError

	switch {
	case errors.As(err, &verr):
		respond.JSON(w, http.StatusBadRequest, false, verr.Messages, "Validation Error")
	case errors.Is(err, ledger.ErrNotFound) && notFoundMsg != "":
		respond.Error(w, http.StatusNotFound, notFoundMsg)
	default:
		slog.Error("request failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server Error")
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
