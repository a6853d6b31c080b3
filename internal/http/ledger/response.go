package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfreitas/tally/internal/ledger"
)

type transactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        ledger.Type     `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

type customerResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type debtResponse struct {
	ID           uuid.UUID         `json:"id"`
	CustomerName string            `json:"customerName"`
	Amount       decimal.Decimal   `json:"amount"`
	DueDate      time.Time         `json:"dueDate"`
	Description  string            `json:"description,omitempty"`
	Status       ledger.DebtStatus `json:"status"`
	PaidAmount   decimal.Decimal   `json:"paidAmount"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    *time.Time        `json:"updatedAt,omitempty"`
}

type metricsResponse struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

type datasetResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Customers    []customerResponse    `json:"customers"`
	Debts        []debtResponse        `json:"debts"`
	Metrics      metricsResponse       `json:"metrics"`
}

func toTransactionResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

func toTransactionResponses(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toTransactionResponse(tx)
	}

	return resp
}

func toCustomerResponse(c *ledger.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCustomerResponses(cs []*ledger.Customer) []customerResponse {
	resp := make([]customerResponse, len(cs))
	for i, c := range cs {
		resp[i] = toCustomerResponse(c)
	}

	return resp
}

func toDebtResponse(d *ledger.Debt) debtResponse {
	return debtResponse{
		ID:           d.ID,
		CustomerName: d.CustomerName,
		Amount:       d.Amount,
		DueDate:      d.DueDate,
		Description:  d.Description,
		Status:       d.Status,
		PaidAmount:   d.PaidAmount,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toDebtResponses(ds []*ledger.Debt) []debtResponse {
	resp := make([]debtResponse, len(ds))
	for i, d := range ds {
		resp[i] = toDebtResponse(d)
	}

	return resp
}

func toMetricsResponse(m ledger.Metrics) metricsResponse {
	return metricsResponse{
		TotalRevenue:  m.TotalRevenue,
		TotalExpenses: m.TotalExpenses,
		NetIncome:     m.NetIncome,
	}
}

func toDatasetResponse(ds *ledger.Dataset) datasetResponse {
	return datasetResponse{
		Transactions: toTransactionResponses(ds.Transactions),
		Customers:    toCustomerResponses(ds.Customers),
		Debts:        toDebtResponses(ds.Debts),
		Metrics:      toMetricsResponse(ds.Metrics),
	}
}
