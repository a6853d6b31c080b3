package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	ListTransactions(ctx context.Context) ([]*Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	ListCustomers(ctx context.Context) ([]*Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	CreateCustomer(ctx context.Context, c *Customer) error
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	ListDebts(ctx context.Context) ([]*Debt, error)
	GetDebt(ctx context.Context, id uuid.UUID) (*Debt, error)
	CreateDebt(ctx context.Context, d *Debt) error
	UpdateDebt(ctx context.Context, d *Debt) error
	DeleteDebt(ctx context.Context, id uuid.UUID) error

	// ApplyDebtPayment persists the updated debt and the payment transaction
	// in a single storage transaction. Either both records land or neither.
	ApplyDebtPayment(ctx context.Context, debt *Debt, payment *Transaction) error

	Metrics(ctx context.Context) (Metrics, error)
	Dataset(ctx context.Context) (*Dataset, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type TransactionParams struct {
	Amount      decimal.Decimal
	Type        Type
	Category    string
	Description string
	Date        time.Time
}

type CustomerParams struct {
	Name  string
	Phone string
	Email string
}

type DebtParams struct {
	CustomerName string
	Amount       decimal.Decimal
	DueDate      time.Time
	Description  string
}

func (s *Service) CreateTransaction(ctx context.Context, params TransactionParams) (*Transaction, error) {
	if msgs := ValidateTransaction(params); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	tx := newTransaction(params)
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateTransactionBatch validates and stores a batch of transactions as one
// unit, used by statement import. A single invalid row rejects the batch.
func (s *Service) CreateTransactionBatch(ctx context.Context, params []TransactionParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	var msgs []string

	for i, p := range params {
		for _, msg := range ValidateTransaction(p) {
			msgs = append(msgs, fmt.Sprintf("row %d: %s", i+1, msg))
		}
	}

	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = newTransaction(p)
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, err
	}

	return txs, nil
}

func (s *Service) ListTransactions(ctx context.Context) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx)
}

func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) UpdateTransaction(ctx context.Context, tx *Transaction) error {
	return s.repo.UpdateTransaction(ctx, tx)
}

func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func (s *Service) CreateCustomer(ctx context.Context, params CustomerParams) (*Customer, error) {
	if msgs := ValidateCustomer(params); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	c := &Customer{
		Name:  params.Name,
		Phone: params.Phone,
		Email: params.Email,
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) UpdateCustomer(ctx context.Context, c *Customer) error {
	return s.repo.UpdateCustomer(ctx, c)
}

func (s *Service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCustomer(ctx, id)
}

func (s *Service) CreateDebt(ctx context.Context, params DebtParams) (*Debt, error) {
	if msgs := ValidateDebt(params); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	d := &Debt{
		CustomerName: params.CustomerName,
		Amount:       params.Amount,
		DueDate:      params.DueDate,
		Description:  params.Description,
		Status:       DebtUnpaid,
		PaidAmount:   decimal.Zero,
	}
	if err := s.repo.CreateDebt(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) ListDebts(ctx context.Context) ([]*Debt, error) {
	return s.repo.ListDebts(ctx)
}

func (s *Service) GetDebt(ctx context.Context, id uuid.UUID) (*Debt, error) {
	return s.repo.GetDebt(ctx, id)
}

func (s *Service) UpdateDebt(ctx context.Context, d *Debt) error {
	return s.repo.UpdateDebt(ctx, d)
}

func (s *Service) DeleteDebt(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDebt(ctx, id)
}

// PayDebt applies a payment to a debt and records it as an income transaction
// in the category "Debt Repayment". Overpayment is allowed: the debt is marked
// paid and PaidAmount may exceed Amount. The payment amount is intentionally
// not checked for positivity, matching the validators' leniency elsewhere.
func (s *Service) PayDebt(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*Debt, error) {
	debt, err := s.repo.GetDebt(ctx, id)
	if err != nil {
		return nil, err
	}

	debt.PaidAmount = debt.PaidAmount.Add(amount)
	debt.Status = DebtStatusFor(debt.Amount, debt.PaidAmount)

	desc := debt.Description
	if desc == "" {
		desc = "Debt"
	}

	payment := &Transaction{
		Amount:      amount,
		Type:        TypeIncome,
		Category:    "Debt Repayment",
		Description: fmt.Sprintf("Payment for debt: %s (%s)", desc, debt.CustomerName),
		Date:        time.Now(),
	}

	if err := s.repo.ApplyDebtPayment(ctx, debt, payment); err != nil {
		return nil, fmt.Errorf("applying debt payment: %w", err)
	}

	return debt, nil
}

func (s *Service) Metrics(ctx context.Context) (Metrics, error) {
	return s.repo.Metrics(ctx)
}

// Dataset returns the whole ledger for bulk display.
func (s *Service) Dataset(ctx context.Context) (*Dataset, error) {
	return s.repo.Dataset(ctx)
}

func newTransaction(p TransactionParams) *Transaction {
	date := p.Date
	if date.IsZero() {
		date = time.Now()
	}

	return &Transaction{
		Amount:      p.Amount,
		Type:        p.Type,
		Category:    p.Category,
		Description: p.Description,
		Date:        date,
	}
}
