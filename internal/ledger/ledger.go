package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a record id does not match any stored record.
var ErrNotFound = errors.New("record not found")

// ValidationError reports one or more invalid input fields.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// DebtStatus represents the payment state of a debt. It is derived from
// PaidAmount, never set directly by callers.
type DebtStatus string

const (
	DebtUnpaid  DebtStatus = "unpaid"
	DebtPartial DebtStatus = "partial"
	DebtPaid    DebtStatus = "paid"
)

// Collection names the three record collections of the dataset.
type Collection string

const (
	CollectionTransactions Collection = "transactions"
	CollectionCustomers    Collection = "customers"
	CollectionDebts        Collection = "debts"
)

// Transaction is a single income or expense entry.
type Transaction struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Type        Type
	Category    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Customer is a business contact. Debts reference customers by name only;
// there is no enforced link between the two collections.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Debt is money owed to the business. Amount is the original owed amount and
// never changes after creation; PaidAmount accumulates payments.
type Debt struct {
	ID           uuid.UUID
	CustomerName string
	Amount       decimal.Decimal
	DueDate      time.Time
	Description  string
	Status       DebtStatus
	PaidAmount   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Dataset is the full ledger: all three collections plus the derived metrics.
type Dataset struct {
	Transactions []*Transaction
	Customers    []*Customer
	Debts        []*Debt
	Metrics      Metrics
}

// DebtStatusFor derives a debt's status from its owed and paid amounts.
// A zero or negative paid amount still yields "partial" when a payment has
// been applied; "unpaid" is only assigned at creation.
func DebtStatusFor(owed, paid decimal.Decimal) DebtStatus {
	if paid.GreaterThanOrEqual(owed) {
		return DebtPaid
	}

	return DebtPartial
}
