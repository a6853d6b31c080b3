package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mfreitas/tally/internal/ledger"
)

func TestValidateTransaction(t *testing.T) {
	type testCase struct {
		name     string
		params   ledger.TransactionParams
		wantMsgs []string
	}

	tests := []testCase{
		{
			name: "Valid",
			params: ledger.TransactionParams{
				Amount:   decimal.NewFromInt(100),
				Type:     ledger.TypeIncome,
				Category: "Sales",
			},
			wantMsgs: nil,
		},
		{
			name: "ZeroAmount",
			params: ledger.TransactionParams{
				Amount:   decimal.Zero,
				Type:     ledger.TypeIncome,
				Category: "X",
			},
			wantMsgs: []string{"Valid amount is required"},
		},
		{
			name: "NegativeAmountPasses",
			params: ledger.TransactionParams{
				Amount:   decimal.NewFromInt(-50),
				Type:     ledger.TypeExpense,
				Category: "Rent",
			},
			wantMsgs: nil,
		},
		{
			name: "BadType",
			params: ledger.TransactionParams{
				Amount:   decimal.NewFromInt(10),
				Type:     ledger.Type("transfer"),
				Category: "Misc",
			},
			wantMsgs: []string{"Type must be income or expense"},
		},
		{
			name:   "AllMissing",
			params: ledger.TransactionParams{},
			wantMsgs: []string{
				"Valid amount is required",
				"Type must be income or expense",
				"Category is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsgs, ledger.ValidateTransaction(tt.params))
		})
	}
}

func TestValidateCustomer(t *testing.T) {
	type testCase struct {
		name     string
		params   ledger.CustomerParams
		wantMsgs []string
	}

	tests := []testCase{
		{
			name:     "Valid",
			params:   ledger.CustomerParams{Name: "Ali", Phone: "555-0100"},
			wantMsgs: nil,
		},
		{
			name:     "EmailOptional",
			params:   ledger.CustomerParams{Name: "Ali", Phone: "555-0100", Email: ""},
			wantMsgs: nil,
		},
		{
			name:     "MissingPhone",
			params:   ledger.CustomerParams{Name: "A"},
			wantMsgs: []string{"Phone is required"},
		},
		{
			name:     "MissingBoth",
			params:   ledger.CustomerParams{},
			wantMsgs: []string{"Name is required", "Phone is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsgs, ledger.ValidateCustomer(tt.params))
		})
	}
}

func TestValidateDebt(t *testing.T) {
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name     string
		params   ledger.DebtParams
		wantMsgs []string
	}

	tests := []testCase{
		{
			name: "Valid",
			params: ledger.DebtParams{
				CustomerName: "Ali",
				Amount:       decimal.NewFromInt(500),
				DueDate:      due,
			},
			wantMsgs: nil,
		},
		{
			name: "MissingDueDate",
			params: ledger.DebtParams{
				CustomerName: "Ali",
				Amount:       decimal.NewFromInt(500),
			},
			wantMsgs: []string{"Due date is required"},
		},
		{
			name: "MissingCustomerAndAmount",
			params: ledger.DebtParams{
				DueDate: due,
			},
			wantMsgs: []string{"Customer name is required", "Valid amount is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsgs, ledger.ValidateDebt(tt.params))
		})
	}
}
