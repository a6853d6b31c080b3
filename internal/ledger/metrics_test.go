package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mfreitas/tally/internal/ledger"
)

func tx(amount int64, typ ledger.Type) *ledger.Transaction {
	return &ledger.Transaction{Amount: decimal.NewFromInt(amount), Type: typ}
}

func TestComputeMetrics(t *testing.T) {
	type testCase struct {
		name         string
		txs          []*ledger.Transaction
		wantRevenue  int64
		wantExpenses int64
		wantNet      int64
	}

	tests := []testCase{
		{
			name: "Empty",
		},
		{
			name:        "SingleIncome",
			txs:         []*ledger.Transaction{tx(100, ledger.TypeIncome)},
			wantRevenue: 100,
			wantNet:     100,
		},
		{
			name: "Mixed",
			txs: []*ledger.Transaction{
				tx(100, ledger.TypeIncome),
				tx(40, ledger.TypeExpense),
				tx(60, ledger.TypeIncome),
			},
			wantRevenue:  160,
			wantExpenses: 40,
			wantNet:      120,
		},
		{
			name:    "ExpensesExceedRevenue",
			txs:     []*ledger.Transaction{tx(10, ledger.TypeIncome), tx(25, ledger.TypeExpense)},
			wantRevenue:  10,
			wantExpenses: 25,
			wantNet:      -15,
		},
		{
			name: "UnknownTypeIgnored",
			txs: []*ledger.Transaction{
				tx(100, ledger.TypeIncome),
				tx(999, ledger.Type("transfer")),
			},
			wantRevenue: 100,
			wantNet:     100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.ComputeMetrics(tt.txs)

			assert.True(t, got.TotalRevenue.Equal(decimal.NewFromInt(tt.wantRevenue)),
				"revenue = %s", got.TotalRevenue)
			assert.True(t, got.TotalExpenses.Equal(decimal.NewFromInt(tt.wantExpenses)),
				"expenses = %s", got.TotalExpenses)
			assert.True(t, got.NetIncome.Equal(decimal.NewFromInt(tt.wantNet)),
				"net = %s", got.NetIncome)
		})
	}
}

// The metrics invariant: the stored aggregates always equal the fold over the
// current transaction set. Walk the create/create/delete scenario and check the
// fold at every step.
func TestComputeMetrics_Scenario(t *testing.T) {
	var txs []*ledger.Transaction

	m := ledger.ComputeMetrics(txs)
	assert.True(t, m.TotalRevenue.IsZero())
	assert.True(t, m.NetIncome.IsZero())

	sale := tx(100, ledger.TypeIncome)
	txs = append(txs, sale)
	m = ledger.ComputeMetrics(txs)
	assert.True(t, m.TotalRevenue.Equal(decimal.NewFromInt(100)))
	assert.True(t, m.NetIncome.Equal(decimal.NewFromInt(100)))

	rent := tx(40, ledger.TypeExpense)
	txs = append(txs, rent)
	m = ledger.ComputeMetrics(txs)
	assert.True(t, m.TotalExpenses.Equal(decimal.NewFromInt(40)))
	assert.True(t, m.NetIncome.Equal(decimal.NewFromInt(60)))

	txs = []*ledger.Transaction{sale}
	m = ledger.ComputeMetrics(txs)
	assert.True(t, m.TotalExpenses.IsZero())
	assert.True(t, m.NetIncome.Equal(decimal.NewFromInt(100)))
}

func TestDebtStatusFor(t *testing.T) {
	owed := decimal.NewFromInt(500)

	assert.Equal(t, ledger.DebtPartial, ledger.DebtStatusFor(owed, decimal.NewFromInt(200)))
	assert.Equal(t, ledger.DebtPaid, ledger.DebtStatusFor(owed, decimal.NewFromInt(500)))
	assert.Equal(t, ledger.DebtPaid, ledger.DebtStatusFor(owed, decimal.NewFromInt(600)))
	// No lower bound: a zero paid amount after a payment is still "partial".
	assert.Equal(t, ledger.DebtPartial, ledger.DebtStatusFor(owed, decimal.Zero))
}
