package ledger

import "github.com/shopspring/decimal"

// Metrics are the aggregate figures derived from the transaction collection.
// They are always a full fold over the current transactions, never maintained
// incrementally.
type Metrics struct {
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetIncome     decimal.Decimal
}

// ZeroMetrics returns metrics for an empty transaction collection.
func ZeroMetrics() Metrics {
	return Metrics{
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
		NetIncome:     decimal.Zero,
	}
}

// ComputeMetrics folds the given transactions into aggregate metrics.
// Unknown transaction types contribute to neither total.
func ComputeMetrics(txs []*Transaction) Metrics {
	revenue := decimal.Zero
	expenses := decimal.Zero

	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			revenue = revenue.Add(tx.Amount)
		case TypeExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}

	return Metrics{
		TotalRevenue:  revenue,
		TotalExpenses: expenses,
		NetIncome:     revenue.Sub(expenses),
	}
}
