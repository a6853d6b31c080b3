// Package export renders ledger collections as CSV for spreadsheets.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/mfreitas/tally/internal/ledger"
)

type Service struct {
	ledger *ledger.Service
}

func NewService(ledgerSvc *ledger.Service) *Service {
	return &Service{ledger: ledgerSvc}
}

var transactionHeader = []string{"id", "date", "type", "category", "amount", "description", "created_at"}

// WriteTransactionsCSV streams all transactions to w in insertion order.
func (s *Service) WriteTransactionsCSV(ctx context.Context, w io.Writer) error {
	txs, err := s.ledger.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(transactionHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		row := []string{
			tx.ID.String(),
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			tx.Category,
			tx.Amount.StringFixed(2),
			tx.Description,
			tx.CreatedAt.Format("2006-01-02"),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}
