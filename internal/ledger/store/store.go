// Package store owns the durable ledger dataset. All reads and writes go
// through it, and every mutation of the transaction collection recomputes the
// stored metrics inside the same database transaction, so the aggregates can
// never drift from the fold over the stored transactions.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mfreitas/tally/internal/id"
	"github.com/mfreitas/tally/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// recomputeMetrics folds the full transaction set into the metrics row. It
// runs on the given querier so mutations can include it in their transaction.
func recomputeMetrics(ctx context.Context, q querier) error {
	txs, err := listTransactions(ctx, q)
	if err != nil {
		return fmt.Errorf("loading transactions for metrics: %w", err)
	}

	m := ledger.ComputeMetrics(txs)

	query := `
		UPDATE metrics
		SET total_revenue = $1, total_expenses = $2, net_income = $3, updated_at = NOW()
		WHERE id = 1
	`

	if _, err := q.ExecContext(ctx, query, m.TotalRevenue, m.TotalExpenses, m.NetIncome); err != nil {
		return fmt.Errorf("storing metrics: %w", err)
	}

	return nil
}

func (s *Store) Metrics(ctx context.Context) (ledger.Metrics, error) {
	return readMetrics(ctx, s.db)
}

func readMetrics(ctx context.Context, q querier) (ledger.Metrics, error) {
	query := `SELECT total_revenue, total_expenses, net_income FROM metrics WHERE id = 1`

	var m ledger.Metrics
	if err := q.QueryRowContext(ctx, query).Scan(&m.TotalRevenue, &m.TotalExpenses, &m.NetIncome); err != nil {
		return ledger.Metrics{}, fmt.Errorf("reading metrics: %w", err)
	}

	return m, nil
}

// Dataset returns the entire ledger in one consistent snapshot.
func (s *Store) Dataset(ctx context.Context) (*ledger.Dataset, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("beginning read transaction: %w", err)
	}
	defer tx.Rollback()

	ds := &ledger.Dataset{}

	if ds.Transactions, err = listTransactions(ctx, tx); err != nil {
		return nil, err
	}

	if ds.Customers, err = listCustomers(ctx, tx); err != nil {
		return nil, err
	}

	if ds.Debts, err = listDebts(ctx, tx); err != nil {
		return nil, err
	}

	if ds.Metrics, err = readMetrics(ctx, tx); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing read transaction: %w", err)
	}

	return ds, nil
}

// ApplyDebtPayment updates the debt and records the payment transaction in a
// single database transaction. Either both records land or neither does, and
// the metrics are recomputed before the commit.
func (s *Store) ApplyDebtPayment(ctx context.Context, debt *ledger.Debt, payment *ledger.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	debtQuery := `
		UPDATE debts
		SET paid_amount = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`

	err = dbTx.QueryRowContext(ctx, debtQuery, debt.PaidAmount, debt.Status, debt.ID).
		Scan(&debt.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ledger.ErrNotFound
		}

		return fmt.Errorf("updating debt: %w", err)
	}

	payment.ID = id.New()
	if err := insertTransaction(ctx, dbTx, payment); err != nil {
		return err
	}

	if err := recomputeMetrics(ctx, dbTx); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing debt payment: %w", err)
	}

	return nil
}
