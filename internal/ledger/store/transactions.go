package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfreitas/tally/internal/id"
	"github.com/mfreitas/tally/internal/ledger"
)

const selectTransactionColumns = `
	id, amount, type, category, description, date, created_at, updated_at
`

func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var typeStr string

	if err := s.Scan(
		&tx.ID, &tx.Amount, &typeStr, &tx.Category, &tx.Description, &tx.Date,
		&tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = ledger.Type(typeStr)

	return &tx, nil
}

func listTransactions(ctx context.Context, q querier) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		ORDER BY seq ASC`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func insertTransaction(ctx context.Context, q querier, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (id, amount, type, category, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err := q.QueryRowContext(ctx, query,
		tx.ID,
		tx.Amount,
		tx.Type,
		tx.Category,
		tx.Description,
		tx.Date,
	).Scan(&tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]*ledger.Transaction, error) {
	return listTransactions(ctx, s.db)
}

func (s *Store) GetTransaction(ctx context.Context, txID uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, txID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	tx.ID = id.New()
	if err := insertTransaction(ctx, dbTx, tx); err != nil {
		return err
	}

	if err := recomputeMetrics(ctx, dbTx); err != nil {
		return err
	}

	return dbTx.Commit()
}

// CreateTransactions inserts a batch as one unit with a single metrics
// recompute at the end.
func (s *Store) CreateTransactions(ctx context.Context, txs []*ledger.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, tx := range txs {
		tx.ID = id.New()
		if err := insertTransaction(ctx, dbTx, tx); err != nil {
			return err
		}
	}

	if err := recomputeMetrics(ctx, dbTx); err != nil {
		return err
	}

	return dbTx.Commit()
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE transactions
		SET amount = $1, type = $2, category = $3, description = $4, date = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		tx.Amount,
		tx.Type,
		tx.Category,
		tx.Description,
		tx.Date,
		tx.ID,
	).Scan(&tx.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ledger.ErrNotFound
		}

		return fmt.Errorf("updating transaction: %w", err)
	}

	if err := recomputeMetrics(ctx, dbTx); err != nil {
		return err
	}

	return dbTx.Commit()
}

func (s *Store) DeleteTransaction(ctx context.Context, txID uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	res, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, txID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n == 0 {
		return ledger.ErrNotFound
	}

	if err := recomputeMetrics(ctx, dbTx); err != nil {
		return err
	}

	return dbTx.Commit()
}
