package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfreitas/tally/internal/id"
	"github.com/mfreitas/tally/internal/ledger"
)

const selectDebtColumns = `
	id, customer_name, amount, due_date, description, status, paid_amount, created_at, updated_at
`

func scanDebt(s scanner) (*ledger.Debt, error) {
	var d ledger.Debt

	var statusStr string

	if err := s.Scan(
		&d.ID, &d.CustomerName, &d.Amount, &d.DueDate, &d.Description,
		&statusStr, &d.PaidAmount, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.Status = ledger.DebtStatus(statusStr)

	return &d, nil
}

func listDebts(ctx context.Context, q querier) ([]*ledger.Debt, error) {
	query := `SELECT ` + selectDebtColumns + `
		FROM debts
		ORDER BY seq ASC`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer rows.Close()

	var debts []*ledger.Debt

	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		debts = append(debts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debt rows: %w", err)
	}

	return debts, nil
}

func (s *Store) ListDebts(ctx context.Context) ([]*ledger.Debt, error) {
	return listDebts(ctx, s.db)
}

func (s *Store) GetDebt(ctx context.Context, debtID uuid.UUID) (*ledger.Debt, error) {
	query := `SELECT ` + selectDebtColumns + `
		FROM debts
		WHERE id = $1`

	d, err := scanDebt(s.db.QueryRowContext(ctx, query, debtID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting debt: %w", err)
	}

	return d, nil
}

func (s *Store) CreateDebt(ctx context.Context, d *ledger.Debt) error {
	query := `
		INSERT INTO debts (id, customer_name, amount, due_date, description, status, paid_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`

	d.ID = id.New()

	err := s.db.QueryRowContext(ctx, query,
		d.ID,
		d.CustomerName,
		d.Amount,
		d.DueDate,
		d.Description,
		d.Status,
		d.PaidAmount,
	).Scan(&d.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating debt: %w", err)
	}

	return nil
}

// UpdateDebt rewrites the mutable debt fields. The original owed amount is
// deliberately not part of the update set.
func (s *Store) UpdateDebt(ctx context.Context, d *ledger.Debt) error {
	query := `
		UPDATE debts
		SET customer_name = $1, due_date = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, d.CustomerName, d.DueDate, d.Description, d.ID).
		Scan(&d.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ledger.ErrNotFound
		}

		return fmt.Errorf("updating debt: %w", err)
	}

	return nil
}

func (s *Store) DeleteDebt(ctx context.Context, debtID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM debts WHERE id = $1`, debtID)
	if err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}

	if n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}
