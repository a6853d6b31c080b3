package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfreitas/tally/internal/id"
	"github.com/mfreitas/tally/internal/ledger"
)

const selectCustomerColumns = `
	id, name, phone, email, created_at, updated_at
`

func scanCustomer(s scanner) (*ledger.Customer, error) {
	var c ledger.Customer

	if err := s.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

func listCustomers(ctx context.Context, q querier) ([]*ledger.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + `
		FROM customers
		ORDER BY seq ASC`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*ledger.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]*ledger.Customer, error) {
	return listCustomers(ctx, s.db)
}

func (s *Store) GetCustomer(ctx context.Context, customerID uuid.UUID) (*ledger.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + `
		FROM customers
		WHERE id = $1`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, customerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *ledger.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, email, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	c.ID = id.New()

	err := s.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Phone, c.Email).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *ledger.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, phone = $2, email = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Phone, c.Email, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ledger.ErrNotFound
		}

		return fmt.Errorf("updating customer: %w", err)
	}

	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	if n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}
