package store

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindCategory(ctx context.Context, description string) (string, error) {
	query := `
		SELECT category
		FROM category_mappings
		WHERE $1 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, description).Scan(&category)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding category: %w", err)
	}

	return category, nil
}

func (s *Store) CreateMapping(ctx context.Context, pattern, category string) error {
	query := `
		INSERT INTO category_mappings (pattern, category, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, pattern, category)
	if err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
