package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UsersRepository backs user-existence checks for token subjects. Account
// registration and profile management live outside this service.
type UsersRepository struct {
	pool *pgxpool.Pool
}

// Exists reports whether a user with the given id is known.
func (r *UsersRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return exists, nil
}

// Create inserts a user row and returns its id. Used by the seed command and
// tests.
func (r *UsersRepository) Create(ctx context.Context, email, fullName string) (string, error) {
	const query = `
        INSERT INTO users (email, full_name)
        VALUES ($1,$2)
        RETURNING id
    `
	var id string
	if err := r.pool.QueryRow(ctx, query, email, fullName).Scan(&id); err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}
