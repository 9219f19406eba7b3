package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avoronin/delivery-api/internal/domain"
)

// RatingsRepository provides helpers for dish ratings.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

// Get retrieves a rating for a specific user/dish combination.
func (r *RatingsRepository) Get(ctx context.Context, userID, dishID string) (domain.Rating, error) {
	const query = `
        SELECT user_id, dish_id, value, created_at, updated_at
        FROM ratings
        WHERE user_id = $1 AND dish_id = $2
    `
	var rating domain.Rating
	err := r.pool.QueryRow(ctx, query, userID, dishID).Scan(
		&rating.UserID,
		&rating.DishID,
		&rating.Value,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Rating{}, ErrNotFound
		}
		return domain.Rating{}, err
	}
	return rating, nil
}

// Put upserts a rating and recomputes the dish's aggregate rating in a single
// transaction, so the aggregate can never be observed out of sync with the
// rating rows. The upsert is keyed on (user_id, dish_id): concurrent first
// submissions for the same pair collapse into one row instead of duplicating.
func (r *RatingsRepository) Put(ctx context.Context, userID, dishID string, value float64) (domain.Rating, error) {
	const upsert = `
        INSERT INTO ratings (user_id, dish_id, value)
        VALUES ($1,$2,$3)
        ON CONFLICT (user_id, dish_id)
        DO UPDATE SET value = EXCLUDED.value, updated_at = now()
        RETURNING user_id, dish_id, value, created_at, updated_at
    `
	const recompute = `
        UPDATE dishes
        SET rating = (SELECT AVG(value) FROM ratings WHERE dish_id = $1),
            updated_at = now()
        WHERE id = $1
    `

	var rating domain.Rating
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, upsert, userID, dishID, value).Scan(
			&rating.UserID,
			&rating.DishID,
			&rating.Value,
			&rating.CreatedAt,
			&rating.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert rating: %w", err)
		}

		tag, err := tx.Exec(ctx, recompute, dishID)
		if err != nil {
			return fmt.Errorf("recompute dish rating: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Rating{}, ErrNotFound
		}
		return domain.Rating{}, err
	}
	return rating, nil
}
