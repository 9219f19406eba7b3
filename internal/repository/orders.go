package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avoronin/delivery-api/internal/domain"
)

// OrdersRepository is a read-mostly view over order history. The order
// placement workflow itself lives outside this service; rating eligibility
// only needs to know what has been delivered.
type OrdersRepository struct {
	pool *pgxpool.Pool
}

// HasDeliveredOrder reports whether the user has at least one delivered order
// containing the dish.
func (r *OrdersRepository) HasDeliveredOrder(ctx context.Context, userID, dishID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1
            FROM orders o
            JOIN order_dishes od ON od.order_id = o.id
            WHERE o.user_id = $1 AND o.status = $2 AND od.dish_id = $3
        )
    `
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, domain.OrderDelivered, dishID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check delivered order: %w", err)
	}
	return exists, nil
}

// CreateWithDishes inserts an order with its line items in one transaction.
// Used by the seed command and tests to build order history.
func (r *OrdersRepository) CreateWithDishes(ctx context.Context, userID string, status domain.OrderStatus, dishIDs []string) (string, error) {
	var orderID string
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const insertOrder = `
            INSERT INTO orders (user_id, status)
            VALUES ($1,$2)
            RETURNING id
        `
		if err := tx.QueryRow(ctx, insertOrder, userID, status).Scan(&orderID); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		const insertLine = `
            INSERT INTO order_dishes (order_id, dish_id, amount)
            VALUES ($1,$2,1)
            ON CONFLICT (order_id, dish_id) DO UPDATE SET amount = order_dishes.amount + 1
        `
		for _, dishID := range dishIDs {
			if _, err := tx.Exec(ctx, insertLine, orderID, dishID); err != nil {
				return fmt.Errorf("insert order line: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}
