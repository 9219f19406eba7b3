package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avoronin/delivery-api/internal/domain"
)

// DishesRepository provides persistence helpers for dish entities.
type DishesRepository struct {
	pool *pgxpool.Pool
}

const dishColumns = `
    id,
    name,
    description,
    price,
    image_url,
    category,
    vegetarian,
    rating,
    created_at,
    updated_at
`

// DishCreateParams bundles the fields required to create a dish.
type DishCreateParams struct {
	Name        string
	Description *string
	Price       float64
	ImageURL    *string
	Category    domain.DishCategory
	Vegetarian  bool
}

// Create inserts a new dish row and returns the stored entity.
func (r *DishesRepository) Create(ctx context.Context, params DishCreateParams) (domain.Dish, error) {
	query := fmt.Sprintf(`
        INSERT INTO dishes (name, description, price, image_url, category, vegetarian)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING %s
    `, dishColumns)

	row := r.pool.QueryRow(ctx, query, params.Name, params.Description, params.Price, params.ImageURL, params.Category, params.Vegetarian)
	return scanDish(row)
}

// List returns the full dish collection in insertion order. Filtering and
// sorting happen in the catalog query engine, so the stored order here is the
// natural order the engine's stable sort ties break on.
func (r *DishesRepository) List(ctx context.Context) ([]domain.Dish, error) {
	query := fmt.Sprintf(`SELECT %s FROM dishes ORDER BY created_at, id`, dishColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := make([]domain.Dish, 0)
	for rows.Next() {
		dish, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dishes, nil
}

// GetByID fetches a dish by its identifier.
func (r *DishesRepository) GetByID(ctx context.Context, id string) (domain.Dish, error) {
	query := fmt.Sprintf(`SELECT %s FROM dishes WHERE id = $1`, dishColumns)
	dish, err := scanDish(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Dish{}, ErrNotFound
		}
		return domain.Dish{}, err
	}
	return dish, nil
}

func scanDish(row pgx.Row) (domain.Dish, error) {
	var dish domain.Dish
	err := row.Scan(
		&dish.ID,
		&dish.Name,
		&dish.Description,
		&dish.Price,
		&dish.ImageURL,
		&dish.Category,
		&dish.Vegetarian,
		&dish.Rating,
		&dish.CreatedAt,
		&dish.UpdatedAt,
	)
	if err != nil {
		return domain.Dish{}, err
	}
	return dish, nil
}
