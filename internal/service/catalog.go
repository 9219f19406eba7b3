package service

import (
	"context"
	"errors"

	"github.com/avoronin/delivery-api/internal/catalog"
	"github.com/avoronin/delivery-api/internal/domain"
)

var (
	// ErrPageNotFound is returned when the requested menu page is empty,
	// either because the page number is past the last page or because no
	// dish matched the filters. The two cases are deliberately
	// indistinguishable to the caller.
	ErrPageNotFound = errors.New("service: page not found")
)

// DishSource is the queryable dish collection backing the catalog.
type DishSource interface {
	List(ctx context.Context) ([]domain.Dish, error)
	GetByID(ctx context.Context, id string) (domain.Dish, error)
}

// MenuQuery carries the caller-supplied menu parameters. Page is 1-indexed.
type MenuQuery struct {
	Categories     []domain.DishCategory
	VegetarianOnly bool
	Sort           catalog.SortKey
	Page           int
}

// Menu is one page of the filtered and sorted catalog.
type Menu struct {
	Dishes []domain.Dish
	Page   domain.PageInfo
}

// CatalogService answers menu requests. Read-only; the page size is fixed at
// construction.
type CatalogService struct {
	dishes   DishSource
	pageSize int
}

// NewCatalogService constructs a CatalogService with the configured page size.
func NewCatalogService(dishes DishSource, pageSize int) *CatalogService {
	return &CatalogService{dishes: dishes, pageSize: pageSize}
}

// GetDishMenu filters, sorts, and paginates the dish collection. The page
// count is derived from the full filtered count before slicing; an empty
// slice fails with ErrPageNotFound.
func (s *CatalogService) GetDishMenu(ctx context.Context, q MenuQuery) (Menu, error) {
	all, err := s.dishes.List(ctx)
	if err != nil {
		return Menu{}, err
	}

	filter := catalog.Filter{
		Categories:     q.Categories,
		VegetarianOnly: q.VegetarianOnly,
	}
	filtered := catalog.Apply(all, filter, q.Sort)

	pageCount := (len(filtered) + s.pageSize - 1) / s.pageSize

	skip := (q.Page - 1) * s.pageSize
	if skip < 0 || skip >= len(filtered) {
		return Menu{}, ErrPageNotFound
	}
	end := skip + s.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return Menu{
		Dishes: filtered[skip:end],
		Page: domain.PageInfo{
			Size:    s.pageSize,
			Count:   pageCount,
			Current: q.Page,
		},
	}, nil
}

// GetDish fetches a single dish by id.
func (s *CatalogService) GetDish(ctx context.Context, id string) (domain.Dish, error) {
	return s.dishes.GetByID(ctx, id)
}
