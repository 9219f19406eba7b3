package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/avoronin/delivery-api/internal/catalog"
	"github.com/avoronin/delivery-api/internal/domain"
	"github.com/avoronin/delivery-api/internal/repository"
)

// fakeDishSource serves a fixed dish collection from memory.
type fakeDishSource struct {
	dishes []domain.Dish
}

func (f *fakeDishSource) List(ctx context.Context) ([]domain.Dish, error) {
	return f.dishes, nil
}

func (f *fakeDishSource) GetByID(ctx context.Context, id string) (domain.Dish, error) {
	for _, d := range f.dishes {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Dish{}, repository.ErrNotFound
}

func menuIDs(m Menu) []string {
	out := make([]string, 0, len(m.Dishes))
	for _, d := range m.Dishes {
		out = append(out, d.ID)
	}
	return out
}

// The worked example from the menu requirements: three dishes, soup filter,
// price ascending, one dish per page.
func TestGetDishMenu_Example(t *testing.T) {
	source := &fakeDishSource{dishes: []domain.Dish{
		{ID: "A", Name: "A", Price: 5, Category: domain.CategorySoup},
		{ID: "B", Name: "B", Price: 3, Category: domain.CategorySoup},
		{ID: "C", Name: "C", Price: 8, Category: domain.CategoryWok},
	}}
	svc := NewCatalogService(source, 1)

	base := MenuQuery{
		Categories: []domain.DishCategory{domain.CategorySoup},
		Sort:       catalog.SortPriceAsc,
	}

	q := base
	q.Page = 1
	menu, err := svc.GetDishMenu(context.Background(), q)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if !reflect.DeepEqual(menuIDs(menu), []string{"B"}) {
		t.Fatalf("page 1 = %v, want [B]", menuIDs(menu))
	}
	if menu.Page.Count != 2 {
		t.Fatalf("page count = %d, want 2", menu.Page.Count)
	}

	q.Page = 2
	menu, err = svc.GetDishMenu(context.Background(), q)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if !reflect.DeepEqual(menuIDs(menu), []string{"A"}) {
		t.Fatalf("page 2 = %v, want [A]", menuIDs(menu))
	}

	q.Page = 3
	if _, err := svc.GetDishMenu(context.Background(), q); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("page 3 error = %v, want ErrPageNotFound", err)
	}
}

func TestGetDishMenu_PaginationComplete(t *testing.T) {
	dishes := make([]domain.Dish, 7)
	for i := range dishes {
		dishes[i] = domain.Dish{ID: string(rune('a' + i)), Name: string(rune('a' + i)), Category: domain.CategoryWok}
	}
	svc := NewCatalogService(&fakeDishSource{dishes: dishes}, 3)

	first, err := svc.GetDishMenu(context.Background(), MenuQuery{Page: 1})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if first.Page.Count != 3 {
		t.Fatalf("page count = %d, want 3", first.Page.Count)
	}

	// Concatenating all pages reproduces the collection with no gaps or
	// duplicates.
	var collected []string
	for page := 1; page <= first.Page.Count; page++ {
		menu, err := svc.GetDishMenu(context.Background(), MenuQuery{Page: page})
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if menu.Page.Current != page || menu.Page.Size != 3 {
			t.Fatalf("page %d info = %+v", page, menu.Page)
		}
		collected = append(collected, menuIDs(menu)...)
	}

	want := make([]string, 0, len(dishes))
	for _, d := range dishes {
		want = append(want, d.ID)
	}
	if !reflect.DeepEqual(collected, want) {
		t.Fatalf("concatenated pages = %v, want %v", collected, want)
	}

	if _, err := svc.GetDishMenu(context.Background(), MenuQuery{Page: first.Page.Count + 1}); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("past-the-end page error = %v, want ErrPageNotFound", err)
	}
}

func TestGetDishMenu_NoMatches(t *testing.T) {
	svc := NewCatalogService(&fakeDishSource{dishes: []domain.Dish{
		{ID: "1", Category: domain.CategoryPizza},
	}}, 5)

	q := MenuQuery{
		Categories: []domain.DishCategory{domain.CategoryDessert},
		Page:       1,
	}
	if _, err := svc.GetDishMenu(context.Background(), q); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("empty filter result error = %v, want ErrPageNotFound", err)
	}
}

func TestGetDishMenu_LastPartialPage(t *testing.T) {
	dishes := []domain.Dish{
		{ID: "1", Category: domain.CategoryWok},
		{ID: "2", Category: domain.CategoryWok},
		{ID: "3", Category: domain.CategoryWok},
		{ID: "4", Category: domain.CategoryWok},
	}
	svc := NewCatalogService(&fakeDishSource{dishes: dishes}, 3)

	menu, err := svc.GetDishMenu(context.Background(), MenuQuery{Page: 2})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(menu.Dishes) != 1 || menu.Dishes[0].ID != "4" {
		t.Fatalf("partial page = %v", menuIDs(menu))
	}
	if menu.Page.Count != 2 {
		t.Fatalf("page count = %d, want 2", menu.Page.Count)
	}
}

func TestGetDish(t *testing.T) {
	svc := NewCatalogService(&fakeDishSource{dishes: []domain.Dish{{ID: "1", Name: "Tom Yum"}}}, 5)

	dish, err := svc.GetDish(context.Background(), "1")
	if err != nil || dish.Name != "Tom Yum" {
		t.Fatalf("GetDish = %+v, %v", dish, err)
	}
	if _, err := svc.GetDish(context.Background(), "2"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("missing dish error = %v, want ErrNotFound", err)
	}
}
