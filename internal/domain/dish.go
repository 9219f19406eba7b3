package domain

import (
	"fmt"
	"time"
)

// DishCategory is the fixed set of menu categories.
type DishCategory string

const (
	CategoryWok     DishCategory = "wok"
	CategoryPizza   DishCategory = "pizza"
	CategorySoup    DishCategory = "soup"
	CategoryDessert DishCategory = "dessert"
	CategoryDrink   DishCategory = "drink"
)

// Categories lists every valid dish category.
var Categories = []DishCategory{CategoryWok, CategoryPizza, CategorySoup, CategoryDessert, CategoryDrink}

// ParseDishCategory converts a raw query value into a DishCategory.
func ParseDishCategory(raw string) (DishCategory, error) {
	for _, c := range Categories {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown dish category %q", raw)
}

// Dish represents a single orderable item in the catalog. Rating is nil until
// the first user rating is recorded.
type Dish struct {
	ID          string
	Name        string
	Description *string
	Price       float64
	ImageURL    *string
	Category    DishCategory
	Vegetarian  bool
	Rating      *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
