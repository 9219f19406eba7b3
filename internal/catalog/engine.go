package catalog

import (
	"fmt"
	"sort"

	"github.com/avoronin/delivery-api/internal/domain"
)

// SortKey selects the ordering applied to a filtered dish collection. The
// empty key leaves the collection in its natural order.
type SortKey string

const (
	SortDefault   SortKey = ""
	SortNameAsc   SortKey = "name_asc"
	SortNameDesc  SortKey = "name_desc"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortRateAsc   SortKey = "rating_asc"
	SortRateDesc  SortKey = "rating_desc"
)

// ParseSortKey converts a raw query value into a SortKey. An empty value maps
// to SortDefault.
func ParseSortKey(raw string) (SortKey, error) {
	switch key := SortKey(raw); key {
	case SortDefault, SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc, SortRateAsc, SortRateDesc:
		return key, nil
	default:
		return SortDefault, fmt.Errorf("unknown sorting %q", raw)
	}
}

// Filter narrows the dish collection. An empty category set keeps all
// categories; VegetarianOnly=false keeps vegetarian and non-vegetarian alike.
type Filter struct {
	Categories     []domain.DishCategory
	VegetarianOnly bool
}

func (f Filter) matches(d domain.Dish) bool {
	if f.VegetarianOnly && !d.Vegetarian {
		return false
	}
	if len(f.Categories) == 0 {
		return true
	}
	for _, c := range f.Categories {
		if d.Category == c {
			return true
		}
	}
	return false
}

// Unrated dishes sort below every rated dish, so ratingValue maps nil to a
// value just under the valid range.
func ratingValue(d domain.Dish) float64 {
	if d.Rating == nil {
		return domain.RatingMin - 1
	}
	return *d.Rating
}

var comparators = map[SortKey]func(a, b domain.Dish) bool{
	SortNameAsc:   func(a, b domain.Dish) bool { return a.Name < b.Name },
	SortNameDesc:  func(a, b domain.Dish) bool { return a.Name > b.Name },
	SortPriceAsc:  func(a, b domain.Dish) bool { return a.Price < b.Price },
	SortPriceDesc: func(a, b domain.Dish) bool { return a.Price > b.Price },
	SortRateAsc:   func(a, b domain.Dish) bool { return ratingValue(a) < ratingValue(b) },
	SortRateDesc:  func(a, b domain.Dish) bool { return ratingValue(a) > ratingValue(b) },
}

// Apply filters and sorts the full dish collection. The input slice is not
// modified. Sorting is stable: ties keep the collection's original order, so
// repeated calls over the same input produce identical output.
func Apply(dishes []domain.Dish, filter Filter, key SortKey) []domain.Dish {
	result := make([]domain.Dish, 0, len(dishes))
	for _, d := range dishes {
		if filter.matches(d) {
			result = append(result, d)
		}
	}

	if less, ok := comparators[key]; ok {
		sort.SliceStable(result, func(i, j int) bool {
			return less(result[i], result[j])
		})
	}
	return result
}
