package domain

import "time"

// RatingMin and RatingMax bound the accepted rating value, inclusive.
const (
	RatingMin = 0.0
	RatingMax = 10.0
)

// Rating is one user's rating for one dish. At most one row exists per
// (user, dish) pair; re-rating overwrites the value.
type Rating struct {
	UserID    string
	DishID    string
	Value     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PageInfo describes the pagination of a menu response. Computed per request,
// never persisted.
type PageInfo struct {
	Size    int `json:"size"`
	Count   int `json:"count"`
	Current int `json:"current"`
}
