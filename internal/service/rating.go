package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avoronin/delivery-api/internal/domain"
	"github.com/avoronin/delivery-api/internal/repository"
)

var (
	// ErrUserNotFound is returned when the token subject is not a known user.
	ErrUserNotFound = errors.New("service: user not found")
	// ErrDishNotFound is returned when the rated dish does not exist.
	ErrDishNotFound = errors.New("service: dish not found")
	// ErrValueOutOfRange is returned when a rating value falls outside [0, 10].
	ErrValueOutOfRange = fmt.Errorf("service: rating value must be between %g and %g", domain.RatingMin, domain.RatingMax)
	// ErrNotPurchased is returned when a user first rates a dish without a
	// delivered order containing it.
	ErrNotPurchased = errors.New("service: user did not order this dish")
)

// RatingStore owns persisted rating rows and the dish aggregate-rating field.
// Put must apply the upsert and the aggregate recompute atomically.
type RatingStore interface {
	Get(ctx context.Context, userID, dishID string) (domain.Rating, error)
	Put(ctx context.Context, userID, dishID string, value float64) (domain.Rating, error)
}

// PurchaseLedger answers whether a user has received a dish via a delivered
// order.
type PurchaseLedger interface {
	HasDeliveredOrder(ctx context.Context, userID, dishID string) (bool, error)
}

// UserDirectory resolves whether a token subject maps to a known user.
type UserDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// RatingService orchestrates rating reads and submissions.
type RatingService struct {
	ratings RatingStore
	ledger  PurchaseLedger
	users   UserDirectory
	dishes  DishSource
}

// NewRatingService wires the rating subsystem's collaborators.
func NewRatingService(ratings RatingStore, ledger PurchaseLedger, users UserDirectory, dishes DishSource) *RatingService {
	return &RatingService{ratings: ratings, ledger: ledger, users: users, dishes: dishes}
}

// GetUserRating returns the user's rating for a dish, or nil when the user
// has not rated it. A missing rating is a valid outcome; only a missing user
// is an error.
func (s *RatingService) GetUserRating(ctx context.Context, userID, dishID string) (*domain.Rating, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	rating, err := s.ratings.Get(ctx, userID, dishID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

// PutUserRating records a rating for a dish the user has purchased. An
// existing rating is overwritten unconditionally; a first rating requires a
// delivered order containing the dish. On success the dish's aggregate rating
// equals the mean of all stored ratings, including the one just written.
func (s *RatingService) PutUserRating(ctx context.Context, userID, dishID string, value float64) error {
	if value < domain.RatingMin || value > domain.RatingMax {
		return ErrValueOutOfRange
	}

	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}

	if _, err := s.dishes.GetByID(ctx, dishID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDishNotFound
		}
		return err
	}

	_, err = s.ratings.Get(ctx, userID, dishID)
	switch {
	case err == nil:
		// Re-rating: overwrite without re-checking eligibility.
	case errors.Is(err, repository.ErrNotFound):
		bought, err := s.ledger.HasDeliveredOrder(ctx, userID, dishID)
		if err != nil {
			return err
		}
		if !bought {
			return ErrNotPurchased
		}
	default:
		return err
	}

	_, err = s.ratings.Put(ctx, userID, dishID, value)
	return err
}
