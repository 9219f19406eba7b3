package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avoronin/delivery-api/internal/auth"
	"github.com/avoronin/delivery-api/internal/catalog"
	"github.com/avoronin/delivery-api/internal/domain"
	"github.com/avoronin/delivery-api/internal/repository"
	"github.com/avoronin/delivery-api/internal/service"
)

const maxRequestBody = 1 << 20 // 1 MiB

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type dishResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Image       *string  `json:"image,omitempty"`
	Category    string   `json:"category"`
	Vegetarian  bool     `json:"vegetarian"`
	Rating      *float64 `json:"rating"`
}

type menuResponse struct {
	Dishes     []dishResponse  `json:"dishes"`
	Pagination domain.PageInfo `json:"pagination"`
}

type ratingRequest struct {
	Value *float64 `json:"value" validate:"required,gte=0,lte=10"`
}

type userRatingResponse struct {
	Value *float64 `json:"value"`
}

func (s *Server) handleGetMenu(w http.ResponseWriter, r *http.Request) {
	query, err := buildMenuQuery(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	menu, err := s.catalog.GetDishMenu(r.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Page not found")
			return
		}
		s.logger.Printf("get dish menu error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch menu")
		return
	}

	dishes := make([]dishResponse, 0, len(menu.Dishes))
	for _, dish := range menu.Dishes {
		dishes = append(dishes, toDishResponse(dish))
	}
	s.respondJSON(w, http.StatusOK, menuResponse{Dishes: dishes, Pagination: menu.Page})
}

// buildMenuQuery parses and validates menu query parameters. The category
// parameter repeats; an absent vegetarian flag means "no filter" and an
// absent page means page 1.
func buildMenuQuery(values url.Values) (service.MenuQuery, error) {
	query := service.MenuQuery{Page: 1}

	for _, raw := range values["category"] {
		category, err := domain.ParseDishCategory(strings.TrimSpace(raw))
		if err != nil {
			return query, err
		}
		query.Categories = append(query.Categories, category)
	}

	if val := strings.TrimSpace(values.Get("vegetarian")); val != "" {
		vegetarian, err := strconv.ParseBool(val)
		if err != nil {
			return query, fmt.Errorf("invalid vegetarian value")
		}
		query.VegetarianOnly = vegetarian
	}

	sortKey, err := catalog.ParseSortKey(strings.TrimSpace(values.Get("sorting")))
	if err != nil {
		return query, err
	}
	query.Sort = sortKey

	if val := strings.TrimSpace(values.Get("page")); val != "" {
		page, err := strconv.Atoi(val)
		if err != nil || page < 1 {
			return query, fmt.Errorf("page must be a positive integer")
		}
		query.Page = page
	}

	return query, nil
}

func (s *Server) handleGetDish(w http.ResponseWriter, r *http.Request) {
	dishID, err := dishIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	dish, err := s.catalog.GetDish(r.Context(), dishID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Dish not found")
			return
		}
		s.logger.Printf("get dish error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch dish")
		return
	}
	s.respondJSON(w, http.StatusOK, toDishResponse(dish))
}

func (s *Server) handleGetUserRating(w http.ResponseWriter, r *http.Request) {
	dishID, err := dishIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	userID := auth.UserIDFrom(r.Context())

	rating, err := s.ratings.GetUserRating(r.Context(), userID, dishID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		s.logger.Printf("get user rating error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch rating")
		return
	}

	resp := userRatingResponse{}
	if rating != nil {
		resp.Value = &rating.Value
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePutUserRating(w http.ResponseWriter, r *http.Request) {
	dishID, err := dishIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	userID := auth.UserIDFrom(r.Context())

	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if details := validateStruct(req); len(details) > 0 {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid rating payload",
			Details: details,
		})
		return
	}

	if err := s.ratings.PutUserRating(r.Context(), userID, dishID, *req.Value); err != nil {
		switch {
		case errors.Is(err, service.ErrValueOutOfRange):
			s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrDishNotFound):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Dish not found")
		case errors.Is(err, service.ErrNotPurchased):
			s.respondError(w, http.StatusForbidden, "FORBIDDEN", "User did not order this dish")
		default:
			s.logger.Printf("put user rating error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save rating")
		}
		return
	}

	s.respondJSON(w, http.StatusOK, userRatingResponse{Value: req.Value})
}

func dishIDParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid dish id")
	}
	return id.String(), nil
}

func toDishResponse(dish domain.Dish) dishResponse {
	return dishResponse{
		ID:          dish.ID,
		Name:        dish.Name,
		Description: dish.Description,
		Price:       dish.Price,
		Image:       dish.ImageURL,
		Category:    string(dish.Category),
		Vegetarian:  dish.Vegetarian,
		Rating:      dish.Rating,
	}
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}
