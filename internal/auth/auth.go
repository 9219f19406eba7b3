package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the token payload this service cares about. Sub holds the
// user id.
type Claims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for the given user id. Token issuance
// belongs to the account service; this exists for the seed command and tests.
func GenerateToken(secret, userID string, ttl time.Duration) (string, error) {
	claims := Claims{
		Sub: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a bearer token and returns the user id it carries.
func ParseToken(secret, tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Sub == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Sub, nil
}

type contextKey string

const userIDKey contextKey = "userID"

// ContextWithUserID returns a new context carrying the authenticated user id.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFrom retrieves the authenticated user id, or "" when absent.
func UserIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}
