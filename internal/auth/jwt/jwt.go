package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vidora/vidora/internal/domain/model"
)

// AccessClaims carry the denormalized identity so request handlers can
// render responses without a user lookup.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Handle   string `json:"handle"`
	FullName string `json:"fullName"`
}

// RefreshClaims carry only the subject. The token is long-lived, so the
// claim surface stays minimal.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

type TokenUtil interface {
	GenerateAccessToken(user model.User) (token string, exp time.Time, err error)
	GenerateRefreshToken(userID uuid.UUID) (token string, exp time.Time, err error)
	ValidateAccessToken(token string) (AccessClaims, error)
	ValidateRefreshToken(token string) (RefreshClaims, error)
}
