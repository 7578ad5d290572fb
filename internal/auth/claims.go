package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by every access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
