package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"syndic/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by a session token. The role and profile id come from the
// credential row at login time, so handlers never trust client-supplied role
// strings.
type Claims struct {
	UserID    string      `json:"user_id"`
	Role      models.Role `json:"role"`
	ProfileID uint        `json:"profile_id"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

func (t *Tokens) Issue(cred *models.Credential) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    cred.UserID,
		Role:      cred.Role,
		ProfileID: cred.ProfileID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cred.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *Tokens) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
