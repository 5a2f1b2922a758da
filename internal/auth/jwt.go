package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aura-events/venues/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims holds JWT claims identifying the principal and its type.
type Claims struct {
	PrincipalID   int64  `json:"principal_id"`
	PrincipalType string `json:"principal_type"`
	jwt.RegisteredClaims
}

// Principal returns the identity carried by the claims.
func (c *Claims) Principal() models.Principal {
	return models.Principal{ID: c.PrincipalID, Type: c.PrincipalType}
}

// JWTService handles token generation and validation.
type JWTService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewJWTService creates a JWT service.
func NewJWTService(secret string, expireHours int) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		lifetime: time.Duration(expireHours) * time.Hour,
		now:      time.Now,
	}
}

// Generate creates a new signed token for the principal.
func (s *JWTService) Generate(principalID int64, principalType string) (string, error) {
	now := s.now()
	claims := Claims{
		PrincipalID:   principalID,
		PrincipalType: principalType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and validates a JWT, returning claims or ErrInvalidToken.
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.PrincipalType == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
