package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service issues and verifies the signed bearer tokens used for
// authentication. Tokens carry only the user id and are stateless; logout is
// client-side deletion.
type Service struct {
	secret    []byte
	expiresIn time.Duration
}

func NewService(secret string, expiresIn time.Duration) *Service {
	return &Service{
		secret:    []byte(secret),
		expiresIn: expiresIn,
	}
}

// Generate signs a token for the given user id with the configured validity
// window.
func (s *Service) Generate(userID uint) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("token secret is not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": now.Add(s.expiresIn).Unix(),
		"iat": now.Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies the signature and expiry and returns the user id the token
// was issued for.
func (s *Service) Parse(tokenString string) (uint, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return 0, errors.New("invalid token claims")
	}

	idFloat, ok := claims["id"].(float64)
	if !ok || idFloat <= 0 {
		return 0, errors.New("token carries no user id")
	}

	return uint(idFloat), nil
}
