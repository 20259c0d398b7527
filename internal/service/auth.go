package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the validity window of issued tokens.
const TokenTTL = 2 * time.Hour

// TokenClaims is the verified identity carried by a token.
type TokenClaims struct {
	UserID uint
	Email  string
}

// AuthService mints and verifies signed identity tokens. It is stateless:
// verification is a pure function of the token and the signing secret, and
// issuing persists nothing.
type AuthService struct {
	secret []byte
	now    func() time.Time
}

// NewAuthService creates an AuthService with the process signing secret.
func NewAuthService(secret string) *AuthService {
	return &AuthService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// IssueToken returns a signed token asserting the given identity for the
// next TokenTTL.
func (s *AuthService) IssueToken(userID uint, email string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken verifies signature and validity window and returns the
// embedded identity. Failures map onto ErrTokenExpired for an elapsed
// window and ErrTokenInvalid for everything else.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return &TokenClaims{UserID: uint(id), Email: email}, nil
}
