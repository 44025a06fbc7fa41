package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and verifies HS256 tokens with a single shared secret.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManagerFromEnv builds a JWTManager from the environment.
//
// - JWT_SECRET: signing secret for HS256 (required)
// - JWT_ISSUER: iss claim value (optional, defaults to "mindmate")
func NewJWTManagerFromEnv() (*JWTManager, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "mindmate"
	}

	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    24 * time.Hour,
	}, nil
}

func (m *JWTManager) Sign(subject, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"iss":   m.issuer,
		"exp":   time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *JWTManager) Parse(tokenString string) (string, string, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", "", fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return "", "", fmt.Errorf("token missing sub claim")
	}

	return sub, email, nil
}
