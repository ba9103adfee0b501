// Package auth mints and validates the JWT that gates the teacher control
// connection. There is exactly one principal — the teacher who knows the
// session passphrase — so, unlike a multi-user JWT layer, there is no
// per-user claim beyond the session this token was minted for.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joinquiz/server/internal/config"
)

// Common errors returned by ValidateToken.
var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims identifies a validated teacher control connection.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RoleTeacher is the only role this token is ever minted for today; kept as
// a named constant so a future student-auth token (if ever added) has
// somewhere obvious to diverge from.
const RoleTeacher = "teacher"

// JWTManager mints and validates teacher control-connection tokens.
type JWTManager struct {
	config config.JWTConfig
}

// NewJWTManager creates a new JWTManager.
func NewJWTManager(config config.JWTConfig) *JWTManager {
	return &JWTManager{config: config}
}

// GenerateToken mints a token proving passphrase possession, valid for the
// configured expiration window.
func (m *JWTManager) GenerateToken() (string, error) {
	now := time.Now()
	expiresAt := now.Add(m.config.ExpirationTime)

	claims := Claims{
		Role: RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
			Subject:   RoleTeacher,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.Secret))
}

// ValidateToken parses and validates a token minted by GenerateToken.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.config.Secret), nil
		},
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
