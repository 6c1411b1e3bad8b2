// Package auth implements the stateless token service: minting and
// validating signed, time-bounded bearer tokens (HS256), plus password
// hashing and signing-secret bootstrap.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/fluxpad/fluxpad/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind discriminates access tokens from refresh tokens. A token of one
// kind must never be accepted where the other is expected.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims carries the registered claims plus the subject identity and the
// token kind. Tokens are immutable once issued; every validation is
// recomputed from the signed contents alone.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Kind   string `json:"kind"`
}

func GenerateToken(userID, email string, kind TokenKind, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Email:  email,
		Kind:   string(kind),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature, expiry, and kind of tokenString and returns
// its claims. Failures map to common sentinels:
//   - common.ErrTokenExpired for an expired token,
//   - common.ErrWrongTokenKind when the kind claim does not match expected,
//   - common.ErrInvalidToken for anything malformed or badly signed.
func ParseToken(tokenString string, expected TokenKind, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.Kind != string(expected) {
		return nil, common.ErrWrongTokenKind
	}

	return claims, nil
}
