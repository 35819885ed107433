package auth

import (
	"errors"
	"strconv"
	"time"

	"empylo_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrSecretNotSet   = errors.New("jwt secret is not set")
	ErrUnexpectedAlgo = errors.New("unexpected signing method")
)

// Process-wide signing secret, set once at startup. There is no
// compiled-in default.
var jwtSecret []byte

// Init installs the signing secret. Fails on empty input.
func Init(secret string) error {
	if secret == "" {
		return ErrSecretNotSet
	}
	jwtSecret = []byte(secret)
	return nil
}

// Claims carries the sanitized user record as the session payload.
type Claims struct {
	User models.User `json:"user"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 session assertion for the user. The
// password is stripped from the embedded record.
func GenerateToken(user models.User, ttl time.Duration) (string, error) {
	if len(jwtSecret) == 0 {
		return "", ErrSecretNotSet
	}

	now := time.Now().UTC()
	claims := Claims{
		User: user.Sanitized(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(tokenStr string) (*Claims, error) {
	if len(jwtSecret) == 0 {
		return nil, ErrSecretNotSet
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedAlgo
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
