package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrUnauthorized = errors.New("unauthorized")

// Identity is the verified caller passed to every protected operation.
// Token issuance lives with the identity provider; this service only
// validates and trusts what a valid token asserts.
type Identity struct {
	ID       int64
	Username string
	Email    string
	Roles    []string
}

func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

type tokenClaims struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secret []byte
	now    func() time.Time
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (m *JWTManager) Parse(raw string) (Identity, error) {
	if strings.TrimSpace(raw) == "" {
		return Identity{}, ErrUnauthorized
	}
	if len(m.secret) == 0 {
		return Identity{}, fmt.Errorf("jwt secret is empty")
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithTimeFunc(m.now))
	if err != nil || token == nil || !token.Valid {
		return Identity{}, ErrUnauthorized
	}

	userID, parseErr := strconv.ParseInt(claims.Subject, 10, 64)
	if parseErr != nil || userID <= 0 {
		return Identity{}, ErrUnauthorized
	}

	return Identity{
		ID:       userID,
		Username: claims.Username,
		Email:    claims.Email,
		Roles:    claims.Roles,
	}, nil
}

// Sign is used by tests and local tooling; production tokens come from
// the identity provider sharing the same secret.
func (m *JWTManager) Sign(identity Identity, ttl time.Duration) (string, error) {
	if identity.ID <= 0 {
		return "", fmt.Errorf("invalid identity payload")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	now := m.now().UTC()
	claims := tokenClaims{
		Username: identity.Username,
		Email:    identity.Email,
		Roles:    identity.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return signed, nil
}
