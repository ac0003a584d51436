package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Session identifies the authenticated user for the duration of a request.
// It is passed explicitly to whichever component needs it; the order core
// never sees it.
type Session struct {
	UserID   int64
	UserName string
	Role     string
}

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"nombre"`
	Role     string `json:"rol"`
	jwt.RegisteredClaims
}

// Manager issues and verifies bearer tokens.
type Manager struct {
	secret []byte
	expiry time.Duration
}

func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{secret: []byte(secret), expiry: expiry}
}

// IssueToken signs a token carrying the session identity.
func (m *Manager) IssueToken(s Session) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:   s.UserID,
		UserName: s.UserName,
		Role:     s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	})
	return token.SignedString(m.secret)
}

// ParseToken verifies a token and returns the session it carries.
func (m *Manager) ParseToken(tokenString string) (Session, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}
	return Session{UserID: c.UserID, UserName: c.UserName, Role: c.Role}, nil
}

// HashPassword hashes a password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a password with its stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
