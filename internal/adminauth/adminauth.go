// Package adminauth checks admin credentials and issues the signed session
// cookie value for the admin pages.
package adminauth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTTL = 24 * time.Hour

var ErrInvalidSession = errors.New("invalid or expired admin session")

// Claims is the admin session payload.
type Claims struct {
	jwt.RegisteredClaims
}

type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret []byte, ttl time.Duration) (*Sessions, error) {
	if len(secret) < 32 {
		return nil, errors.New("adminauth: secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Sessions{secret: secret, ttl: ttl, now: time.Now}, nil
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Issue signs a session for username.
func (s *Sessions) Issue(username string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin session: %w", err)
	}
	return signed, nil
}

// Verify returns the session subject, or ErrInvalidSession.
func (s *Sessions) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidSession
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

// IsBcryptHash reports whether a configured password is a bcrypt hash
// rather than plain text.
func IsBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

// CheckCredentials compares a login attempt with the configured
// credentials. The configured password may be plain text or a bcrypt hash.
func CheckCredentials(wantUser, wantPassword, user, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(wantUser)) == 1

	var passOK bool
	if IsBcryptHash(wantPassword) {
		passOK = bcrypt.CompareHashAndPassword([]byte(wantPassword), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(wantPassword)) == 1
	}
	return userOK && passOK
}
