package adminauth

import (
	"bytes"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var secret = bytes.Repeat([]byte("k"), 32)

func TestNewSessionsRejectsShortSecret(t *testing.T) {
	_, err := NewSessions([]byte("short"), time.Hour)
	assert.Error(t, err)

	s, err := NewSessions(secret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, s.TTL())
}

func TestIssueAndVerify(t *testing.T) {
	s, err := NewSessions(secret, time.Hour)
	require.NoError(t, err)

	token, err := s.Issue("admin")
	require.NoError(t, err)

	user, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user)
}

func TestVerifyRejectsExpired(t *testing.T) {
	s, err := NewSessions(secret, time.Hour)
	require.NoError(t, err)
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return start }

	token, err := s.Issue("admin")
	require.NoError(t, err)

	s.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifyRejectsForeignTokens(t *testing.T) {
	s, err := NewSessions(secret, time.Hour)
	require.NoError(t, err)
	other, err := NewSessions(bytes.Repeat([]byte("x"), 32), time.Hour)
	require.NoError(t, err)

	foreign, err := other.Issue("admin")
	require.NoError(t, err)
	_, err = s.Verify(foreign)
	assert.ErrorIs(t, err, ErrInvalidSession)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = s.Verify("")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestCheckCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.True(t, IsBcryptHash(string(hash)))

	tests := []struct {
		name     string
		wantPass string
		user     string
		pass     string
		ok       bool
	}{
		{"plain match", "s3cret", "admin", "s3cret", true},
		{"plain wrong password", "s3cret", "admin", "nope", false},
		{"wrong user", "s3cret", "root", "s3cret", false},
		{"bcrypt match", string(hash), "admin", "s3cret", true},
		{"bcrypt wrong password", string(hash), "admin", "nope", false},
		{"hash is not the password", string(hash), "admin", string(hash), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, CheckCredentials("admin", tt.wantPass, tt.user, tt.pass))
		})
	}
}
