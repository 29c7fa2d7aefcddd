package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-16-chars"

func newTestSessions(t *testing.T) *SessionService {
	t.Helper()
	s, err := NewSessionService(testSecret, time.Hour)
	require.NoError(t, err)
	return s
}

func TestNewSessionServiceRejectsShortSecret(t *testing.T) {
	_, err := NewSessionService("short", time.Hour)
	assert.Error(t, err)
}

func TestIssueAndValidate(t *testing.T) {
	s := newTestSessions(t)

	token, err := s.Issue(Session{Email: "ada@example.com", Name: "Ada", Picture: "https://img/ada"})
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "a JWT has three segments")

	sess, err := s.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, Session{Email: "ada@example.com", Name: "Ada", Picture: "https://img/ada"}, sess)
}

func TestIssueRequiresEmail(t *testing.T) {
	s := newTestSessions(t)

	_, err := s.Issue(Session{Name: "nobody"})
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	s := newTestSessions(t)
	issuedAt := time.Now().Add(-2 * time.Hour)
	s.now = func() time.Time { return issuedAt }

	token, err := s.Issue(Session{Email: "ada@example.com"})
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Validate(token)
	assert.True(t, errors.Is(err, ErrInvalidSession))
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := newTestSessions(t).Issue(Session{Email: "ada@example.com"})
	require.NoError(t, err)

	other, err := NewSessionService("a-completely-different-secret", time.Hour)
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateRejectsGarbage(t *testing.T) {
	s := newTestSessions(t)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := s.Validate(tok)
		assert.ErrorIs(t, err, ErrInvalidSession, "token %q", tok)
	}
}

func TestValidateRejectsNoneAlgorithm(t *testing.T) {
	s := newTestSessions(t)

	claims := jwt.RegisteredClaims{
		Subject:   "ada@example.com",
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRandomSecret(t *testing.T) {
	a, err := RandomSecret()
	require.NoError(t, err)
	b, err := RandomSecret()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)

	_, err = NewSessionService(a, time.Hour)
	assert.NoError(t, err)
}
