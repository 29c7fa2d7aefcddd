package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the HttpOnly cookie holding the signed session token.
	CookieName = "skillup_session"

	issuer = "skillup"
)

var ErrInvalidSession = errors.New("auth: invalid session")

// Session is the authenticated caller as carried in the token. Email is
// the identity; the profile fields are informational.
type Session struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// SessionService issues and validates HS256 session tokens.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(secret string, ttl time.Duration) (*SessionService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &SessionService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// RandomSecret returns a throwaway secret for local development, where
// sessions need not survive a restart.
func RandomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("auth: generating secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

type sessionClaims struct {
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs a token for sess. The email becomes the subject.
func (s *SessionService) Issue(sess Session) (string, error) {
	email := strings.TrimSpace(sess.Email)
	if email == "" {
		return "", errors.New("auth: cannot issue a session without an email")
	}

	now := s.now()
	c := sessionClaims{
		Name:    sess.Name,
		Picture: sess.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session: %w", err)
	}
	return signed, nil
}

// Validate checks signature, issuer and expiry and returns the session.
func (s *SessionService) Validate(token string) (Session, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&sessionClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	c, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || c.Subject == "" {
		return Session{}, ErrInvalidSession
	}
	return Session{Email: c.Subject, Name: c.Name, Picture: c.Picture}, nil
}
