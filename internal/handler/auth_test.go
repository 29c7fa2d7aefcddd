package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/skillup/internal/auth"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/service"
)

type fakeProvider struct {
	user *auth.GoogleUser
	err  error
	code string
}

func (f *fakeProvider) AuthURL(state string) string {
	return "https://accounts.example.com/auth?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) Exchange(_ context.Context, code string) (*auth.GoogleUser, error) {
	f.code = code
	return f.user, f.err
}

func newAuthHandler(t *testing.T, p OAuthProvider) (*AuthHandler, *auth.SessionService) {
	t.Helper()
	sessions, err := auth.NewSessionService(testSecret, time.Hour)
	require.NoError(t, err)
	return NewAuthHandler(p, sessions, nil, false, logger.Nop()), sessions
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestGoogleLogin_SetsStateAndRedirects(t *testing.T) {
	h, _ := newAuthHandler(t, &fakeProvider{})

	rec := httptest.NewRecorder()
	h.GoogleLogin(rec, httptest.NewRequest(http.MethodGet, "/auth/google/login", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	state := findCookie(rec, stateCookieName)
	require.NotNil(t, state)
	assert.True(t, state.HttpOnly)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, state.Value, loc.Query().Get("state"))
}

func TestGoogleLogin_NotConfigured(t *testing.T) {
	h, _ := newAuthHandler(t, nil)

	rec := httptest.NewRecorder()
	h.GoogleLogin(rec, httptest.NewRequest(http.MethodGet, "/auth/google/login", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func callback(h *AuthHandler, query, cookieState string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?"+query, nil)
	if cookieState != "" {
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: cookieState})
	}
	rec := httptest.NewRecorder()
	h.GoogleCallback(rec, req)
	return rec
}

func TestGoogleCallback(t *testing.T) {
	t.Run("state mismatch", func(t *testing.T) {
		h, _ := newAuthHandler(t, &fakeProvider{})
		rec := callback(h, "state=a&code=c", "b")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing state cookie", func(t *testing.T) {
		h, _ := newAuthHandler(t, &fakeProvider{})
		rec := callback(h, "state=a&code=c", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("denied", func(t *testing.T) {
		h, _ := newAuthHandler(t, &fakeProvider{})
		rec := callback(h, "state=s&error=access_denied", "s")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?auth=denied", rec.Header().Get("Location"))
		assert.Nil(t, findCookie(rec, auth.CookieName))
	})

	t.Run("exchange failure", func(t *testing.T) {
		h, _ := newAuthHandler(t, &fakeProvider{err: errors.New("boom")})
		rec := callback(h, "state=s&code=c", "s")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?auth=denied", rec.Header().Get("Location"))
	})

	t.Run("success issues session", func(t *testing.T) {
		p := &fakeProvider{user: &auth.GoogleUser{Email: "a@example.com", EmailVerified: true, Name: "Ada"}}
		h, sessions := newAuthHandler(t, p)

		rec := callback(h, "state=s&code=the-code", "s")

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/checklists", rec.Header().Get("Location"))
		assert.Equal(t, "the-code", p.code)

		cookie := findCookie(rec, auth.CookieName)
		require.NotNil(t, cookie)
		sess, err := sessions.Validate(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", sess.Email)
		assert.Equal(t, "Ada", sess.Name)
	})
}

func TestLogout(t *testing.T) {
	h, _ := newAuthHandler(t, nil)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := findCookie(rec, auth.CookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, -1, cookie.MaxAge)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec = httptest.NewRecorder()
	h.Logout(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestGoogleCallback_RefreshesReturningUserProfile(t *testing.T) {
	h := newHarness(t)
	h.generate(t, "ada@example.com", "cyber-security")

	before, err := h.store.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, before.Name)
	assert.Equal(t, "Tester", *before.Name)

	p := &fakeProvider{user: &auth.GoogleUser{
		Email:         "ada@example.com",
		EmailVerified: true,
		Name:          "Ada Lovelace",
		Picture:       "https://img.example.com/ada.png",
	}}
	authH := NewAuthHandler(p, h.sessions, service.NewIdentityService(h.store, logger.Nop()), false, logger.Nop())

	rec := callback(authH, "state=s&code=c", "s")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	after, err := h.store.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	require.NotNil(t, after.Name)
	assert.Equal(t, "Ada Lovelace", *after.Name)
	require.NotNil(t, after.Image)
	assert.Equal(t, "https://img.example.com/ada.png", *after.Image)
}

func TestGoogleCallback_FirstSignInCreatesNoUser(t *testing.T) {
	h := newHarness(t)

	p := &fakeProvider{user: &auth.GoogleUser{Email: "new@example.com", EmailVerified: true, Name: "New"}}
	authH := NewAuthHandler(p, h.sessions, service.NewIdentityService(h.store, logger.Nop()), false, logger.Nop())

	rec := callback(authH, "state=s&code=c", "s")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.NotNil(t, findCookie(rec, auth.CookieName))
	assert.Equal(t, int64(0), countUsers(t, h.store))
}

type failingRefresher struct{}

func (failingRefresher) RefreshProfile(context.Context, service.Identity) (bool, error) {
	return false, errors.New("store down")
}

func TestGoogleCallback_RefreshFailureDoesNotBlockSignIn(t *testing.T) {
	sessions, err := auth.NewSessionService(testSecret, time.Hour)
	require.NoError(t, err)
	p := &fakeProvider{user: &auth.GoogleUser{Email: "a@example.com", EmailVerified: true}}
	h := NewAuthHandler(p, sessions, failingRefresher{}, false, logger.Nop())

	rec := callback(h, "state=s&code=c", "s")

	assert.Equal(t, "/checklists", rec.Header().Get("Location"))
	assert.NotNil(t, findCookie(rec, auth.CookieName))
}
