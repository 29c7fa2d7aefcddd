package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/xid"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/auth"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/service"
)

const stateCookieName = "skillup_oauth_state"

// OAuthProvider is the part of auth.GoogleProvider the login flow needs.
type OAuthProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GoogleUser, error)
}

// ProfileRefresher updates a returning user's stored profile. It must not
// create users.
type ProfileRefresher interface {
	RefreshProfile(ctx context.Context, id service.Identity) (bool, error)
}

// AuthHandler runs the Google sign-in flow and owns the session cookie.
// provider may be nil when Google credentials are not configured; the
// login routes then answer 503.
type AuthHandler struct {
	provider     OAuthProvider
	sessions     *auth.SessionService
	profiles     ProfileRefresher
	secureCookie bool
	logger       *logger.Logger
}

func NewAuthHandler(provider OAuthProvider, sessions *auth.SessionService, profiles ProfileRefresher, secureCookie bool, logg *logger.Logger) *AuthHandler {
	return &AuthHandler{
		provider:     provider,
		sessions:     sessions,
		profiles:     profiles,
		secureCookie: secureCookie,
		logger:       orNop(logg),
	}
}

// GoogleLogin handles GET /auth/google/login.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		http.Error(w, "Google sign-in is not configured", http.StatusServiceUnavailable)
		return
	}

	state := xid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.provider.AuthURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /auth/google/callback?code=..&state=..
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.provider == nil {
		http.Error(w, "Google sign-in is not configured", http.StatusServiceUnavailable)
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	query := r.URL.Query()
	if err != nil || stateCookie.Value == "" || query.Get("state") != stateCookie.Value {
		h.logger.Warn(ctx, "oauth callback: state mismatch")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// single use
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	if denied := query.Get("error"); denied != "" {
		h.logger.Info(h.logger.WithField(ctx, "oauth_error", denied), "oauth callback: authorization denied")
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	code := query.Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	user, err := h.provider.Exchange(ctx, code)
	if err != nil {
		h.logger.Error(ctx, "oauth callback: exchange failed", err)
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	h.refreshProfile(ctx, user)

	token, err := h.sessions.Issue(user.Session())
	if err != nil {
		h.logger.Error(ctx, "oauth callback: issuing session failed", err)
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}
	auth.SetSessionCookie(w, token, h.sessions, h.secureCookie)

	h.logger.Info(h.logger.WithUserEmail(ctx, user.Email), "user signed in")
	http.Redirect(w, r, "/checklists", http.StatusSeeOther)
}

// refreshProfile brings a returning user's name and image up to date.
// Failures are logged only; they never block sign-in.
func (h *AuthHandler) refreshProfile(ctx context.Context, user *auth.GoogleUser) {
	if h.profiles == nil {
		return
	}
	_, err := h.profiles.RefreshProfile(ctx, service.Identity{
		Email: user.Email,
		Name:  user.Name,
		Image: user.Picture,
	})
	if err != nil {
		h.logger.Error(h.logger.WithUserEmail(ctx, user.Email), "oauth callback: refreshing profile failed", err)
	}
}

// Logout handles POST /auth/logout. Browser form posts are redirected home;
// API callers get the JSON envelope.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.secureCookie)

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeSuccess(w, map[string]string{"message": "logged out"})
}

// Me handles GET /api/me and echoes the session identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperror.Unauthenticated("Login required"), "")
		return
	}
	writeSuccess(w, sess)
}
