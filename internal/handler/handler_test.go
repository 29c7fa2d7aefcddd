package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sakif/skillup/internal/auth"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/model"
	"github.com/sakif/skillup/internal/repository/gormstore"
	"github.com/sakif/skillup/internal/seed"
	"github.com/sakif/skillup/internal/service"
	"github.com/sakif/skillup/internal/view"
)

const testSecret = "handler-test-secret-0123456789"

type harness struct {
	router   http.Handler
	store    *gormstore.Store
	sessions *auth.SessionService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	store, err := gormstore.OpenInMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logg := logger.Nop()
	catalog := service.NewCatalogService(store, logg, nil)
	c, err := seed.Default()
	require.NoError(t, err)
	_, err = catalog.Seed(ctx, c.CareerPaths)
	require.NoError(t, err)

	checklists := service.NewChecklistService(service.ChecklistDeps{
		Identity:   service.NewIdentityService(store, logg),
		Catalog:    catalog,
		Checklists: store,
		Owners:     store,
		Logger:     logg,
	})

	sessions, err := auth.NewSessionService(testSecret, time.Hour)
	require.NoError(t, err)

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	paths := NewCareerPathHandler(catalog, logg)
	lists := NewChecklistHandler(checklists, logg)
	pages := NewPageHandler(renderer, catalog, checklists, true, logg)
	authH := NewAuthHandler(nil, sessions, service.NewIdentityService(store, logg), false, logg)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/career-paths", paths.List)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSession(sessions))
			r.Get("/me", authH.Me)
			r.Post("/checklist", lists.Create)
			r.Get("/checklists", lists.List)
			r.Get("/checklists/{id}", lists.Get)
			r.Patch("/checklist/items/{id}", lists.UpdateItemStatus)
		})
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalSession(sessions))
		r.Get("/", pages.Home)
		r.Get("/checklists", pages.Checklists)
		r.Get("/checklists/{id}", pages.Detail)
	})
	r.Post("/auth/logout", authH.Logout)

	return &harness{router: r, store: store, sessions: sessions}
}

func (h *harness) do(t *testing.T, method, target, email, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if email != "" {
		token, err := h.sessions.Issue(auth.Session{Email: email, Name: "Tester"})
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func (h *harness) generate(t *testing.T, email, slug string) model.Checklist {
	t.Helper()
	rec := h.do(t, http.MethodPost, "/api/checklist", email, `{"careerPathSlug":"`+slug+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var c model.Checklist
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &c))
	return c
}

func countUsers(t *testing.T, store *gormstore.Store) int64 {
	t.Helper()
	var n int64
	require.NoError(t, store.DB(context.Background()).Model(&model.User{}).Count(&n).Error)
	return n
}
