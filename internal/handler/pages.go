package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/skillup/internal/auth"
	"github.com/sakif/skillup/internal/logger"
	"github.com/sakif/skillup/internal/view"
)

type Renderer interface {
	Render(w io.Writer, page string, data any) error
}

// PageHandler serves the server-rendered HTML pages. Routes are mounted
// behind auth.OptionalSession; signed-out visitors are sent to "/".
type PageHandler struct {
	renderer      Renderer
	catalog       CatalogService
	checklists    ChecklistService
	googleEnabled bool
	logger        *logger.Logger
}

func NewPageHandler(renderer Renderer, catalog CatalogService, checklists ChecklistService, googleEnabled bool, logg *logger.Logger) *PageHandler {
	return &PageHandler{
		renderer:      renderer,
		catalog:       catalog,
		checklists:    checklists,
		googleEnabled: googleEnabled,
		logger:        orNop(logg),
	}
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.SessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/checklists", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, view.PageSignIn, view.SignInPage{
		GoogleEnabled: h.googleEnabled,
		Denied:        r.URL.Query().Get("auth") == "denied",
	})
}

// Checklists handles GET /checklists.
func (h *PageHandler) Checklists(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	header := view.Header{Email: sess.Email, SignedIn: true}

	summaries, err := h.checklists.List(r.Context(), sess.Email)
	if err != nil {
		h.renderError(w, r, header, err, "Unexpected server error")
		return
	}
	paths, err := h.catalog.ListCareerPaths(r.Context())
	if err != nil {
		h.renderError(w, r, header, err, "Failed to fetch career paths")
		return
	}

	h.render(w, r, http.StatusOK, view.PageChecklists, view.ChecklistsPage{
		Header:      header,
		List:        view.NewChecklistList(summaries, sess.Email),
		CareerPaths: paths,
	})
}

// Detail handles GET /checklists/{id}.
func (h *PageHandler) Detail(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	header := view.Header{Email: sess.Email, SignedIn: true}

	detail, err := h.checklists.Get(r.Context(), sess.Email, chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, header, err, "Failed to load checklist")
		return
	}

	h.render(w, r, http.StatusOK, view.PageDetail, view.DetailPage{
		Header: header,
		Detail: view.NewChecklistDetail(*detail),
	})
}

// NotFound renders the error page for unknown page routes.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	var header view.Header
	if sess, ok := auth.SessionFromContext(r.Context()); ok {
		header = view.Header{Email: sess.Email, SignedIn: true}
	}
	h.render(w, r, http.StatusNotFound, view.PageError, view.ErrorPage{
		Header:  header,
		Status:  http.StatusNotFound,
		Message: "Page not found",
	})
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, header view.Header, err error, fallback string) {
	status, _, public := classify(err)
	message := fallback
	if public {
		message = err.Error()
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), fallback, err)
	}
	h.render(w, r, status, view.PageError, view.ErrorPage{Header: header, Status: status, Message: message})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page, data); err != nil {
		h.logger.Error(r.Context(), "rendering page failed", err)
		http.Error(w, "Unexpected server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
