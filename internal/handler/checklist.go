package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/skillup/internal/apperror"
	"github.com/sakif/skillup/internal/auth"
	"github.com/sakif/skillup/internal/logger"
)

type ChecklistHandler struct {
	checklists ChecklistService
	logger     *logger.Logger
}

func NewChecklistHandler(checklists ChecklistService, logg *logger.Logger) *ChecklistHandler {
	return &ChecklistHandler{checklists: checklists, logger: orNop(logg)}
}

type createChecklistRequest struct {
	CareerPathSlug string `json:"careerPathSlug" validate:"required,max=128"`
}

type updateItemStatusRequest struct {
	Status string `json:"status" validate:"oneof=NOT_STARTED IN_PROGRESS DONE"`
}

type checklistList struct {
	Checklists any `json:"checklists"`
}

func (h *ChecklistHandler) session(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperror.Unauthenticated("Login required"), "")
	}
	return sess, ok
}

// Create handles POST /api/checklist.
func (h *ChecklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req createChecklistRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(w, r, h.logger, err, "Failed to generate checklist")
		return
	}

	checklist, err := h.checklists.Generate(r.Context(), identityFrom(sess), req.CareerPathSlug)
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to generate checklist")
		return
	}
	writeSuccess(w, checklist)
}

// List handles GET /api/checklists.
func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	summaries, err := h.checklists.List(r.Context(), sess.Email)
	if err != nil {
		writeError(w, r, h.logger, err, "Unexpected server error")
		return
	}
	writeSuccess(w, checklistList{Checklists: summaries})
}

// Get handles GET /api/checklists/{id}.
func (h *ChecklistHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	detail, err := h.checklists.Get(r.Context(), sess.Email, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to load checklist")
		return
	}
	writeSuccess(w, detail)
}

// UpdateItemStatus handles PATCH /api/checklist/items/{id}.
func (h *ChecklistHandler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req updateItemStatusRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(w, r, h.logger, err, "Failed to update item")
		return
	}

	updated, err := h.checklists.UpdateItemStatus(r.Context(), sess.Email, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to update item")
		return
	}
	writeSuccess(w, updated)
}
