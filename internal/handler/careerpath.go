package handler

import (
	"net/http"

	"github.com/sakif/skillup/internal/logger"
)

type CareerPathHandler struct {
	catalog CatalogService
	logger  *logger.Logger
}

func NewCareerPathHandler(catalog CatalogService, logg *logger.Logger) *CareerPathHandler {
	return &CareerPathHandler{catalog: catalog, logger: orNop(logg)}
}

// List handles GET /api/career-paths. No session is required.
func (h *CareerPathHandler) List(w http.ResponseWriter, r *http.Request) {
	paths, err := h.catalog.ListCareerPaths(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to fetch career paths")
		return
	}
	writeSuccess(w, paths)
}
