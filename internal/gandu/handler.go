package gandu

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hamzash/kharcha/pkg/response"
)

// Handler handles HTTP requests for gandu stats
type Handler struct {
	service *Service
}

// NewHandler creates a new gandu handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for gandu endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/stats", h.Stats)

	return r
}

// Stats handles GET /gandus/stats
// @Summary      Gandu stats
// @Description  History of tagged events, the leaderboard, and the reigning king
// @Tags         gandus
// @Produce      json
// @Success      200 {object} response.APIResponse{data=Stats}
// @Router       /gandus/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to load gandu stats")
		return
	}

	response.JSON(w, http.StatusOK, stats)
}
