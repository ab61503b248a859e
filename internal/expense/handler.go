package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hamzash/kharcha/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/current", h.Current)
	r.Post("/update", h.Update)

	return r
}

// Current handles GET /expenses/current
// @Summary      Get the active event with expenses
// @Description  The active event, its per-participant rows and live stats; active=false when no event is collecting
// @Tags         expenses
// @Produce      json
// @Success      200 {object} response.APIResponse{data=CurrentResponse}
// @Router       /expenses/current [get]
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	current, err := h.service.Current(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to load current event")
		return
	}

	response.JSON(w, http.StatusOK, current)
}

// Update handles POST /expenses/update
// @Summary      Set a participant's amount
// @Description  Updates one participant's amount on the active event and re-checks completion for Gandu tagging
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body UpdateExpenseRequest true "Expense update request"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Router       /expenses/update [post]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.UpdateAmount(r.Context(), &req); err != nil {
		if errors.Is(err, ErrNoActiveEvent) || errors.Is(err, ErrMissingAmount) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update expense")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Expense updated successfully"})
}
