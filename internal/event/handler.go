package event

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	mw "github.com/hamzash/kharcha/pkg/middleware"
	"github.com/hamzash/kharcha/pkg/response"
)

// Handler handles HTTP requests for event lifecycle operations
type Handler struct {
	service *Service
}

// NewHandler creates a new event handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for event endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/history", h.History)
	r.Get("/analytics", h.Analytics)

	// Lifecycle mutations are admin-only
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAdmin)
		r.Post("/start", h.Start)
		r.Post("/archive", h.Archive)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

// Start handles POST /events/start
// @Summary      Start a new event
// @Description  Archives any active event with a full snapshot, then starts a new one with unset expense rows for every participant
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body StartEventRequest true "Event start request"
// @Success      201 {object} response.APIResponse{data=EventResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /events/start [post]
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	event, err := h.service.Start(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to start event")
		return
	}

	response.JSON(w, http.StatusCreated, event.ToResponse())
}

// Archive handles POST /events/archive
// @Summary      Archive an event
// @Description  Freezes the event's totals and settlement plan; targets the given ID or the current active event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body ArchiveEventRequest false "Archive request"
// @Success      200 {object} response.APIResponse{data=EventResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /events/archive [post]
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	// An empty body targets the current active event.
	var req ArchiveEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body")
		return
	}

	event, err := h.service.Archive(r.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrEventAlreadyArchived):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to archive event")
		}
		return
	}

	response.JSON(w, http.StatusOK, event.ToResponse())
}

// Delete handles DELETE /events/{id}
// @Summary      Delete an event
// @Description  Removes an event in any state, cascading its expense rows
// @Tags         events
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /events/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete event")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

// History handles GET /events/history
// @Summary      List event history
// @Description  All events newest first; archived events return their frozen snapshot verbatim
// @Tags         events
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]HistoryItemResponse}
// @Router       /events/history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.History(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to load event history")
		return
	}

	itemResponses := make([]*HistoryItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = item.ToResponse()
	}

	response.JSON(w, http.StatusOK, itemResponses)
}

// Analytics handles GET /events/analytics
// @Summary      Spending analytics
// @Description  Overall summary, per-event timeline, per-user totals, and max/min highlights within an optional start_date range
// @Tags         events
// @Produce      json
// @Param        start_date query string false "Inclusive lower bound on event start_date"
// @Param        end_date query string false "Inclusive upper bound on event start_date"
// @Success      200 {object} response.APIResponse{data=Analytics}
// @Router       /events/analytics [get]
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	analytics, err := h.service.Analytics(r.Context(), startDate, endDate)
	if err != nil {
		response.InternalError(w, "Failed to load analytics")
		return
	}

	response.JSON(w, http.StatusOK, analytics)
}
