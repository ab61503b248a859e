package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/hamzash/kharcha/pkg/middleware"
	"github.com/hamzash/kharcha/pkg/response"
)

// Handler handles HTTP requests for authentication
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for auth endpoints. Login is the only
// unauthenticated route in the API.
func (h *Handler) Routes(authenticator func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(mw.RequireAdmin)
		r.Put("/pins", h.UpdatePINs)
	})

	return r
}

// Login handles POST /auth/login
// @Summary      Log in with a PIN
// @Description  Resolves the PIN to a role (admin or user) and returns a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} response.APIResponse{data=LoginResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), req.PIN)
	if err != nil {
		switch {
		case errors.Is(err, ErrPINMissing):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrInvalidPIN):
			response.Unauthorized(w, err.Error())
		default:
			response.InternalError(w, "Login failed")
		}
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// UpdatePINs handles PUT /auth/pins
// @Summary      Rotate PINs
// @Description  Re-hashes and stores the provided admin and/or user PINs
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body UpdatePINsRequest true "PIN update request"
// @Success      200 {object} response.APIResponse
// @Router       /auth/pins [put]
func (h *Handler) UpdatePINs(w http.ResponseWriter, r *http.Request) {
	var req UpdatePINsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.UpdatePINs(r.Context(), &req); err != nil {
		response.InternalError(w, "Failed to update PINs")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "PINs updated successfully"})
}
