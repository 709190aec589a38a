package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pedalads/internal/services"
	helpers "pedalads/internal/utils/helpers"
)

// AdminAuthenticator is implemented by services.AdminAuthService.
type AdminAuthenticator interface {
	Login(ctx context.Context, email, password string) (string, time.Time, error)
}

type AuthHandler struct {
	auth AdminAuthenticator
}

func NewAuthHandler(auth AdminAuthenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"    example:"admin@pedalads.com"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
}

// Login godoc
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Admin credentials"
// @Success 200 {object} helpers.Response{data=loginResponse}
// @Failure 400 {object} helpers.Response
// @Failure 401 {object} helpers.Response
// @Failure 429 {object} helpers.Response
// @Failure 503 {object} helpers.Response
// @Router /api/admin/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		helpers.Error(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	token, exp, err := h.auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		helpers.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	case errors.Is(err, services.ErrLoginThrottled):
		helpers.Error(w, http.StatusTooManyRequests, "Too many requests")
		return
	case errors.Is(err, services.ErrAdminDisabled):
		helpers.Error(w, http.StatusServiceUnavailable, "admin login is disabled")
		return
	case err != nil:
		helpers.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	helpers.JSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		ExpiresAt:   exp,
		Role:        services.RoleAdmin,
	})
}
