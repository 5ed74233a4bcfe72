package http

import (
	"net/http"
	"time"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      *domain.Admin `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	token, expiresAt, admin, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.WarnContext(r.Context(), "Login failed", "error", err)
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt, User: admin})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	admin, err := h.authSvc.Me(r.Context(), claims.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, admin)
}
