package handler

import (
	"net/http"

	"github.com/devaliuz/Epic-Charaktersheet/internal/auth"
	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
)

// AuthHandler handles login, logout and account registration
type AuthHandler struct {
	service      auth.Service
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler. cookieSecure marks the session
// cookie Secure.
func NewAuthHandler(service auth.Service, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: service, cookieSecure: cookieSecure}
}

// LoginRequest is the body of ?action=login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of ?action=register. Unknown roles become "user".
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100,username"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Success bool         `json:"success"`
	User    domain.Actor `json:"user"`
}

// RegisterResponse is returned by a successful registration
type RegisterResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// HandleCurrent returns the logged-in user or null
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} domain.Actor
// @Router /auth [get]
func (h *AuthHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if !actor.Authenticated() {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	respondJSON(w, http.StatusOK, actor)
}

// HandleAction dispatches ?action=login|logout|register
// @Summary Login, logout or register
// @Tags auth
// @Accept json
// @Produce json
// @Param action query string true "login, logout or register"
// @Param body body LoginRequest false "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth [post]
func (h *AuthHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get(ParamAction) {
	case ActionLogin:
		h.handleLogin(w, r)
	case ActionLogout:
		h.handleLogout(w, r)
	case ActionRegister:
		h.handleRegister(w, r)
	default:
		respondError(w, http.StatusBadRequest, ErrMsgUnknownAction)
	}
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, w, &req, "Login"); err != nil {
		return
	}

	res, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, r, "Login", err)
		return
	}

	auth.SetSessionCookie(w, res.Token, res.ExpiresAt, h.cookieSecure)
	respondJSON(w, http.StatusOK, LoginResponse{Success: true, User: res.User})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), auth.TokenFromRequest(r)); err != nil {
		// The cookie goes anyway; the row expires on its own.
		logger.FromContext(r.Context()).Error("Logout failed", "error", err)
	}
	auth.ClearSessionCookie(w, h.cookieSecure)
	respondJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if !actor.IsAdmin() {
		respondServiceError(w, r, "Register", domain.ErrAdminRequired)
		return
	}

	var req RegisterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
		return
	}

	id, err := h.service.Register(r.Context(), actor, req.Username, req.Password, req.Role)
	if err != nil {
		respondServiceError(w, r, "Register", err)
		return
	}
	respondJSON(w, http.StatusOK, RegisterResponse{Success: true, ID: id})
}
