package handlers

import (
	"net/http"

	"github.com/dom/studio-api/internal/api/middleware"
	"github.com/dom/studio-api/internal/api/respond"
	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/service"
)

// authBodyLimit caps register and login bodies
const authBodyLimit = 64 << 10

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type AuthResponse struct {
	Token string        `json:"token"`
	Admin *domain.Admin `json:"admin"`
}

type VerifyResponse struct {
	Valid bool          `json:"valid"`
	Admin *domain.Admin `json:"admin"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	p, err := parsePayload(w, r, authBodyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	input := service.RegisterInput{
		Username: deref(p.String("username")),
		Email:    deref(p.String("email")),
		Password: deref(p.String("password")),
	}
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.authService.Register(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, AuthResponse{Token: result.Token, Admin: result.Admin})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	p, err := parsePayload(w, r, authBodyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer p.Close()

	input := service.LoginInput{
		Username: deref(p.String("username")),
		Email:    deref(p.String("email")),
		Password: deref(p.String("password")),
	}
	if err := p.Err(); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.authService.Login(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, AuthResponse{Token: result.Token, Admin: result.Admin})
}

// Verify only runs behind middleware.Auth, so reaching it means the token is good
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Token is not valid")
		return
	}
	respond.JSON(w, http.StatusOK, VerifyResponse{Valid: true, Admin: admin})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Token is not valid")
		return
	}
	respond.JSON(w, http.StatusOK, admin)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
