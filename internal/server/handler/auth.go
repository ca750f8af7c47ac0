package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosebudapp/rosebud/internal/server/metrics"
	"github.com/rosebudapp/rosebud/internal/server/middleware"
	"github.com/rosebudapp/rosebud/internal/server/models"
)

// UserService is the slice of the user service the auth endpoints need.
type UserService interface {
	Register(ctx context.Context, username, password, name, email string) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// AuthHandler handles registration, login and user lookup.
type AuthHandler struct {
	service UserService
	metrics metrics.Recorder
}

func NewAuthHandler(svc UserService, rec metrics.Recorder) *AuthHandler {
	return &AuthHandler{service: svc, metrics: rec}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// HandleRegister handles POST /api/v1/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Username, req.Password, req.Name, req.Email)
	if err != nil {
		h.metrics.RecordAuthFailure()
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// HandleLogin handles POST /api/v1/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.metrics.RecordAuthFailure()
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

// HandleMe handles GET /api/v1/auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleGetUser handles GET /api/v1/users/{id} requests.
func (h *AuthHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
