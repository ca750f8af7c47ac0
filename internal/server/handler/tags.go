package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosebudapp/rosebud/internal/server/middleware"
	"github.com/rosebudapp/rosebud/internal/server/models"
)

// TagService is the slice of the tag service the tag endpoints need.
type TagService interface {
	Create(ctx context.Context, userID, tagName string) (*models.Tag, error)
	ListByUser(ctx context.Context, userID string) ([]models.Tag, error)
	Delete(ctx context.Context, userID, id string) error
}

// TagHandler handles the tag endpoints.
type TagHandler struct {
	service TagService
}

func NewTagHandler(svc TagService) *TagHandler {
	return &TagHandler{service: svc}
}

type createTagRequest struct {
	TagName string `json:"tag_name"`
}

// HandleList handles GET /api/v1/tags requests.
func (h *TagHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	if id := r.URL.Query().Get("user_id"); id != "" && id != userID {
		writeJSON(w, http.StatusForbidden, errorResponse("cannot list another user's tags"))
		return
	}

	tags, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if tags == nil {
		tags = []models.Tag{}
	}
	writeJSON(w, http.StatusOK, tags)
}

// HandleCreate handles POST /api/v1/tags requests.
func (h *TagHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req createTagRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tag, err := h.service.Create(r.Context(), userID, req.TagName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tag)
}

// HandleDelete handles DELETE /api/v1/tags/{id} requests.
func (h *TagHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" || len(id) > 36 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid tag id"))
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
