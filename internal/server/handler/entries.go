package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosebudapp/rosebud/internal/server/middleware"
	"github.com/rosebudapp/rosebud/internal/server/models"
)

// EntryService is the slice of the entry service the entry endpoints need.
type EntryService interface {
	Create(ctx context.Context, userID string, entry *models.Entry) (*models.Entry, error)
	Update(ctx context.Context, userID string, entry *models.Entry) (*models.Entry, error)
	Delete(ctx context.Context, userID, id string) error
	ListByUser(ctx context.Context, userID string) ([]models.Entry, error)
	ListByGroup(ctx context.Context, userID, groupID string) ([]models.Entry, error)
	ListByTag(ctx context.Context, userID, tagID string) ([]models.Entry, error)
}

// EntryHandler handles the daily entry endpoints.
type EntryHandler struct {
	service EntryService
}

func NewEntryHandler(svc EntryService) *EntryHandler {
	return &EntryHandler{service: svc}
}

// HandleList handles GET /api/v1/entries requests. The group_id and tag_id
// query parameters select a group feed or a tag view; otherwise the caller's
// own entries are returned.
func (h *EntryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	q := r.URL.Query()

	var (
		entries []models.Entry
		err     error
	)
	switch {
	case q.Get("group_id") != "":
		entries, err = h.service.ListByGroup(r.Context(), userID, q.Get("group_id"))
	case q.Get("tag_id") != "":
		entries, err = h.service.ListByTag(r.Context(), userID, q.Get("tag_id"))
	default:
		if id := q.Get("user_id"); id != "" && id != userID {
			writeJSON(w, http.StatusForbidden, errorResponse("cannot list another user's entries"))
			return
		}
		entries, err = h.service.ListByUser(r.Context(), userID)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if entries == nil {
		entries = []models.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleCreate handles POST /api/v1/entries requests.
func (h *EntryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var entry models.Entry
	if !decodeBody(w, r, &entry) {
		return
	}

	created, err := h.service.Create(r.Context(), userID, &entry)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /api/v1/entries/{id} requests.
func (h *EntryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" || len(id) > 36 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid entry id"))
		return
	}

	var entry models.Entry
	if !decodeBody(w, r, &entry) {
		return
	}
	entry.ID = id

	updated, err := h.service.Update(r.Context(), userID, &entry)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/v1/entries/{id} requests.
func (h *EntryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" || len(id) > 36 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid entry id"))
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
