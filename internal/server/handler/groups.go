package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosebudapp/rosebud/internal/server/middleware"
	"github.com/rosebudapp/rosebud/internal/server/models"
)

// GroupService is the slice of the group service the group endpoints need.
type GroupService interface {
	Create(ctx context.Context, userID, name string) (*models.Group, *models.Membership, error)
	Join(ctx context.Context, userID, joinCode string) (*models.Group, *models.Membership, error)
	Get(ctx context.Context, userID, id string) (*models.Group, error)
	ListMemberships(ctx context.Context, userID string) ([]models.Membership, error)
	ListGroupMembers(ctx context.Context, userID, groupID string) ([]models.Membership, error)
}

// GroupHandler handles the group and membership endpoints.
type GroupHandler struct {
	service GroupService
}

func NewGroupHandler(svc GroupService) *GroupHandler {
	return &GroupHandler{service: svc}
}

type createGroupRequest struct {
	Name string `json:"name"`
}

type joinGroupRequest struct {
	JoinCode string `json:"join_code"`
}

type joinGroupResponse struct {
	Group      *models.Group      `json:"group"`
	Membership *models.Membership `json:"membership"`
}

// HandleCreate handles POST /api/v1/groups requests. The creator becomes
// the group's admin member.
func (h *GroupHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req createGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, _, err := h.service.Create(r.Context(), userID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, group)
}

// HandleGet handles GET /api/v1/groups/{id} requests.
func (h *GroupHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	group, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, group)
}

// HandleJoin handles POST /api/v1/groups/join requests. The response carries
// both the group and the membership so the client can cache the membership id
// the server assigned.
func (h *GroupHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req joinGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, membership, err := h.service.Join(r.Context(), userID, req.JoinCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, joinGroupResponse{Group: group, Membership: membership})
}

// HandleListMembers handles GET /api/v1/members requests. A group_id query
// parameter lists a group's member roster; otherwise the caller's own
// memberships are returned.
func (h *GroupHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	q := r.URL.Query()

	var (
		members []models.Membership
		err     error
	)
	if groupID := q.Get("group_id"); groupID != "" {
		members, err = h.service.ListGroupMembers(r.Context(), userID, groupID)
	} else {
		if id := q.Get("user_id"); id != "" && id != userID {
			writeJSON(w, http.StatusForbidden, errorResponse("cannot list another user's memberships"))
			return
		}
		members, err = h.service.ListMemberships(r.Context(), userID)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if members == nil {
		members = []models.Membership{}
	}
	writeJSON(w, http.StatusOK, members)
}
