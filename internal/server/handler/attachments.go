package handler

import (
	"context"
	"net/http"

	"github.com/rosebudapp/rosebud/internal/server/metrics"
	"github.com/rosebudapp/rosebud/internal/server/middleware"
)

// AttachmentService is the slice of the attachment service the presign
// endpoints need.
type AttachmentService interface {
	GetPresignedPutUrl(ctx context.Context, userID string) (string, string, error)
	GetPresignedGetUrl(ctx context.Context, key string) (string, error)
}

// AttachmentHandler hands out presigned URLs for entry photo attachments.
type AttachmentHandler struct {
	service AttachmentService
	metrics metrics.Recorder
}

func NewAttachmentHandler(svc AttachmentService, rec metrics.Recorder) *AttachmentHandler {
	return &AttachmentHandler{service: svc, metrics: rec}
}

type presignPutResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

type presignGetResponse struct {
	DownloadURL string `json:"download_url"`
}

// HandlePresignPut handles POST /api/v1/attachments/presign requests. It
// returns a fresh storage key and a URL the client can PUT the bytes to.
func (h *AttachmentHandler) HandlePresignPut(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	key, url, err := h.service.GetPresignedPutUrl(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.metrics.RecordPresignIssued("put")
	writeJSON(w, http.StatusOK, presignPutResponse{Key: key, UploadURL: url})
}

// HandlePresignGet handles GET /api/v1/attachments/presign requests for a
// previously stored key.
func (h *AttachmentHandler) HandlePresignGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("key is required"))
		return
	}

	url, err := h.service.GetPresignedGetUrl(r.Context(), key)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.metrics.RecordPresignIssued("get")
	writeJSON(w, http.StatusOK, presignGetResponse{DownloadURL: url})
}
