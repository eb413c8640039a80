package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"wavegram/internal/httputil"
	"wavegram/internal/model"
	"wavegram/internal/service"
	"wavegram/internal/transport/http/middleware"
)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// PresignPhotoUpload handles POST /api/v1/media/photos/presign
// Returns a presigned URL for uploading a post photo directly to storage.
func (h *MediaHandler) PresignPhotoUpload(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		httputil.WriteUnauthenticated(w, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB is plenty for JSON
	var req model.PresignUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.ContentType = strings.TrimSpace(req.ContentType)
	if req.ContentType == "" {
		httputil.WriteBadRequest(w, "content_type is required")
		return
	}
	if req.FileSize > 0 && req.FileSize > model.MaxPhotoSizeBytes {
		httputil.WriteBadRequest(w, "Photo exceeds 10MB limit")
		return
	}

	res, err := h.mediaService.PresignPostUpload(r.Context(), req.ContentType)
	if err != nil {
		if errors.Is(err, model.ErrInvalidImageType) {
			httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, gif, webp")
			return
		}
		httputil.WriteInternalError(w, "Failed to create upload URL")
		return
	}

	httputil.WriteSuccess(w, "Success", res)
}
