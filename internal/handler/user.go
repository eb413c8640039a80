package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"wavegram/internal/httputil"
	"wavegram/internal/model"
	"wavegram/internal/service"
	"wavegram/internal/transport/http/middleware"
)

// UserHandler groups account, follow and profile-photo endpoints.
type UserHandler struct {
	userService  *service.UserService
	mediaService *service.MediaService
}

func NewUserHandler(userService *service.UserService, mediaService *service.MediaService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		mediaService: mediaService,
	}
}

// SignUp handles POST /api/v1/users/signup
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		httputil.WriteBadRequest(w, "A valid email is required")
		return
	}

	if err := h.userService.SignUp(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, model.ErrEmailExists), errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, err.Error())
		default:
			log.Printf("[ERROR] SignUp handler: username=%s err=%v", req.Username, err)
			httputil.WriteInternalError(w, "Failed to create account")
		}
		return
	}

	httputil.WriteSuccess(w, fmt.Sprintf("Account %s successfully created. Please login!", req.Username), nil)
}

// LogIn handles POST /api/v1/users/login
func (h *UserHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	var req model.LogInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.Username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}

	data, err := h.userService.LogIn(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "Username or email does not exist")
		case errors.Is(err, model.ErrWrongPassword):
			httputil.WriteUnauthenticated(w, err.Error())
		default:
			log.Printf("[ERROR] LogIn handler: username=%s err=%v", req.Username, err)
			httputil.WriteInternalError(w, "Failed to login")
		}
		return
	}

	httputil.WriteSuccess(w, "Login success", data)
}

// Update handles PUT /api/v1/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthenticated(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	var req model.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.userService.Update(r.Context(), id, callerID, &req); err != nil {
		switch {
		case errors.Is(err, model.ErrNotProfileOwner):
			httputil.WriteForbidden(w, "You are unauthorized to update this profile")
		case errors.Is(err, model.ErrEmailExists), errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, err.Error())
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, err.Error())
		default:
			log.Printf("[ERROR] Update user handler: user=%d err=%v", id, err)
			httputil.WriteInternalError(w, "Failed to update account")
		}
		return
	}

	httputil.WriteSuccess(w, "Account successfully updated", nil)
}

// Follow handles POST /api/v1/users/{id}/follow
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	h.changeFollow(w, r, h.userService.Follow, "Successfully followed user")
}

// Unfollow handles POST /api/v1/users/{id}/unfollow
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.changeFollow(w, r, h.userService.Unfollow, "Successfully unfollowed user")
}

// changeFollow shares the parse/dispatch/error-mapping shape of follow and
// unfollow, which differ only in the service call and the success message.
func (h *UserHandler) changeFollow(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, callerID, targetID int64) error,
	successMessage string,
) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthenticated(w, "Authentication required")
		return
	}

	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	if err := op(r.Context(), callerID, targetID); err != nil {
		switch {
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, err.Error())
		case errors.Is(err, model.ErrAlreadyFollowing), errors.Is(err, model.ErrNotFollowing):
			httputil.WriteConflict(w, err.Error())
		default:
			log.Printf("[ERROR] Follow handler: caller=%d target=%d err=%v", callerID, targetID, err)
			httputil.WriteInternalError(w, "Failed to update follow")
		}
		return
	}

	httputil.WriteSuccess(w, successMessage, nil)
}

// UploadPhoto handles POST /api/v1/users/{id}/photo (multipart form, field "photo").
func (h *UserHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthenticated(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	maxFormSize := int64(model.MaxPhotoSizeBytes) + 1024*1024 // allow form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
			return
		}
		if strings.Contains(err.Error(), "request body too large") {
			httputil.WriteBadRequest(w, "Photo exceeds 10MB limit")
			return
		}
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	if h.mediaService == nil {
		httputil.WriteInternalError(w, "Photo storage is not configured")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		httputil.WriteBadRequest(w, "Photo file is required")
		return
	}
	defer file.Close()

	upload, err := h.mediaService.UploadProfilePhoto(r.Context(), file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Photo exceeds 10MB limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, gif, webp")
		default:
			log.Printf("[ERROR] UploadPhoto handler: user=%d err=%v", id, err)
			httputil.WriteInternalError(w, "Failed to upload photo")
		}
		return
	}

	previousKey, err := h.userService.SetPhoto(r.Context(), id, callerID, upload)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotProfileOwner):
			httputil.WriteForbidden(w, "You are unauthorized to update this profile")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, err.Error())
		default:
			log.Printf("[ERROR] UploadPhoto handler: user=%d err=%v", id, err)
			httputil.WriteInternalError(w, "Failed to save photo")
		}
		return
	}

	// Best effort: the new photo is already live.
	if previousKey != "" {
		if err := h.mediaService.DeleteObject(r.Context(), previousKey); err != nil {
			log.Printf("[UserHandler] Failed to delete previous photo: key=%s err=%v", previousKey, err)
		}
	}

	httputil.WriteSuccess(w, "Photo successfully updated", upload)
}
