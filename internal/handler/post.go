package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wavegram/internal/httputil"
	"wavegram/internal/model"
	"wavegram/internal/service"
	"wavegram/internal/transport/http/middleware"
)

// ObjectDeleter is the slice of MediaService the post handler needs for
// cleaning up photos of deleted posts. May be nil when storage is not configured.
type ObjectDeleter interface {
	DeleteObject(ctx context.Context, key string) error
}

type PostHandler struct {
	postService  *service.PostService
	mediaDeleter ObjectDeleter
}

func NewPostHandler(postService *service.PostService, mediaDeleter ObjectDeleter) *PostHandler {
	return &PostHandler{
		postService:  postService,
		mediaDeleter: mediaDeleter,
	}
}

// Create handles POST /api/v1/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthenticated(w, "Authentication required")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), callerID, &req)
	if err != nil {
		switch {
		case isPostValidationErr(err):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, err.Error())
		default:
			log.Printf("[ERROR] Create post handler: user=%d err=%v", callerID, err)
			httputil.WriteInternalError(w, "Failed to create post")
		}
		return
	}

	httputil.WriteSuccess(w, "Post successfully created", post)
}

// Update handles PUT /api/v1/posts/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthenticated(w, "Authentication required")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Update(r.Context(), postID, callerID, &req)
	if err != nil {
		switch {
		case isPostValidationErr(err):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, err.Error())
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You are unauthorized to update this post")
		default:
			log.Printf("[ERROR] Update post handler: user=%d post=%d err=%v", callerID, postID, err)
			httputil.WriteInternalError(w, "Failed to update post")
		}
		return
	}

	httputil.WriteSuccess(w, "Post successfully updated", post)
}

// Delete handles DELETE /api/v1/posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthenticated(w, "Authentication required")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	photoKey, err := h.postService.Delete(r.Context(), postID, callerID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, err.Error())
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You are unauthorized to delete this post")
		default:
			log.Printf("[ERROR] Delete post handler: user=%d post=%d err=%v", callerID, postID, err)
			httputil.WriteInternalError(w, "Failed to delete post")
		}
		return
	}

	if photoKey != "" && h.mediaDeleter != nil {
		if err := h.mediaDeleter.DeleteObject(r.Context(), photoKey); err != nil {
			log.Printf("[PostHandler] Failed to delete post photo: key=%s err=%v", photoKey, err)
		}
	}

	httputil.WriteSuccess(w, "Post successfully deleted", nil)
}

// ListMine handles GET /api/v1/posts/mine
func (h *PostHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	h.listPosts(w, r, h.postService.ListMine)
}

// ListFollowed handles GET /api/v1/posts/follow
func (h *PostHandler) ListFollowed(w http.ResponseWriter, r *http.Request) {
	h.listPosts(w, r, h.postService.ListFollowed)
}

func (h *PostHandler) listPosts(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, callerID int64, q model.ListQuery) (*model.PostPage, error),
) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthenticated(w, "Authentication required")
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	page, err := op(r.Context(), callerID, q)
	if err != nil {
		log.Printf("[ERROR] List posts handler: user=%d err=%v", callerID, err)
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}

	httputil.WritePaged(w, "Success", page.Items, httputil.Meta{
		Total:    page.Total,
		Page:     page.Page,
		LastPage: page.LastPage,
	})
}

// Like handles POST /api/v1/posts/{id}/like
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.changeLike(w, r, h.postService.Like)
}

// Unlike handles POST /api/v1/posts/{id}/unlike
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.changeLike(w, r, h.postService.Unlike)
}

func (h *PostHandler) changeLike(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, postID, callerID int64) error,
) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthenticated(w, "Authentication required")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	if err := op(r.Context(), postID, callerID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, err.Error())
		case errors.Is(err, model.ErrAlreadyLiked), errors.Is(err, model.ErrNotLiked):
			httputil.WriteConflict(w, err.Error())
		default:
			log.Printf("[ERROR] Like handler: user=%d post=%d err=%v", callerID, postID, err)
			httputil.WriteInternalError(w, "Failed to update like")
		}
		return
	}

	httputil.WriteSuccess(w, "Success", nil)
}

// Comment handles POST /api/v1/posts/{id}/comment
func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthenticated(w, "Authentication required")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.postService.Comment(r.Context(), postID, callerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentRequired), errors.Is(err, model.ErrCommentTooLong):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, err.Error())
		default:
			log.Printf("[ERROR] Comment handler: user=%d post=%d err=%v", callerID, postID, err)
			httputil.WriteInternalError(w, "Failed to create comment")
		}
		return
	}

	httputil.WriteSuccess(w, "Success", comment)
}

func isPostValidationErr(err error) bool {
	return errors.Is(err, model.ErrTitleRequired) ||
		errors.Is(err, model.ErrTitleTooLong) ||
		errors.Is(err, model.ErrCaptionRequired) ||
		errors.Is(err, model.ErrCaptionTooLong)
}

// parseListQuery applies the listing defaults: page=1, limit=10.
func parseListQuery(r *http.Request) (model.ListQuery, error) {
	q := model.ListQuery{
		Search: r.URL.Query().Get("search"),
		Page:   model.DefaultPage,
		Limit:  model.DefaultLimit,
	}

	if p := r.URL.Query().Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil || parsed <= 0 {
			return q, errors.New("invalid page parameter")
		}
		q.Page = parsed
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			return q, errors.New("invalid limit parameter")
		}
		q.Limit = parsed
	}

	return q, nil
}
