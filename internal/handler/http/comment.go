package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acme/review-platform/internal/service"
	"github.com/acme/review-platform/pkg/httputil"
	"github.com/acme/review-platform/pkg/middleware"
	"github.com/acme/review-platform/pkg/validator"
)

// CommentHandler handles HTTP requests for comment endpoints.
type CommentHandler struct {
	service *service.CommentService
	logger  *slog.Logger
}

// NewCommentHandler creates a new comment HTTP handler.
func NewCommentHandler(svc *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{service: svc, logger: logger}
}

// CreateCommentRequest is the JSON request body for creating a comment.
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=255"`
}

// UpdateCommentRequest is the JSON request body for updating a comment.
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=255"`
}

// ListByReview handles GET /api/v1/reviews/{reviewID}/comments
func (h *CommentHandler) ListByReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := httputil.ParseUUID(w, chi.URLParam(r, "reviewID"))
	if !ok {
		return
	}

	comments, err := h.service.ListByReview(r.Context(), reviewID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: comments})
}

// Create handles POST /api/v1/reviews/{reviewID}/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	reviewID, ok := httputil.ParseUUID(w, chi.URLParam(r, "reviewID"))
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	comment, err := h.service.Create(r.Context(), service.CreateCommentInput{
		UserID:   middleware.UserIDFromContext(r.Context()),
		ReviewID: reviewID.String(),
		Text:     req.Text,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: comment})
}

// ListByUser handles GET /api/v1/users/{userID}/comments
// Requires authentication; the path user need not match the caller.
func (h *CommentHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.ParseUUID(w, chi.URLParam(r, "userID"))
	if !ok {
		return
	}

	comments, err := h.service.ListByUser(r.Context(), userID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: comments})
}

// Update handles PUT /api/v1/comments/{commentID}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	commentID, ok := httputil.ParseUUID(w, chi.URLParam(r, "commentID"))
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	comment, err := h.service.Update(r.Context(), commentID.String(), middleware.UserIDFromContext(r.Context()), req.Text)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: comment})
}

// Delete handles DELETE /api/v1/comments/{commentID}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, ok := httputil.ParseUUID(w, chi.URLParam(r, "commentID"))
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), commentID.String(), middleware.UserIDFromContext(r.Context())); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
