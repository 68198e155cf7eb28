package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acme/review-platform/internal/service"
	apperrors "github.com/acme/review-platform/pkg/errors"
	"github.com/acme/review-platform/pkg/httputil"
	"github.com/acme/review-platform/pkg/middleware"
	"github.com/acme/review-platform/pkg/validator"
)

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: svc, logger: logger}
}

// CreateReviewRequest is the JSON request body for creating a review.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Details string `json:"details" validate:"omitempty,max=255"`
}

// UpdateReviewRequest is the JSON request body for updating a review.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Details string `json:"details" validate:"omitempty,max=255"`
}

// ListByProduct handles GET /api/v1/products/{productID}/reviews
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	reviews, err := h.service.ListByProduct(r.Context(), productID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: reviews})
}

// Create handles POST /api/v1/products/{productID}/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	var req CreateReviewRequest
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

	review, err := h.service.Create(r.Context(), service.CreateReviewInput{
		UserID:    middleware.UserIDFromContext(r.Context()),
		ProductID: productID.String(),
		Rating:    req.Rating,
		Details:   req.Details,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// ListByUser handles GET /api/v1/users/{userID}/reviews
// Only the authenticated user may list their own reviews.
func (h *ReviewHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: reviews})
}

// Update handles PUT /api/v1/users/{userID}/reviews/{reviewID}
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	userID, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	reviewID, ok := httputil.ParseUUID(w, chi.URLParam(r, "reviewID"))
	if !ok {
		return
	}

	var req UpdateReviewRequest
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

	review, err := h.service.Update(r.Context(), reviewID.String(), userID, service.UpdateReviewInput{
		Rating:  req.Rating,
		Details: req.Details,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: review})
}

// Delete handles DELETE /api/v1/users/{userID}/reviews/{reviewID}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	reviewID, ok := httputil.ParseUUID(w, chi.URLParam(r, "reviewID"))
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), reviewID.String(), userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requireSelf checks that the {userID} path parameter matches the
// authenticated user before any store access. On mismatch it writes a 403 and
// returns false.
func (h *ReviewHandler) requireSelf(w http.ResponseWriter, r *http.Request) (string, bool) {
	pathUserID, ok := httputil.ParseUUID(w, chi.URLParam(r, "userID"))
	if !ok {
		return "", false
	}

	authUserID := middleware.UserIDFromContext(r.Context())
	if pathUserID.String() != authUserID {
		httputil.WriteError(w, r, apperrors.Forbidden("cannot access another user's reviews"), h.logger)
		return "", false
	}

	return authUserID, true
}
