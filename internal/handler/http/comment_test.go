package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/acme/review-platform/internal/domain"
	apperrors "github.com/acme/review-platform/pkg/errors"
	"github.com/acme/review-platform/pkg/middleware"
)

func setupCommentRouter(handler *CommentHandler, userID string) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/v1/reviews/{reviewID}/comments", handler.ListByReview)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(fakeTokenValidator(userID)))
		r.Post("/api/v1/reviews/{reviewID}/comments", handler.Create)
		r.Get("/api/v1/users/{userID}/comments", handler.ListByUser)
		r.Put("/api/v1/comments/{commentID}", handler.Update)
		r.Delete("/api/v1/comments/{commentID}", handler.Delete)
	})
	return r
}

func sampleComment() *domain.Comment {
	return &domain.Comment{
		ID:       testCommentID,
		UserID:   testUserID,
		ReviewID: testReviewID,
		Text:     "agreed, mine did the same",
	}
}

func TestCommentListByReview_Public(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	handler := NewCommentHandler(handlerTestCommentService(commentRepo), handlerTestLogger())
	router := setupCommentRouter(handler, testUserID)

	commentRepo.On("ListByReviewID", mock.Anything, testReviewID).
		Return([]domain.Comment{*sampleComment()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/"+testReviewID+"/comments", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	commentRepo.AssertExpectations(t)
}

func TestCommentCreate_Success(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	handler := NewCommentHandler(handlerTestCommentService(commentRepo), handlerTestLogger())
	router := setupCommentRouter(handler, testUserID)

	commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil)

	b, _ := json.Marshal(CreateCommentRequest{Text: "nice review"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/"+testReviewID+"/comments", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	commentRepo.AssertExpectations(t)
}

func TestCommentCreate_EmptyText(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	handler := NewCommentHandler(handlerTestCommentService(commentRepo), handlerTestLogger())
	router := setupCommentRouter(handler, testUserID)

	b, _ := json.Marshal(CreateCommentRequest{Text: ""})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/"+testReviewID+"/comments", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	commentRepo.AssertNotCalled(t, "Create")
}

func TestCommentCreate_UnknownReview(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	handler := NewCommentHandler(handlerTestCommentService(commentRepo), handlerTestLogger())
	router := setupCommentRouter(handler, testUserID)

	commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).
		Return(apperrors.InvalidInput("review does not exist"))

	b, _ := json.Marshal(CreateCommentRequest{Text: "orphan"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/"+testReviewID+"/comments", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Listing another user's comments is allowed for any authenticated caller,
// unlike reviews which are restricted to the owner.
func TestCommentListByUser_OtherUserAllowed(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	handler := NewCommentHandler(handlerTestCommentService(commentRepo), handlerTestLogger())
	router := setupCommentRouter(handler, testUserID)

	commentRepo.On("ListByUserID", mock.Anything, testOtherID).
		Return([]domain.Comment{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+testOtherID+"/comments", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	commentRepo.AssertExpectations(t)
}

func TestCommentListByUser_Unauthenticated(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	handler := NewCommentHandler(handlerTestCommentService(commentRepo), handlerTestLogger())
	router := setupCommentRouter(handler, testUserID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+testOtherID+"/comments", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	commentRepo.AssertNotCalled(t, "ListByUserID")
}

func TestCommentUpdate_Success(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	handler := NewCommentHandler(handlerTestCommentService(commentRepo), handlerTestLogger())
	router := setupCommentRouter(handler, testUserID)

	updated := sampleComment()
	updated.Text = "edited"
	commentRepo.On("Update", mock.Anything, testCommentID, testUserID, "edited").
		Return(updated, nil)

	b, _ := json.Marshal(UpdateCommentRequest{Text: "edited"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/comments/"+testCommentID, bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	commentRepo.AssertExpectations(t)
}

// Touching someone else's comment yields 403, not 404. Comments are publicly
// listable so existence is not a secret.
func TestCommentUpdate_NotOwnerYields403(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	handler := NewCommentHandler(handlerTestCommentService(commentRepo), handlerTestLogger())
	router := setupCommentRouter(handler, testUserID)

	commentRepo.On("Update", mock.Anything, testCommentID, testUserID, "hijack").
		Return(nil, apperrors.Forbidden("comment belongs to another user"))

	b, _ := json.Marshal(UpdateCommentRequest{Text: "hijack"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/comments/"+testCommentID, bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
}

func TestCommentDelete_Success(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	handler := NewCommentHandler(handlerTestCommentService(commentRepo), handlerTestLogger())
	router := setupCommentRouter(handler, testUserID)

	commentRepo.On("Delete", mock.Anything, testCommentID, testUserID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/"+testCommentID, nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	commentRepo.AssertExpectations(t)
}

func TestCommentDelete_NotOwnerYields403(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	handler := NewCommentHandler(handlerTestCommentService(commentRepo), handlerTestLogger())
	router := setupCommentRouter(handler, testUserID)

	commentRepo.On("Delete", mock.Anything, testCommentID, testUserID).
		Return(apperrors.Forbidden("comment belongs to another user"))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/"+testCommentID, nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCommentDelete_BadUUID(t *testing.T) {
	commentRepo := new(mockCommentRepo)
	handler := NewCommentHandler(handlerTestCommentService(commentRepo), handlerTestLogger())
	router := setupCommentRouter(handler, testUserID)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
	commentRepo.AssertNotCalled(t, "Delete")
}
