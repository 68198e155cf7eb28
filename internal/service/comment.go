package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/acme/review-platform/internal/domain"
	"github.com/acme/review-platform/internal/event"
	"github.com/acme/review-platform/internal/repository"
	apperrors "github.com/acme/review-platform/pkg/errors"
)

// CommentService implements the business logic for comment operations.
type CommentService struct {
	commentRepo repository.CommentRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(
	commentRepo repository.CommentRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		producer:    producer,
		logger:      logger,
	}
}

// CreateCommentInput holds the parameters for creating a comment.
type CreateCommentInput struct {
	UserID   string
	ReviewID string
	Text     string
}

// Create adds a new comment on a review.
func (s *CommentService) Create(ctx context.Context, input CreateCommentInput) (*domain.Comment, error) {
	if input.Text == "" {
		return nil, apperrors.InvalidInput("text is required")
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		ReviewID:  input.ReviewID,
		Text:      input.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	// Publish comment event (non-blocking on failure).
	if err := s.producer.PublishCommentCreated(ctx, comment); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish comment.created event",
			slog.String("comment_id", comment.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "comment created",
		slog.String("comment_id", comment.ID),
		slog.String("review_id", comment.ReviewID),
	)

	return comment, nil
}

// ListByReview returns all comments on the given review.
func (s *CommentService) ListByReview(ctx context.Context, reviewID string) ([]domain.Comment, error) {
	comments, err := s.commentRepo.ListByReviewID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("list comments by review: %w", err)
	}
	return comments, nil
}

// ListByUser returns all comments written by the given user.
func (s *CommentService) ListByUser(ctx context.Context, userID string) ([]domain.Comment, error) {
	comments, err := s.commentRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list comments by user: %w", err)
	}
	return comments, nil
}

// Update modifies a comment owned by userID. A comment that does not exist or
// is owned by someone else surfaces as forbidden.
func (s *CommentService) Update(ctx context.Context, id, userID, text string) (*domain.Comment, error) {
	if text == "" {
		return nil, apperrors.InvalidInput("text is required")
	}

	comment, err := s.commentRepo.Update(ctx, id, userID, text)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	s.logger.InfoContext(ctx, "comment updated",
		slog.String("comment_id", id),
		slog.String("user_id", userID),
	)

	return comment, nil
}

// Delete removes a comment owned by userID.
func (s *CommentService) Delete(ctx context.Context, id, userID string) error {
	if err := s.commentRepo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.logger.InfoContext(ctx, "comment deleted",
		slog.String("comment_id", id),
		slog.String("user_id", userID),
	)

	return nil
}
