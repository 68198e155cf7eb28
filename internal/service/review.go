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

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	producer   *event.Producer
	logger     *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		producer:   producer,
		logger:     logger,
	}
}

// CreateReviewInput holds the parameters for creating a review.
type CreateReviewInput struct {
	UserID    string
	ProductID string
	Rating    int
	Details   string
}

// UpdateReviewInput holds the parameters for updating a review.
type UpdateReviewInput struct {
	Rating  int
	Details string
}

// Create adds a new review. The rating is validated before the store is
// touched; the unique (user, product) constraint rejects duplicates.
func (s *ReviewService) Create(ctx context.Context, input CreateReviewInput) (*domain.Review, error) {
	if !domain.ValidRating(input.Rating) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}

	now := time.Now().UTC()
	review := &domain.Review{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Details:   input.Details,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	// Publish review event (non-blocking on failure).
	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

// ListByProduct returns all reviews for the given product.
func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	reviews, err := s.reviewRepo.ListByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by product: %w", err)
	}
	return reviews, nil
}

// ListByUser returns all reviews written by the given user.
func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	reviews, err := s.reviewRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by user: %w", err)
	}
	return reviews, nil
}

// Update modifies a review owned by userID. A review that does not exist or
// is owned by someone else surfaces as not found.
func (s *ReviewService) Update(ctx context.Context, id, userID string, input UpdateReviewInput) (*domain.Review, error) {
	if !domain.ValidRating(input.Rating) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}

	review, err := s.reviewRepo.Update(ctx, id, userID, input.Rating, input.Details)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.logger.InfoContext(ctx, "review updated",
		slog.String("review_id", id),
		slog.String("user_id", userID),
	)

	return review, nil
}

// Delete removes a review owned by userID.
func (s *ReviewService) Delete(ctx context.Context, id, userID string) error {
	if err := s.reviewRepo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.logger.InfoContext(ctx, "review deleted",
		slog.String("review_id", id),
		slog.String("user_id", userID),
	)

	return nil
}
