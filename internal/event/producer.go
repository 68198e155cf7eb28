package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acme/review-platform/internal/domain"
	pkgkafka "github.com/acme/review-platform/pkg/kafka"
)

// Kafka topic constants for review platform domain events.
const (
	TopicUserRegistered = "reviews.user.registered"
	TopicReviewCreated  = "reviews.review.created"
	TopicCommentCreated = "reviews.comment.created"
)

// Aggregate type constants.
const (
	AggregateTypeUser    = "user"
	AggregateTypeReview  = "review"
	AggregateTypeComment = "comment"
)

// Source identifier for events originating from this service.
const SourceReviewAPI = "review-api"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
}

// CommentCreatedData is the payload for a comment.created event.
type CommentCreatedData struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	ReviewID string `json:"review_id"`
}

// Producer publishes review platform domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, SourceReviewAPI, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return nil
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:        review.ID,
		UserID:    review.UserID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ID, AggregateTypeReview, SourceReviewAPI, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
	)

	return nil
}

// PublishCommentCreated publishes a comment.created event.
func (p *Producer) PublishCommentCreated(ctx context.Context, comment *domain.Comment) error {
	data := CommentCreatedData{
		ID:       comment.ID,
		UserID:   comment.UserID,
		ReviewID: comment.ReviewID,
	}

	event, err := pkgkafka.NewEvent(TopicCommentCreated, comment.ID, AggregateTypeComment, SourceReviewAPI, data)
	if err != nil {
		return fmt.Errorf("create comment.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCommentCreated, event); err != nil {
		return fmt.Errorf("publish comment.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published comment.created event",
		slog.String("comment_id", comment.ID),
		slog.String("review_id", comment.ReviewID),
	)

	return nil
}
