package repository

import (
	"context"

	"github.com/acme/review-platform/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns all users.
	List(ctx context.Context) ([]domain.User, error)
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns all products.
	List(ctx context.Context) ([]domain.Product, error)
}

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review into the store.
	Create(ctx context.Context, review *domain.Review) error

	// ListByProductID returns all reviews for the given product.
	ListByProductID(ctx context.Context, productID string) ([]domain.Review, error)

	// ListByUserID returns all reviews written by the given user.
	ListByUserID(ctx context.Context, userID string) ([]domain.Review, error)

	// Update modifies the rating and details of a review owned by userID.
	// Returns ErrNotFound when no review matches both id and userID, so a
	// missing review and a review owned by someone else are indistinguishable.
	Update(ctx context.Context, id, userID string, rating int, details string) (*domain.Review, error)

	// Delete removes a review owned by userID. Returns ErrNotFound when no
	// review matches both id and userID.
	Delete(ctx context.Context, id, userID string) error
}

// CommentRepository defines the interface for comment persistence operations.
type CommentRepository interface {
	// Create inserts a new comment into the store.
	Create(ctx context.Context, comment *domain.Comment) error

	// ListByReviewID returns all comments on the given review.
	ListByReviewID(ctx context.Context, reviewID string) ([]domain.Comment, error)

	// ListByUserID returns all comments written by the given user.
	ListByUserID(ctx context.Context, userID string) ([]domain.Comment, error)

	// Update modifies the text of a comment owned by userID. Returns
	// ErrForbidden when no comment matches both id and userID.
	Update(ctx context.Context, id, userID, text string) (*domain.Comment, error)

	// Delete removes a comment owned by userID. Returns ErrForbidden when no
	// comment matches both id and userID.
	Delete(ctx context.Context, id, userID string) error
}
