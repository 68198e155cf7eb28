package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/acme/review-platform/internal/domain"
	"github.com/acme/review-platform/pkg/database"
	apperrors "github.com/acme/review-platform/pkg/errors"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review into the database. The UNIQUE (user_id,
// product_id) constraint rejects a second review of the same product; the
// rating CHECK and foreign keys surface as invalid input.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, product_id, rating, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		rv.ID,
		rv.UserID,
		rv.ProductID,
		rv.Rating,
		rv.Details,
		rv.CreatedAt,
		rv.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return apperrors.AlreadyExists("review", "product_id", rv.ProductID)
		case isForeignKeyViolation(err):
			return apperrors.InvalidInput("referenced user or product does not exist")
		case isCheckViolation(err):
			return apperrors.InvalidInput("rating must be between 1 and 5")
		}
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// ListByProductID returns all reviews for the given product.
func (r *ReviewRepository) ListByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	query := `
		SELECT id, user_id, product_id, rating, details, created_at, updated_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at`

	return r.listReviews(ctx, query, productID)
}

// ListByUserID returns all reviews written by the given user.
func (r *ReviewRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Review, error) {
	query := `
		SELECT id, user_id, product_id, rating, details, created_at, updated_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at`

	return r.listReviews(ctx, query, userID)
}

// Update modifies a review in a single conditional statement. The WHERE clause
// matches both id and owner, so the ownership check and the update are atomic.
// A non-existent review and a review owned by another user both yield no row.
func (r *ReviewRepository) Update(ctx context.Context, id, userID string, rating int, details string) (*domain.Review, error) {
	query := `
		UPDATE reviews
		SET rating = $1, details = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING id, user_id, product_id, rating, details, created_at, updated_at`

	var rv domain.Review
	err := r.pool.QueryRow(ctx, query, rating, details, time.Now().UTC(), id, userID).Scan(
		&rv.ID,
		&rv.UserID,
		&rv.ProductID,
		&rv.Rating,
		&rv.Details,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		if isCheckViolation(err) {
			return nil, apperrors.InvalidInput("rating must be between 1 and 5")
		}
		return nil, fmt.Errorf("update review: %w", err)
	}

	return &rv, nil
}

// Delete removes a review in a single conditional statement scoped to the owner.
func (r *ReviewRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM reviews WHERE id = $1 AND user_id = $2`

	ct, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.InvalidInput("review has comments and cannot be deleted")
		}
		return fmt.Errorf("delete review: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", id)
	}

	return nil
}

// listReviews executes a query expected to return review rows.
func (r *ReviewRepository) listReviews(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.UserID,
			&rv.ProductID,
			&rv.Rating,
			&rv.Details,
			&rv.CreatedAt,
			&rv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}
