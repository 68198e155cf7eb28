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

// CommentRepository implements repository.CommentRepository using PostgreSQL.
type CommentRepository struct {
	pool database.DBTX
}

// NewCommentRepository creates a new PostgreSQL-backed comment repository.
func NewCommentRepository(pool database.DBTX) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create inserts a new comment into the database.
func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO comments (id, user_id, review_id, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.UserID,
		c.ReviewID,
		c.Text,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.InvalidInput("referenced user or review does not exist")
		}
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

// ListByReviewID returns all comments on the given review.
func (r *CommentRepository) ListByReviewID(ctx context.Context, reviewID string) ([]domain.Comment, error) {
	query := `
		SELECT id, user_id, review_id, text, created_at, updated_at
		FROM comments
		WHERE review_id = $1
		ORDER BY created_at`

	return r.listComments(ctx, query, reviewID)
}

// ListByUserID returns all comments written by the given user.
func (r *CommentRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Comment, error) {
	query := `
		SELECT id, user_id, review_id, text, created_at, updated_at
		FROM comments
		WHERE user_id = $1
		ORDER BY created_at`

	return r.listComments(ctx, query, userID)
}

// Update modifies a comment in a single conditional statement scoped to the
// owner. Unlike reviews, a non-owner mutation surfaces as forbidden.
func (r *CommentRepository) Update(ctx context.Context, id, userID, text string) (*domain.Comment, error) {
	query := `
		UPDATE comments
		SET text = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, review_id, text, created_at, updated_at`

	var c domain.Comment
	err := r.pool.QueryRow(ctx, query, text, time.Now().UTC(), id, userID).Scan(
		&c.ID,
		&c.UserID,
		&c.ReviewID,
		&c.Text,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Forbidden("not authorized to update this comment")
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}

	return &c, nil
}

// Delete removes a comment in a single conditional statement scoped to the owner.
func (r *CommentRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM comments WHERE id = $1 AND user_id = $2`

	ct, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.Forbidden("not authorized to delete this comment")
	}

	return nil
}

// listComments executes a query expected to return comment rows.
func (r *CommentRepository) listComments(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.ReviewID,
			&c.Text,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	if comments == nil {
		comments = []domain.Comment{}
	}

	return comments, nil
}
