package domain

import (
	"time"
)

// Rating bounds enforced both in the service layer and by a database CHECK.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a product. A user may review a given product
// at most once.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Rating    int       `json:"rating"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRating reports whether the rating is within the allowed range.
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
