package domain

import (
	"time"
)

// Comment is a user's reply on a review.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ReviewID  string    `json:"review_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
