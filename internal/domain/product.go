package domain

import (
	"time"
)

// Product represents an item that users can review.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
