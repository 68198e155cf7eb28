package domain

import (
	"time"
)

// User represents a registered user in the system. The password hash is
// excluded from every JSON serialization.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Token holds a signed access token returned on successful login.
type Token struct {
	Token string `json:"token"`
}
