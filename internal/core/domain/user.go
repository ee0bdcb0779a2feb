package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a persisted account. Recipes holds the ids of recipes owned by
// this user, maintained in lockstep with Recipe.Owner.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Recipes      []string  `json:"recipes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the authenticated actor making a request, derived from a
// verified token. It never carries credential material.
type Principal struct {
	ID       string
	Username string
	Name     string
	Role     string
}
