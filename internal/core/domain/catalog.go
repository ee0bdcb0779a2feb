package domain

import "time"

// Tag labels recipes. Recipes is the back-reference array of recipe ids,
// and Popularity counts how many recipe references currently exist.
type Tag struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Popularity int       `json:"popularity"`
	Recipes    []string  `json:"recipes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Ingredient has the same shape as Tag: a unique name plus back-references
// to the recipes that use it.
type Ingredient struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Popularity int       `json:"popularity"`
	Recipes    []string  `json:"recipes"`
	CreatedAt  time.Time `json:"created_at"`
}
