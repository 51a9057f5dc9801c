package domain

import (
	"errors"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

var ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")

// ValidRating reports whether rating lies within the allowed star range.
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// Review is a single visitor review. Reviews are append-only: once stored
// they are never edited or deleted.
type Review struct {
	ID        string    `json:"-"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
}
