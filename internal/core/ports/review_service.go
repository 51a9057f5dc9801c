package ports

import (
	"context"

	"github.com/showcase/portfolio-api/internal/core/domain"
)

// SubmitReviewInput carries a review submission.
type SubmitReviewInput struct {
	Name   string
	Rating int
	Review string
}

// ReviewService defines the review use cases.
type ReviewService interface {
	// Submit validates and appends a review. Out-of-range ratings are
	// rejected with a named validation error, never clamped.
	Submit(ctx context.Context, in SubmitReviewInput) (*domain.Review, error)
	// List returns all reviews in insertion order.
	List(ctx context.Context) ([]*domain.Review, error)
}
