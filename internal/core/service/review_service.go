package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/showcase/portfolio-api/internal/core/domain"
	"github.com/showcase/portfolio-api/internal/core/ports"
)

// ReviewService implements review submission and the ordered listing.
type ReviewService struct {
	reviews ports.ReviewRepository
	logger  zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, logger: logger}
}

// Submit validates and appends a review. A rating outside [1,5] is rejected
// with domain.ErrInvalidRating; it is never clamped to a default.
func (s *ReviewService) Submit(ctx context.Context, in ports.SubmitReviewInput) (*domain.Review, error) {
	name := strings.TrimSpace(in.Name)
	text := strings.TrimSpace(in.Review)

	if len([]rune(name)) < 2 {
		return nil, domain.ValidationErrors{"Name must be at least 2 characters"}
	}
	if text == "" {
		return nil, domain.ValidationErrors{"Review text is required"}
	}
	if !domain.ValidRating(in.Rating) {
		return nil, domain.ErrInvalidRating
	}

	review := &domain.Review{
		Name:      name,
		Rating:    in.Rating,
		Review:    text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviews.Insert(ctx, review); err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	s.logger.Info().Str("name", review.Name).Int("rating", review.Rating).Msg("review submitted")
	return review, nil
}

// List returns every review in insertion order. The carousel windows the
// full set client-side in pages of three.
func (s *ReviewService) List(ctx context.Context) ([]*domain.Review, error) {
	reviews, err := s.reviews.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
