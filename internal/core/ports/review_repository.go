package ports

import (
	"context"

	"github.com/showcase/portfolio-api/internal/core/domain"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Insert(ctx context.Context, review *domain.Review) error
	// ListOrdered returns every review in insertion order. The carousel
	// windows the full set client-side, so there is no server paging.
	ListOrdered(ctx context.Context) ([]*domain.Review, error)
}
