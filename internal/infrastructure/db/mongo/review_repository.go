package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/showcase/portfolio-api/internal/core/domain"
)

const reviewCollection = "user_reviews"

// ReviewRepository stores reviews as append-only documents. Listing sorts by
// _id ascending, which preserves insertion order.
type ReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{coll: db.Collection(reviewCollection)}
}

type reviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Rating    int                `bson:"rating"`
	Review    string             `bson:"review"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *ReviewRepository) Insert(ctx context.Context, review *domain.Review) error {
	doc := reviewDoc{
		Name:      review.Name,
		Rating:    review.Rating,
		Review:    review.Review,
		CreatedAt: review.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid.Hex()
	}
	return nil
}

func (r *ReviewRepository) ListOrdered(ctx context.Context) ([]*domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []*domain.Review
	for cursor.Next(ctx) {
		var doc reviewDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode review: %w", err)
		}
		reviews = append(reviews, &domain.Review{
			ID:        doc.ID.Hex(),
			Name:      doc.Name,
			Rating:    doc.Rating,
			Review:    doc.Review,
			CreatedAt: unixToTime(doc.CreatedAt),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
