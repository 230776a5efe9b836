package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	marketdomain "campusbuddy-backend/internal/marketplace/domain"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListingRepository defines the interface for marketplace listing data
// operations.
type ListingRepository interface {
	Create(ctx context.Context, listing *marketdomain.Listing) error
	FindByID(ctx context.Context, id string) (*marketdomain.Listing, error)
	List(ctx context.Context, filter marketdomain.ListingFilter, skip, limit int64) ([]*marketdomain.Listing, int64, error)
	Update(ctx context.Context, id string, set bson.M) (*marketdomain.Listing, error)
	Delete(ctx context.Context, id string) error
}

type listingRepository struct {
	collection *mongo.Collection
	log        *logrus.Logger
}

func NewListingRepository(db *mongo.Database, log *logrus.Logger) ListingRepository {
	return &listingRepository{collection: db.Collection("listings"), log: log}
}

func (r *listingRepository) Create(ctx context.Context, listing *marketdomain.Listing) error {
	listing.ID = primitive.NewObjectID()
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	if listing.ImageURLs == nil {
		listing.ImageURLs = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, listing); err != nil {
		r.log.WithError(err).Error("failed to create listing")
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (r *listingRepository) FindByID(ctx context.Context, id string) (*marketdomain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, marketdomain.ErrListingNotFound
	}

	var listing marketdomain.Listing
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, marketdomain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return &listing, nil
}

func (r *listingRepository) List(ctx context.Context, filter marketdomain.ListingFilter, skip, limit int64) ([]*marketdomain.Listing, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.ActiveOnly {
		query["is_active"] = true
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}
	if filter.Search != "" {
		query["title"] = primitive.Regex{Pattern: filter.Search, Options: "i"}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []*marketdomain.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode listings: %w", err)
	}
	return listings, total, nil
}

func (r *listingRepository) Update(ctx context.Context, id string, set bson.M) (*marketdomain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, marketdomain.ErrListingNotFound
	}

	set["updated_at"] = time.Now()

	res := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if res.Err() != nil {
		if errors.Is(res.Err(), mongo.ErrNoDocuments) {
			return nil, marketdomain.ErrListingNotFound
		}
		r.log.WithError(res.Err()).WithField("id", id).Error("failed to update listing")
		return nil, fmt.Errorf("failed to update listing: %w", res.Err())
	}

	var listing marketdomain.Listing
	if err := res.Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode updated listing: %w", err)
	}
	return &listing, nil
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return marketdomain.ErrListingNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return marketdomain.ErrListingNotFound
	}
	return nil
}
