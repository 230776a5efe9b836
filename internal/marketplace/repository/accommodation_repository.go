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

// AccommodationRepository defines the interface for accommodation data
// operations.
type AccommodationRepository interface {
	Create(ctx context.Context, acc *marketdomain.Accommodation) error
	FindByID(ctx context.Context, id string) (*marketdomain.Accommodation, error)
	List(ctx context.Context, filter marketdomain.AccommodationFilter, skip, limit int64) ([]*marketdomain.Accommodation, int64, error)
	Update(ctx context.Context, id string, set bson.M) (*marketdomain.Accommodation, error)
	Delete(ctx context.Context, id string) error
}

type accommodationRepository struct {
	collection *mongo.Collection
	log        *logrus.Logger
}

func NewAccommodationRepository(db *mongo.Database, log *logrus.Logger) AccommodationRepository {
	return &accommodationRepository{collection: db.Collection("accommodations"), log: log}
}

func (r *accommodationRepository) Create(ctx context.Context, acc *marketdomain.Accommodation) error {
	acc.ID = primitive.NewObjectID()
	acc.CreatedAt = time.Now()
	acc.UpdatedAt = acc.CreatedAt
	if acc.Amenities == nil {
		acc.Amenities = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, acc); err != nil {
		r.log.WithError(err).Error("failed to create accommodation")
		return fmt.Errorf("failed to create accommodation: %w", err)
	}
	return nil
}

func (r *accommodationRepository) FindByID(ctx context.Context, id string) (*marketdomain.Accommodation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, marketdomain.ErrAccommodationNotFound
	}

	var acc marketdomain.Accommodation
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&acc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, marketdomain.ErrAccommodationNotFound
		}
		return nil, fmt.Errorf("failed to find accommodation: %w", err)
	}
	return &acc, nil
}

func (r *accommodationRepository) List(ctx context.Context, filter marketdomain.AccommodationFilter, skip, limit int64) ([]*marketdomain.Accommodation, int64, error) {
	query := bson.M{}
	if filter.MaxRent != nil {
		query["rent"] = bson.M{"$lte": *filter.MaxRent}
	}
	if filter.Search != "" {
		query["title"] = primitive.Regex{Pattern: filter.Search, Options: "i"}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count accommodations: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accommodations: %w", err)
	}
	defer cursor.Close(ctx)

	var accs []*marketdomain.Accommodation
	if err := cursor.All(ctx, &accs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode accommodations: %w", err)
	}
	return accs, total, nil
}

func (r *accommodationRepository) Update(ctx context.Context, id string, set bson.M) (*marketdomain.Accommodation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, marketdomain.ErrAccommodationNotFound
	}

	set["updated_at"] = time.Now()

	res := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if res.Err() != nil {
		if errors.Is(res.Err(), mongo.ErrNoDocuments) {
			return nil, marketdomain.ErrAccommodationNotFound
		}
		r.log.WithError(res.Err()).WithField("id", id).Error("failed to update accommodation")
		return nil, fmt.Errorf("failed to update accommodation: %w", res.Err())
	}

	var acc marketdomain.Accommodation
	if err := res.Decode(&acc); err != nil {
		return nil, fmt.Errorf("failed to decode updated accommodation: %w", err)
	}
	return &acc, nil
}

func (r *accommodationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return marketdomain.ErrAccommodationNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete accommodation: %w", err)
	}
	if res.DeletedCount == 0 {
		return marketdomain.ErrAccommodationNotFound
	}
	return nil
}
