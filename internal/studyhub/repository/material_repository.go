package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	studydomain "campusbuddy-backend/internal/studyhub/domain"
	"campusbuddy-backend/pkg/votes"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaterialRepository defines the interface for study material data
// operations.
type MaterialRepository interface {
	Create(ctx context.Context, material *studydomain.Material) error
	FindByID(ctx context.Context, id string) (*studydomain.Material, error)
	List(ctx context.Context, filter studydomain.Filter, skip, limit int64) ([]*studydomain.Material, int64, error)
	Update(ctx context.Context, id string, set bson.M) (*studydomain.Material, error)
	Delete(ctx context.Context, id string) error
	ApplyVote(ctx context.Context, id, userID string, direction int) (*studydomain.Material, error)
}

type materialRepository struct {
	collection *mongo.Collection
	log        *logrus.Logger
}

func NewMaterialRepository(db *mongo.Database, log *logrus.Logger) MaterialRepository {
	return &materialRepository{collection: db.Collection("materials"), log: log}
}

func (r *materialRepository) Create(ctx context.Context, material *studydomain.Material) error {
	material.ID = primitive.NewObjectID()
	material.CreatedAt = time.Now()
	material.UpdatedAt = material.CreatedAt
	if material.Votes == nil {
		material.Votes = map[string]int{}
	}

	if _, err := r.collection.InsertOne(ctx, material); err != nil {
		r.log.WithError(err).Error("failed to create material")
		return fmt.Errorf("failed to create material: %w", err)
	}
	return nil
}

func (r *materialRepository) FindByID(ctx context.Context, id string) (*studydomain.Material, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, studydomain.ErrNotFound
	}

	var material studydomain.Material
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&material)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, studydomain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find material: %w", err)
	}
	return &material, nil
}

func (r *materialRepository) List(ctx context.Context, filter studydomain.Filter, skip, limit int64) ([]*studydomain.Material, int64, error) {
	query := bson.M{}
	if filter.Subject != "" {
		query["subject"] = filter.Subject
	}
	if filter.Semester != "" {
		query["semester"] = filter.Semester
	}
	if filter.Search != "" {
		query["title"] = primitive.Regex{Pattern: filter.Search, Options: "i"}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count materials: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "vote_count", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list materials: %w", err)
	}
	defer cursor.Close(ctx)

	var materials []*studydomain.Material
	if err := cursor.All(ctx, &materials); err != nil {
		return nil, 0, fmt.Errorf("failed to decode materials: %w", err)
	}
	return materials, total, nil
}

func (r *materialRepository) Update(ctx context.Context, id string, set bson.M) (*studydomain.Material, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, studydomain.ErrNotFound
	}

	set["updated_at"] = time.Now()

	res := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if res.Err() != nil {
		if errors.Is(res.Err(), mongo.ErrNoDocuments) {
			return nil, studydomain.ErrNotFound
		}
		r.log.WithError(res.Err()).WithField("id", id).Error("failed to update material")
		return nil, fmt.Errorf("failed to update material: %w", res.Err())
	}

	var material studydomain.Material
	if err := res.Decode(&material); err != nil {
		return nil, fmt.Errorf("failed to decode updated material: %w", err)
	}
	return &material, nil
}

func (r *materialRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return studydomain.ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	if res.DeletedCount == 0 {
		return studydomain.ErrNotFound
	}
	return nil
}

func (r *materialRepository) ApplyVote(ctx context.Context, id, userID string, direction int) (*studydomain.Material, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, studydomain.ErrNotFound
	}

	var material studydomain.Material
	if err := votes.Apply(ctx, r.collection, oid, userID, direction, &material); err != nil {
		if errors.Is(err, votes.ErrNotFound) {
			return nil, studydomain.ErrNotFound
		}
		r.log.WithError(err).WithField("id", id).Error("failed to apply material vote")
		return nil, err
	}
	return &material, nil
}
