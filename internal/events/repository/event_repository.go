package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventdomain "campusbuddy-backend/internal/events/domain"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepository defines the interface for event data operations.
type EventRepository interface {
	Create(ctx context.Context, event *eventdomain.Event) error
	FindByID(ctx context.Context, id string) (*eventdomain.Event, error)
	List(ctx context.Context, filter eventdomain.Filter, skip, limit int64) ([]*eventdomain.Event, int64, error)
	Update(ctx context.Context, id string, set bson.M) (*eventdomain.Event, error)
	Delete(ctx context.Context, id string) error
}

type eventRepository struct {
	collection *mongo.Collection
	log        *logrus.Logger
}

func NewEventRepository(db *mongo.Database, log *logrus.Logger) EventRepository {
	return &eventRepository{collection: db.Collection("events"), log: log}
}

func (r *eventRepository) Create(ctx context.Context, event *eventdomain.Event) error {
	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		r.log.WithError(err).Error("failed to create event")
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*eventdomain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, eventdomain.ErrNotFound
	}

	var event eventdomain.Event
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, eventdomain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, filter eventdomain.Filter, skip, limit int64) ([]*eventdomain.Event, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Upcoming {
		query["starts_at"] = bson.M{"$gte": time.Now()}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "starts_at", Value: 1}, {Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*eventdomain.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, 0, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, set bson.M) (*eventdomain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, eventdomain.ErrNotFound
	}

	set["updated_at"] = time.Now()

	res := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if res.Err() != nil {
		if errors.Is(res.Err(), mongo.ErrNoDocuments) {
			return nil, eventdomain.ErrNotFound
		}
		r.log.WithError(res.Err()).WithField("id", id).Error("failed to update event")
		return nil, fmt.Errorf("failed to update event: %w", res.Err())
	}

	var event eventdomain.Event
	if err := res.Decode(&event); err != nil {
		return nil, fmt.Errorf("failed to decode updated event: %w", err)
	}
	return &event, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return eventdomain.ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return eventdomain.ErrNotFound
	}
	return nil
}
