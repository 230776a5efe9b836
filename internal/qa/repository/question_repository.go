package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	qadomain "campusbuddy-backend/internal/qa/domain"
	"campusbuddy-backend/pkg/votes"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuestionRepository defines the interface for question data operations.
type QuestionRepository interface {
	Create(ctx context.Context, question *qadomain.Question) error
	FindByID(ctx context.Context, id string) (*qadomain.Question, error)
	List(ctx context.Context, filter qadomain.Filter, skip, limit int64) ([]*qadomain.Question, int64, error)
	Update(ctx context.Context, id string, set bson.M) (*qadomain.Question, error)
	Delete(ctx context.Context, id string) error
	ApplyVote(ctx context.Context, id, userID string, direction int) (*qadomain.Question, error)
	// NoteAnswerAdded bumps the answer count and flips an open question
	// to answered in one atomic step each.
	NoteAnswerAdded(ctx context.Context, id string) error
	NoteAnswerRemoved(ctx context.Context, id string) error
	MarkAnswered(ctx context.Context, id string) error
}

type questionRepository struct {
	collection *mongo.Collection
	log        *logrus.Logger
}

func NewQuestionRepository(db *mongo.Database, log *logrus.Logger) QuestionRepository {
	return &questionRepository{collection: db.Collection("questions"), log: log}
}

func (r *questionRepository) Create(ctx context.Context, question *qadomain.Question) error {
	question.ID = primitive.NewObjectID()
	question.Status = qadomain.StatusOpen
	question.CreatedAt = time.Now()
	question.UpdatedAt = question.CreatedAt
	if question.Tags == nil {
		question.Tags = []string{}
	}
	if question.Votes == nil {
		question.Votes = map[string]int{}
	}

	if _, err := r.collection.InsertOne(ctx, question); err != nil {
		r.log.WithError(err).Error("failed to create question")
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *questionRepository) FindByID(ctx context.Context, id string) (*qadomain.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, qadomain.ErrQuestionNotFound
	}

	var question qadomain.Question
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&question)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, qadomain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}
	return &question, nil
}

func (r *questionRepository) List(ctx context.Context, filter qadomain.Filter, skip, limit int64) ([]*qadomain.Question, int64, error) {
	query := bson.M{}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		query["title"] = primitive.Regex{Pattern: filter.Search, Options: "i"}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count questions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}
	defer cursor.Close(ctx)

	var questions []*qadomain.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode questions: %w", err)
	}
	return questions, total, nil
}

func (r *questionRepository) Update(ctx context.Context, id string, set bson.M) (*qadomain.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, qadomain.ErrQuestionNotFound
	}

	set["updated_at"] = time.Now()

	res := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if res.Err() != nil {
		if errors.Is(res.Err(), mongo.ErrNoDocuments) {
			return nil, qadomain.ErrQuestionNotFound
		}
		r.log.WithError(res.Err()).WithField("id", id).Error("failed to update question")
		return nil, fmt.Errorf("failed to update question: %w", res.Err())
	}

	var question qadomain.Question
	if err := res.Decode(&question); err != nil {
		return nil, fmt.Errorf("failed to decode updated question: %w", err)
	}
	return &question, nil
}

func (r *questionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return qadomain.ErrQuestionNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if res.DeletedCount == 0 {
		return qadomain.ErrQuestionNotFound
	}
	return nil
}

func (r *questionRepository) ApplyVote(ctx context.Context, id, userID string, direction int) (*qadomain.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, qadomain.ErrQuestionNotFound
	}

	var question qadomain.Question
	if err := votes.Apply(ctx, r.collection, oid, userID, direction, &question); err != nil {
		if errors.Is(err, votes.ErrNotFound) {
			return nil, qadomain.ErrQuestionNotFound
		}
		r.log.WithError(err).WithField("id", id).Error("failed to apply question vote")
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) NoteAnswerAdded(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return qadomain.ErrQuestionNotFound
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"answer_count": 1}, "$set": bson.M{"updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to bump answer count: %w", err)
	}
	if res.MatchedCount == 0 {
		return qadomain.ErrQuestionNotFound
	}

	return r.MarkAnswered(ctx, id)
}

func (r *questionRepository) NoteAnswerRemoved(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return qadomain.ErrQuestionNotFound
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "answer_count": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"answer_count": -1}, "$set": bson.M{"updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to drop answer count: %w", err)
	}
	return nil
}

// MarkAnswered flips an open question to answered. The status guard
// lives in the filter, so closed questions stay closed.
func (r *questionRepository) MarkAnswered(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return qadomain.ErrQuestionNotFound
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "status": qadomain.StatusOpen},
		bson.M{"$set": bson.M{"status": qadomain.StatusAnswered, "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to mark question answered: %w", err)
	}
	return nil
}
