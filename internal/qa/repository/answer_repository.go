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

// AnswerRepository defines the interface for answer data operations.
type AnswerRepository interface {
	Create(ctx context.Context, answer *qadomain.Answer) error
	FindByID(ctx context.Context, id string) (*qadomain.Answer, error)
	ListByQuestion(ctx context.Context, questionID string) ([]*qadomain.Answer, error)
	Update(ctx context.Context, id string, set bson.M) (*qadomain.Answer, error)
	Delete(ctx context.Context, id string) error
	ApplyVote(ctx context.Context, id, userID string, direction int) (*qadomain.Answer, error)
	SetAccepted(ctx context.Context, id string, accepted bool) (*qadomain.Answer, error)
	DeleteByQuestion(ctx context.Context, questionID string) error
}

type answerRepository struct {
	collection *mongo.Collection
	log        *logrus.Logger
}

func NewAnswerRepository(db *mongo.Database, log *logrus.Logger) AnswerRepository {
	return &answerRepository{collection: db.Collection("answers"), log: log}
}

func (r *answerRepository) Create(ctx context.Context, answer *qadomain.Answer) error {
	answer.ID = primitive.NewObjectID()
	answer.CreatedAt = time.Now()
	answer.UpdatedAt = answer.CreatedAt
	if answer.Votes == nil {
		answer.Votes = map[string]int{}
	}

	if _, err := r.collection.InsertOne(ctx, answer); err != nil {
		r.log.WithError(err).Error("failed to create answer")
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}

func (r *answerRepository) FindByID(ctx context.Context, id string) (*qadomain.Answer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, qadomain.ErrAnswerNotFound
	}

	var answer qadomain.Answer
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&answer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, qadomain.ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to find answer: %w", err)
	}
	return &answer, nil
}

// ListByQuestion returns the accepted answer first, then best voted.
func (r *answerRepository) ListByQuestion(ctx context.Context, questionID string) ([]*qadomain.Answer, error) {
	oid, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return nil, qadomain.ErrQuestionNotFound
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "is_accepted", Value: -1},
		{Key: "vote_count", Value: -1},
		{Key: "created_at", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"question_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer cursor.Close(ctx)

	var answers []*qadomain.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	return answers, nil
}

func (r *answerRepository) Update(ctx context.Context, id string, set bson.M) (*qadomain.Answer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, qadomain.ErrAnswerNotFound
	}

	set["updated_at"] = time.Now()

	res := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if res.Err() != nil {
		if errors.Is(res.Err(), mongo.ErrNoDocuments) {
			return nil, qadomain.ErrAnswerNotFound
		}
		r.log.WithError(res.Err()).WithField("id", id).Error("failed to update answer")
		return nil, fmt.Errorf("failed to update answer: %w", res.Err())
	}

	var answer qadomain.Answer
	if err := res.Decode(&answer); err != nil {
		return nil, fmt.Errorf("failed to decode updated answer: %w", err)
	}
	return &answer, nil
}

func (r *answerRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return qadomain.ErrAnswerNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}
	if res.DeletedCount == 0 {
		return qadomain.ErrAnswerNotFound
	}
	return nil
}

func (r *answerRepository) ApplyVote(ctx context.Context, id, userID string, direction int) (*qadomain.Answer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, qadomain.ErrAnswerNotFound
	}

	var answer qadomain.Answer
	if err := votes.Apply(ctx, r.collection, oid, userID, direction, &answer); err != nil {
		if errors.Is(err, votes.ErrNotFound) {
			return nil, qadomain.ErrAnswerNotFound
		}
		r.log.WithError(err).WithField("id", id).Error("failed to apply answer vote")
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) SetAccepted(ctx context.Context, id string, accepted bool) (*qadomain.Answer, error) {
	return r.Update(ctx, id, bson.M{"is_accepted": accepted})
}

// DeleteByQuestion removes all answers under a deleted question.
func (r *answerRepository) DeleteByQuestion(ctx context.Context, questionID string) error {
	oid, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return qadomain.ErrQuestionNotFound
	}

	if _, err := r.collection.DeleteMany(ctx, bson.M{"question_id": oid}); err != nil {
		return fmt.Errorf("failed to delete answers: %w", err)
	}
	return nil
}
