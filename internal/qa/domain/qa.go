package domain

import (
	"errors"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrBadStatus        = errors.New("status must be open or closed")
	ErrBadVoteDirection = errors.New("vote direction must be up or down")
)

// Question lifecycle: open until the first answer arrives, then
// answered; closed only by an explicit status update from the author.
const (
	StatusOpen     = "open"
	StatusAnswered = "answered"
	StatusClosed   = "closed"
)

type Question struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Body        string             `bson:"body" json:"body"`
	Tags        []string           `bson:"tags" json:"tags"`
	Status      string             `bson:"status" json:"status"`
	AnswerCount int                `bson:"answer_count" json:"answer_count"`
	VoteCount   int                `bson:"vote_count" json:"vote_count"`
	Votes       map[string]int     `bson:"votes" json:"-"`
	Author      authdomain.Author  `bson:"author" json:"author"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type Answer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionID primitive.ObjectID `bson:"question_id" json:"question_id"`
	Body       string             `bson:"body" json:"body"`
	IsAccepted bool               `bson:"is_accepted" json:"is_accepted"`
	VoteCount  int                `bson:"vote_count" json:"vote_count"`
	Votes      map[string]int     `bson:"votes" json:"-"`
	Author     authdomain.Author  `bson:"author" json:"author"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// Filter narrows question listings.
type Filter struct {
	Tag    string
	Status string
	Search string
}
