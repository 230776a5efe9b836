package domain

import (
	"errors"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound         = errors.New("material not found")
	ErrBadVoteDirection = errors.New("vote direction must be up or down")
)

// Material is a shared study document (notes, past papers, slides).
type Material struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Subject     string             `bson:"subject" json:"subject"`
	Semester    string             `bson:"semester,omitempty" json:"semester,omitempty"`
	FileURL     string             `bson:"file_url" json:"file_url"`
	FileName    string             `bson:"file_name" json:"file_name"`
	FileSize    int64              `bson:"file_size" json:"file_size"`
	VoteCount   int                `bson:"vote_count" json:"vote_count"`
	Votes       map[string]int     `bson:"votes" json:"-"`
	Author      authdomain.Author  `bson:"author" json:"author"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Filter narrows material listings.
type Filter struct {
	Subject  string
	Semester string
	Search   string
}
