package domain

import (
	"errors"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("event not found")

// Event is a campus event listing.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Venue       string             `bson:"venue" json:"venue"`
	StartsAt    time.Time          `bson:"starts_at" json:"starts_at"`
	EndsAt      time.Time          `bson:"ends_at" json:"ends_at"`
	ImageURL    string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Author      authdomain.Author  `bson:"author" json:"author"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Filter narrows event listings.
type Filter struct {
	Category string
	Upcoming bool
}
