package domain

import (
	"errors"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrAccommodationNotFound = errors.New("accommodation not found")

// Accommodation is a room or flat offered near campus.
type Accommodation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Rent          float64            `bson:"rent" json:"rent"`
	Deposit       float64            `bson:"deposit" json:"deposit"`
	Address       string             `bson:"address" json:"address"`
	Amenities     []string           `bson:"amenities" json:"amenities"`
	AvailableFrom time.Time          `bson:"available_from" json:"available_from"`
	Author        authdomain.Author  `bson:"author" json:"author"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// AccommodationFilter narrows accommodation listings.
type AccommodationFilter struct {
	MaxRent *float64
	Search  string
}
