package domain

import (
	"errors"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrListingNotFound = errors.New("listing not found")

// Listing is a marketplace item put up for sale by a student.
type Listing struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Condition   string             `bson:"condition" json:"condition"`
	ImageURLs   []string           `bson:"image_urls" json:"image_urls"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	Author      authdomain.Author  `bson:"author" json:"author"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ListingFilter narrows marketplace listings.
type ListingFilter struct {
	Category   string
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	ActiveOnly bool
}
