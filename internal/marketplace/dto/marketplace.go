package dto

import "time"

type CreateListingRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gte=0"`
	Category    string   `json:"category" binding:"required"`
	Condition   string   `json:"condition"`
	ImageURLs   []string `json:"image_urls"`
}

type UpdateListingRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gte=0"`
	Category    string   `json:"category" binding:"required"`
	Condition   string   `json:"condition"`
	ImageURLs   []string `json:"image_urls"`
}

type ListingStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type CreateAccommodationRequest struct {
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description"`
	Rent          float64   `json:"rent" binding:"required,gte=0"`
	Deposit       float64   `json:"deposit" binding:"gte=0"`
	Address       string    `json:"address" binding:"required"`
	Amenities     []string  `json:"amenities"`
	AvailableFrom time.Time `json:"available_from"`
}

type UpdateAccommodationRequest struct {
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description"`
	Rent          float64   `json:"rent" binding:"required,gte=0"`
	Deposit       float64   `json:"deposit" binding:"gte=0"`
	Address       string    `json:"address" binding:"required"`
	Amenities     []string  `json:"amenities"`
	AvailableFrom time.Time `json:"available_from"`
}
