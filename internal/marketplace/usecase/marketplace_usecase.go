package usecase

import (
	"context"

	authdomain "campusbuddy-backend/internal/auth/domain"
	marketdomain "campusbuddy-backend/internal/marketplace/domain"
	marketdto "campusbuddy-backend/internal/marketplace/dto"
	"campusbuddy-backend/internal/marketplace/repository"
	"campusbuddy-backend/pkg/paging"

	"go.mongodb.org/mongo-driver/bson"
)

// MarketplaceUsecase owns listing and accommodation CRUD.
type MarketplaceUsecase interface {
	ListListings(ctx context.Context, filter marketdomain.ListingFilter, page paging.Params) ([]*marketdomain.Listing, int64, error)
	GetListing(ctx context.Context, id string) (*marketdomain.Listing, error)
	CreateListing(ctx context.Context, user *authdomain.User, req *marketdto.CreateListingRequest) (*marketdomain.Listing, error)
	UpdateListing(ctx context.Context, user *authdomain.User, id string, req *marketdto.UpdateListingRequest) (*marketdomain.Listing, error)
	SetListingStatus(ctx context.Context, user *authdomain.User, id string, active bool) (*marketdomain.Listing, error)
	DeleteListing(ctx context.Context, user *authdomain.User, id string) error

	ListAccommodations(ctx context.Context, filter marketdomain.AccommodationFilter, page paging.Params) ([]*marketdomain.Accommodation, int64, error)
	GetAccommodation(ctx context.Context, id string) (*marketdomain.Accommodation, error)
	CreateAccommodation(ctx context.Context, user *authdomain.User, req *marketdto.CreateAccommodationRequest) (*marketdomain.Accommodation, error)
	UpdateAccommodation(ctx context.Context, user *authdomain.User, id string, req *marketdto.UpdateAccommodationRequest) (*marketdomain.Accommodation, error)
	DeleteAccommodation(ctx context.Context, user *authdomain.User, id string) error
}

type marketplaceUsecase struct {
	listingRepo repository.ListingRepository
	accRepo     repository.AccommodationRepository
}

func NewMarketplaceUsecase(listingRepo repository.ListingRepository, accRepo repository.AccommodationRepository) MarketplaceUsecase {
	return &marketplaceUsecase{
		listingRepo: listingRepo,
		accRepo:     accRepo,
	}
}

func (u *marketplaceUsecase) ListListings(ctx context.Context, filter marketdomain.ListingFilter, page paging.Params) ([]*marketdomain.Listing, int64, error) {
	return u.listingRepo.List(ctx, filter, page.Skip(), int64(page.Limit))
}

func (u *marketplaceUsecase) GetListing(ctx context.Context, id string) (*marketdomain.Listing, error) {
	return u.listingRepo.FindByID(ctx, id)
}

func (u *marketplaceUsecase) CreateListing(ctx context.Context, user *authdomain.User, req *marketdto.CreateListingRequest) (*marketdomain.Listing, error) {
	listing := &marketdomain.Listing{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		ImageURLs:   req.ImageURLs,
		IsActive:    true,
		Author:      user.Snapshot(),
	}

	if err := u.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (u *marketplaceUsecase) UpdateListing(ctx context.Context, user *authdomain.User, id string, req *marketdto.UpdateListingRequest) (*marketdomain.Listing, error) {
	listing, err := u.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.CanModify(listing.Author) {
		return nil, marketdomain.ErrListingNotFound
	}

	return u.listingRepo.Update(ctx, id, bson.M{
		"title":       req.Title,
		"description": req.Description,
		"price":       req.Price,
		"category":    req.Category,
		"condition":   req.Condition,
		"image_urls":  req.ImageURLs,
	})
}

func (u *marketplaceUsecase) SetListingStatus(ctx context.Context, user *authdomain.User, id string, active bool) (*marketdomain.Listing, error) {
	listing, err := u.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.CanModify(listing.Author) {
		return nil, marketdomain.ErrListingNotFound
	}

	return u.listingRepo.Update(ctx, id, bson.M{"is_active": active})
}

func (u *marketplaceUsecase) DeleteListing(ctx context.Context, user *authdomain.User, id string) error {
	listing, err := u.listingRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanModify(listing.Author) {
		return marketdomain.ErrListingNotFound
	}

	return u.listingRepo.Delete(ctx, id)
}

func (u *marketplaceUsecase) ListAccommodations(ctx context.Context, filter marketdomain.AccommodationFilter, page paging.Params) ([]*marketdomain.Accommodation, int64, error) {
	return u.accRepo.List(ctx, filter, page.Skip(), int64(page.Limit))
}

func (u *marketplaceUsecase) GetAccommodation(ctx context.Context, id string) (*marketdomain.Accommodation, error) {
	return u.accRepo.FindByID(ctx, id)
}

func (u *marketplaceUsecase) CreateAccommodation(ctx context.Context, user *authdomain.User, req *marketdto.CreateAccommodationRequest) (*marketdomain.Accommodation, error) {
	acc := &marketdomain.Accommodation{
		Title:         req.Title,
		Description:   req.Description,
		Rent:          req.Rent,
		Deposit:       req.Deposit,
		Address:       req.Address,
		Amenities:     req.Amenities,
		AvailableFrom: req.AvailableFrom,
		Author:        user.Snapshot(),
	}

	if err := u.accRepo.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (u *marketplaceUsecase) UpdateAccommodation(ctx context.Context, user *authdomain.User, id string, req *marketdto.UpdateAccommodationRequest) (*marketdomain.Accommodation, error) {
	acc, err := u.accRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.CanModify(acc.Author) {
		return nil, marketdomain.ErrAccommodationNotFound
	}

	return u.accRepo.Update(ctx, id, bson.M{
		"title":          req.Title,
		"description":    req.Description,
		"rent":           req.Rent,
		"deposit":        req.Deposit,
		"address":        req.Address,
		"amenities":      req.Amenities,
		"available_from": req.AvailableFrom,
	})
}

func (u *marketplaceUsecase) DeleteAccommodation(ctx context.Context, user *authdomain.User, id string) error {
	acc, err := u.accRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanModify(acc.Author) {
		return marketdomain.ErrAccommodationNotFound
	}

	return u.accRepo.Delete(ctx, id)
}
