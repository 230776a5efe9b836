package usecase

import (
	"context"

	authdomain "campusbuddy-backend/internal/auth/domain"
	eventdomain "campusbuddy-backend/internal/events/domain"
	eventdto "campusbuddy-backend/internal/events/dto"
	"campusbuddy-backend/internal/events/repository"
	"campusbuddy-backend/pkg/paging"

	"go.mongodb.org/mongo-driver/bson"
)

// EventUsecase owns event CRUD and its ownership rule.
type EventUsecase interface {
	List(ctx context.Context, filter eventdomain.Filter, page paging.Params) ([]*eventdomain.Event, int64, error)
	Get(ctx context.Context, id string) (*eventdomain.Event, error)
	Create(ctx context.Context, user *authdomain.User, req *eventdto.CreateEventRequest) (*eventdomain.Event, error)
	Update(ctx context.Context, user *authdomain.User, id string, req *eventdto.UpdateEventRequest) (*eventdomain.Event, error)
	Delete(ctx context.Context, user *authdomain.User, id string) error
}

type eventUsecase struct {
	eventRepo repository.EventRepository
}

func NewEventUsecase(eventRepo repository.EventRepository) EventUsecase {
	return &eventUsecase{eventRepo: eventRepo}
}

func (u *eventUsecase) List(ctx context.Context, filter eventdomain.Filter, page paging.Params) ([]*eventdomain.Event, int64, error) {
	return u.eventRepo.List(ctx, filter, page.Skip(), int64(page.Limit))
}

func (u *eventUsecase) Get(ctx context.Context, id string) (*eventdomain.Event, error) {
	return u.eventRepo.FindByID(ctx, id)
}

func (u *eventUsecase) Create(ctx context.Context, user *authdomain.User, req *eventdto.CreateEventRequest) (*eventdomain.Event, error) {
	event := &eventdomain.Event{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		ImageURL:    req.ImageURL,
		Author:      user.Snapshot(),
	}

	if err := u.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update conflates "not found" and "not yours": a non-owner gets
// ErrNotFound and no mutation happens.
func (u *eventUsecase) Update(ctx context.Context, user *authdomain.User, id string, req *eventdto.UpdateEventRequest) (*eventdomain.Event, error) {
	event, err := u.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.CanModify(event.Author) {
		return nil, eventdomain.ErrNotFound
	}

	return u.eventRepo.Update(ctx, id, bson.M{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
		"venue":       req.Venue,
		"starts_at":   req.StartsAt,
		"ends_at":     req.EndsAt,
		"image_url":   req.ImageURL,
	})
}

func (u *eventUsecase) Delete(ctx context.Context, user *authdomain.User, id string) error {
	event, err := u.eventRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanModify(event.Author) {
		return eventdomain.ErrNotFound
	}

	return u.eventRepo.Delete(ctx, id)
}
