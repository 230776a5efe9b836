package usecase

import (
	"context"
	"errors"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"
	authrepo "campusbuddy-backend/internal/auth/repository"
	eventdomain "campusbuddy-backend/internal/events/domain"
	eventrepo "campusbuddy-backend/internal/events/repository"
	"campusbuddy-backend/pkg/paging"

	"github.com/sirupsen/logrus"
)

// ErrExpiryInPast rejects premium grants that would be dead on arrival.
var ErrExpiryInPast = errors.New("expiry must be in the future")

// AdminUsecase owns moderation of users and events.
type AdminUsecase interface {
	ListUsers(ctx context.Context, search string, page paging.Params) ([]*authdomain.User, int64, error)
	SetBlocked(ctx context.Context, id string, blocked bool) (*authdomain.User, error)
	SetPremium(ctx context.Context, id string, premium bool, expiry *time.Time) (*authdomain.User, error)
	SetRole(ctx context.Context, id, role string) (*authdomain.User, error)
	DeleteUser(ctx context.Context, id string) error

	ListEvents(ctx context.Context, page paging.Params) ([]*eventdomain.Event, int64, error)
	DeleteEvent(ctx context.Context, id string) error
}

type adminUsecase struct {
	userRepo  authrepo.UserRepository
	eventRepo eventrepo.EventRepository
	log       *logrus.Logger
}

func NewAdminUsecase(userRepo authrepo.UserRepository, eventRepo eventrepo.EventRepository, log *logrus.Logger) AdminUsecase {
	return &adminUsecase{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		log:       log,
	}
}

func (u *adminUsecase) ListUsers(ctx context.Context, search string, page paging.Params) ([]*authdomain.User, int64, error) {
	return u.userRepo.List(ctx, search, page.Skip(), int64(page.Limit))
}

func (u *adminUsecase) SetBlocked(ctx context.Context, id string, blocked bool) (*authdomain.User, error) {
	user, err := u.userRepo.SetBlocked(ctx, id, blocked)
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{"user_id": id, "blocked": blocked}).Info("user block state changed")
	return user, nil
}

// SetPremium grants or revokes premium. A grant with no expiry defaults
// to one year out; an expiry that is not strictly in the future is
// rejected, matching how the entitlement is checked at access time. A
// revoke clears the expiry.
func (u *adminUsecase) SetPremium(ctx context.Context, id string, premium bool, expiry *time.Time) (*authdomain.User, error) {
	if premium && expiry != nil && !expiry.After(time.Now()) {
		return nil, ErrExpiryInPast
	}
	if premium && expiry == nil {
		t := time.Now().AddDate(1, 0, 0)
		expiry = &t
	}
	if !premium {
		expiry = nil
	}

	user, err := u.userRepo.SetPremium(ctx, id, premium, expiry)
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{"user_id": id, "premium": premium}).Info("user premium state changed")
	return user, nil
}

func (u *adminUsecase) SetRole(ctx context.Context, id, role string) (*authdomain.User, error) {
	user, err := u.userRepo.SetRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{"user_id": id, "role": role}).Info("user role changed")
	return user, nil
}

func (u *adminUsecase) DeleteUser(ctx context.Context, id string) error {
	if err := u.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.log.WithField("user_id", id).Info("user deleted")
	return nil
}

func (u *adminUsecase) ListEvents(ctx context.Context, page paging.Params) ([]*eventdomain.Event, int64, error) {
	return u.eventRepo.List(ctx, eventdomain.Filter{}, page.Skip(), int64(page.Limit))
}

// DeleteEvent removes any event regardless of author.
func (u *adminUsecase) DeleteEvent(ctx context.Context, id string) error {
	if err := u.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.log.WithField("event_id", id).Info("event deleted by admin")
	return nil
}
