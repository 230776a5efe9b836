package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"
	eventdomain "campusbuddy-backend/internal/events/domain"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	users map[string]*authdomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*authdomain.User{}}
}

func (f *fakeUserRepo) add(name string) *authdomain.User {
	u := &authdomain.User{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Email: name + "@x.com",
		Role:  authdomain.RoleStudent,
	}
	f.users[u.ID.Hex()] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *authdomain.User) error {
	user.ID = primitive.NewObjectID()
	f.users[user.ID.Hex()] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id, name string, college authdomain.College) (*authdomain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	u.Name = name
	u.College = college
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context, search string, skip, limit int64) ([]*authdomain.User, int64, error) {
	var out []*authdomain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) PushRefreshToken(ctx context.Context, id, token string) error { return nil }
func (f *fakeUserRepo) PullRefreshToken(ctx context.Context, id, token string) error { return nil }
func (f *fakeUserRepo) HasRefreshToken(ctx context.Context, id, token string) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) SetBlocked(ctx context.Context, id string, blocked bool) (*authdomain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	u.IsBlocked = blocked
	return u, nil
}

func (f *fakeUserRepo) SetPremium(ctx context.Context, id string, premium bool, expiry *time.Time) (*authdomain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	u.IsPremium = premium
	u.PremiumExpiry = expiry
	return u, nil
}

func (f *fakeUserRepo) SetRole(ctx context.Context, id, role string) (*authdomain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	u.Role = role
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return authdomain.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeEventRepo struct {
	events map[string]*eventdomain.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*eventdomain.Event{}}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *eventdomain.Event) error {
	event.ID = primitive.NewObjectID()
	f.events[event.ID.Hex()] = event
	return nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id string) (*eventdomain.Event, error) {
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, eventdomain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, filter eventdomain.Filter, skip, limit int64) ([]*eventdomain.Event, int64, error) {
	var out []*eventdomain.Event
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, set bson.M) (*eventdomain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, eventdomain.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return eventdomain.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func newAdminUsecase(users *fakeUserRepo, events *fakeEventRepo) AdminUsecase {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewAdminUsecase(users, events, log)
}

func TestSetPremiumRejectsPastExpiry(t *testing.T) {
	users := newFakeUserRepo()
	uc := newAdminUsecase(users, newFakeEventRepo())
	u := users.add("asha")

	past := time.Now().Add(-time.Hour)
	_, err := uc.SetPremium(context.Background(), u.ID.Hex(), true, &past)
	if !errors.Is(err, ErrExpiryInPast) {
		t.Fatalf("expected ErrExpiryInPast, got %v", err)
	}
	if u.IsPremium {
		t.Fatalf("rejected grant still flagged the user premium")
	}
}

func TestSetPremiumDefaultsExpiry(t *testing.T) {
	users := newFakeUserRepo()
	uc := newAdminUsecase(users, newFakeEventRepo())
	u := users.add("asha")

	granted, err := uc.SetPremium(context.Background(), u.ID.Hex(), true, nil)
	if err != nil {
		t.Fatalf("grant error: %v", err)
	}
	if granted.PremiumExpiry == nil || !granted.PremiumExpiry.After(time.Now()) {
		t.Fatalf("grant without expiry should default to a future expiry")
	}
	if !granted.HasActivePremium(time.Now()) {
		t.Fatalf("fresh grant is not an active entitlement")
	}
}

func TestSetPremiumRevokeClearsExpiry(t *testing.T) {
	users := newFakeUserRepo()
	uc := newAdminUsecase(users, newFakeEventRepo())
	u := users.add("asha")
	ctx := context.Background()

	if _, err := uc.SetPremium(ctx, u.ID.Hex(), true, nil); err != nil {
		t.Fatalf("grant error: %v", err)
	}

	// The revoke ignores any expiry sent along with it.
	stale := time.Now().Add(time.Hour)
	revoked, err := uc.SetPremium(ctx, u.ID.Hex(), false, &stale)
	if err != nil {
		t.Fatalf("revoke error: %v", err)
	}
	if revoked.IsPremium || revoked.PremiumExpiry != nil {
		t.Fatalf("revoke left premium state behind")
	}
}

func TestDeleteEventByAdmin(t *testing.T) {
	events := newFakeEventRepo()
	uc := newAdminUsecase(newFakeUserRepo(), events)
	ctx := context.Background()

	event := &eventdomain.Event{Title: "Hack night"}
	if err := events.Create(ctx, event); err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := uc.DeleteEvent(ctx, event.ID.Hex()); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if err := uc.DeleteEvent(ctx, event.ID.Hex()); !errors.Is(err, eventdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
