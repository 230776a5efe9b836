package repository

import (
	"context"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *authdomain.User) error
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	UpdateProfile(ctx context.Context, id, name string, college authdomain.College) (*authdomain.User, error)
	List(ctx context.Context, search string, skip, limit int64) ([]*authdomain.User, int64, error)

	PushRefreshToken(ctx context.Context, id, token string) error
	PullRefreshToken(ctx context.Context, id, token string) error
	HasRefreshToken(ctx context.Context, id, token string) (bool, error)

	SetBlocked(ctx context.Context, id string, blocked bool) (*authdomain.User, error)
	SetPremium(ctx context.Context, id string, premium bool, expiry *time.Time) (*authdomain.User, error)
	SetRole(ctx context.Context, id, role string) (*authdomain.User, error)
	Delete(ctx context.Context, id string) error
}
