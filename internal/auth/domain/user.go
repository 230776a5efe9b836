package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrBlocked            = errors.New("account is blocked")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// College is the embedded college descriptor on a user profile.
type College struct {
	Name string `bson:"name" json:"name"`
	City string `bson:"city,omitempty" json:"city,omitempty"`
}

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"` // Never return password in JSON
	Role          string             `bson:"role" json:"role"`
	IsPremium     bool               `bson:"is_premium" json:"is_premium"`
	PremiumExpiry *time.Time         `bson:"premium_expiry,omitempty" json:"premium_expiry,omitempty"`
	IsBlocked     bool               `bson:"is_blocked" json:"is_blocked"`
	College       College            `bson:"college" json:"college"`
	RefreshTokens []string           `bson:"refresh_tokens" json:"-"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasActivePremium reports whether the premium entitlement is currently
// usable. The expiry must be strictly in the future.
func (u *User) HasActivePremium(now time.Time) bool {
	return u.IsPremium && u.PremiumExpiry != nil && u.PremiumExpiry.After(now)
}

// Author is the denormalized author snapshot embedded into resources at
// creation time. Later profile edits do not propagate to it.
type Author struct {
	UserID string `bson:"user_id" json:"user_id"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
}

// Snapshot captures the author fields for embedding into a new resource.
func (u *User) Snapshot() Author {
	return Author{UserID: u.ID.Hex(), Name: u.Name, Email: u.Email}
}

// CanModify is the ownership rule shared by every resource: only the
// original author or an admin may mutate or delete.
func (u *User) CanModify(a Author) bool {
	return u.Role == RoleAdmin || u.ID.Hex() == a.UserID
}
