package usecase

import (
	"context"

	authdomain "campusbuddy-backend/internal/auth/domain"
	authdto "campusbuddy-backend/internal/auth/dto"
)

// AuthUsecase owns signup/login/refresh/logout and token validation.
type AuthUsecase interface {
	Signup(ctx context.Context, req *authdto.SignupRequest, ip string) (*authdto.TokenResponse, error)
	Login(ctx context.Context, req *authdto.LoginRequest, ip string) (*authdto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	UpdateProfile(ctx context.Context, userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error)
	ValidateToken(ctx context.Context, token string) (*authdomain.User, error)
}
