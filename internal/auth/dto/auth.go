package dto

import authdomain "campusbuddy-backend/internal/auth/domain"

type SignupRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	CollegeName string `json:"college_name" binding:"required"`
	CollegeCity string `json:"college_city"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	CollegeName string `json:"college_name" binding:"required"`
	CollegeCity string `json:"college_city"`
}

type TokenResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         *authdomain.User `json:"user"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}
