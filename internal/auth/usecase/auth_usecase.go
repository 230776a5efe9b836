package usecase

import (
	"context"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"
	authdto "campusbuddy-backend/internal/auth/dto"
	"campusbuddy-backend/internal/auth/repository"
	"campusbuddy-backend/pkg/config"
	"campusbuddy-backend/pkg/ratelimit"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	limiter  ratelimit.Limiter
	config   *config.Config
	log      *logrus.Logger
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, limiter ratelimit.Limiter, cfg *config.Config, log *logrus.Logger) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		limiter:  limiter,
		config:   cfg,
		log:      log,
	}
}

func (u *authUsecase) Signup(ctx context.Context, req *authdto.SignupRequest, ip string) (*authdto.TokenResponse, error) {
	if err := u.throttle(ctx, req.Email, ip); err != nil {
		return nil, err
	}

	existing, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authdomain.ErrEmailTaken
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     authdomain.RoleStudent,
		College: authdomain.College{
			Name: req.CollegeName,
			City: req.CollegeCity,
		},
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest, ip string) (*authdto.TokenResponse, error) {
	if err := u.throttle(ctx, req.Email, ip); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrInvalidCredentials
	}

	// Blocked accounts are rejected regardless of password correctness.
	if user.IsBlocked {
		return nil, authdomain.ErrBlocked
	}

	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, authdomain.ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user)
}

// Refresh mints a new access token. The presented refresh token must both
// verify cryptographically and still be present in the owner's stored
// list; list membership is the sole source of truth for revocation. The
// refresh token itself is not rotated.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := u.parseSubject(refreshToken)
	if err != nil {
		return "", authdomain.ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", authdomain.ErrInvalidToken
	}

	stored, err := u.userRepo.HasRefreshToken(ctx, userID, refreshToken)
	if err != nil {
		return "", err
	}
	if !stored {
		return "", authdomain.ErrInvalidToken
	}

	return u.generateAccessToken(user)
}

// Logout removes the presented refresh token from its owner's list.
// Always succeeds from the client's perspective: an absent, invalid, or
// already-revoked token is not an error.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	userID, err := u.parseSubject(refreshToken)
	if err != nil {
		return nil
	}

	if err := u.userRepo.PullRefreshToken(ctx, userID, refreshToken); err != nil {
		u.log.WithError(err).Warn("failed to revoke refresh token on logout")
	}
	return nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error) {
	college := authdomain.College{Name: req.CollegeName, City: req.CollegeCity}
	return u.userRepo.UpdateProfile(ctx, userID, req.Name, college)
}

func (u *authUsecase) ValidateToken(ctx context.Context, tokenString string) (*authdomain.User, error) {
	userID, err := u.parseSubject(tokenString)
	if err != nil {
		return nil, authdomain.ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}

	return user, nil
}

// throttle caps attempts per email and per client address. Signup and
// login share the same budget so a throttled address cannot switch
// between the two endpoints to keep probing.
func (u *authUsecase) throttle(ctx context.Context, email, ip string) error {
	if err := u.limiter.Enforce(ctx, "email:"+email); err != nil {
		return err
	}
	if ip != "" {
		if err := u.limiter.Enforce(ctx, "ip:"+ip); err != nil {
			return err
		}
	}
	return nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *authdomain.User) (*authdto.TokenResponse, error) {
	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.PushRefreshToken(ctx, user.ID.Hex(), refreshToken); err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (u *authUsecase) generateAccessToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"role":    user.Role,
		"exp":     time.Now().Add(u.config.JWTAccessExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) generateRefreshToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.Hex(),
		"token_id": uuid.New().String(),
		"exp":      time.Now().Add(u.config.JWTRefreshExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

// parseSubject verifies a token and extracts its user_id claim. Any
// verification failure (bad signature, malformed, expired) collapses to
// one error so callers treat the request as unauthenticated.
func (u *authUsecase) parseSubject(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(u.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", authdomain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", authdomain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", authdomain.ErrInvalidToken
	}

	return userID, nil
}
