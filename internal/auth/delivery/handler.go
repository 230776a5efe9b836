package delivery

import (
	"errors"
	"net/http"

	authdomain "campusbuddy-backend/internal/auth/domain"
	authdto "campusbuddy-backend/internal/auth/dto"
	"campusbuddy-backend/internal/auth/usecase"
	"campusbuddy-backend/pkg/config"
	"campusbuddy-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

const refreshCookie = "refresh_token"

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		config:      cfg,
	}
}

// Signup registers a new student account and opens a session.
// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req authdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.Signup(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ratelimit.ErrLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
		case errors.Is(err, authdomain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		}
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	c.JSON(http.StatusCreated, resp)
}

// Login authenticates a user and opens a session.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ratelimit.ErrLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
		case errors.Is(err, authdomain.ErrBlocked):
			c.JSON(http.StatusForbidden, gin.H{"error": "your account is blocked, contact the team"})
		case errors.Is(err, authdomain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		}
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	c.JSON(http.StatusOK, resp)
}

// Refresh mints a new access token from a valid, still-stored refresh
// token. The refresh token is read from the cookie, falling back to the
// request body.
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := h.refreshTokenFromRequest(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no refresh token provided"})
		return
	}

	accessToken, err := h.authUsecase.Refresh(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, authdto.AccessTokenResponse{AccessToken: accessToken})
}

// Logout revokes the presented refresh token. Idempotent: succeeds even
// when the token is absent, invalid, or already revoked.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := h.refreshTokenFromRequest(c)
	_ = h.authUsecase.Logout(c.Request.Context(), token)

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}

// UpdateMe updates the profile fields. Author snapshots on existing
// resources are not touched.
// PUT /api/auth/me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req authdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authUsecase.UpdateProfile(c.Request.Context(), c.GetString("userID"), &req)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) refreshTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(refreshCookie); err == nil && cookie != "" {
		return cookie
	}

	var req authdto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(refreshCookie, token, int(h.config.JWTRefreshExpiry.Seconds()), "/api/auth", "", false, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(refreshCookie, "", -1, "/api/auth", "", false, true)
}
