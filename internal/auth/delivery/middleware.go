package delivery

import (
	"net/http"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"
	"campusbuddy-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AccessTokenHeader carries the access token on every authenticated
// request.
const AccessTokenHeader = "x-access-token"

// Authenticate resolves the access token into a user record and attaches
// it to the request context. It performs no block/premium/role checks;
// those are separate predicates composed per route.
func Authenticate(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AccessTokenHeader)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			c.Abort()
			return
		}

		user, err := authUsecase.ValidateToken(c.Request.Context(), token)
		if err != nil {
			msg := "invalid or expired token"
			if err == authdomain.ErrUserNotFound {
				msg = "user not found"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID.Hex())
		c.Next()
	}
}

// CurrentUser returns the user attached by Authenticate.
func CurrentUser(c *gin.Context) *authdomain.User {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(*authdomain.User); ok {
			return user
		}
	}
	return nil
}

// AdminOnly passes only for the admin role.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != authdomain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admins only"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// NotBlocked rejects blocked accounts.
func NotBlocked() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.IsBlocked {
			c.JSON(http.StatusForbidden, gin.H{"error": "your account is blocked, contact the team"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// PremiumRequired passes only while the premium entitlement is active;
// the expiry must be strictly in the future.
func PremiumRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.HasActivePremium(time.Now()) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":            "premium subscription required",
				"upgrade_required": true,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
