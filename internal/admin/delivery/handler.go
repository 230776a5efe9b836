package delivery

import (
	"errors"
	"net/http"

	admindto "campusbuddy-backend/internal/admin/dto"
	"campusbuddy-backend/internal/admin/usecase"
	authdomain "campusbuddy-backend/internal/auth/domain"
	eventdomain "campusbuddy-backend/internal/events/domain"
	"campusbuddy-backend/pkg/paging"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin-only HTTP requests. The router guards every
// route here with Authenticate and AdminOnly.
type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// ListUsers returns users, optionally filtered by a name or email search.
// GET /api/admin/users?q=alice
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page := paging.Normalize(c.Query("page"), c.Query("limit"))

	users, total, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	if users == nil {
		users = []*authdomain.User{}
	}
	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  page.Page,
		"limit": page.Limit,
	})
}

// SetBlocked blocks or unblocks a user.
// PATCH /api/admin/users/:id/block
func (h *AdminHandler) SetBlocked(c *gin.Context) {
	var req admindto.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.adminUsecase.SetBlocked(c.Request.Context(), c.Param("id"), *req.Blocked)
	if err != nil {
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SetPremium grants or revokes premium access.
// PATCH /api/admin/users/:id/premium
func (h *AdminHandler) SetPremium(c *gin.Context) {
	var req admindto.PremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.adminUsecase.SetPremium(c.Request.Context(), c.Param("id"), *req.Premium, req.Expiry)
	if err != nil {
		if errors.Is(err, usecase.ErrExpiryInPast) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SetRole changes a user's role.
// PUT /api/admin/users/:id/role
func (h *AdminHandler) SetRole(c *gin.Context) {
	var req admindto.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.adminUsecase.SetRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user account.
// DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminUsecase.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// ListEvents returns all events for moderation.
// GET /api/admin/events
func (h *AdminHandler) ListEvents(c *gin.Context) {
	page := paging.Normalize(c.Query("page"), c.Query("limit"))

	events, total, err := h.adminUsecase.ListEvents(c.Request.Context(), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	if events == nil {
		events = []*eventdomain.Event{}
	}
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  total,
		"page":   page.Page,
		"limit":  page.Limit,
	})
}

// DeleteEvent removes any event regardless of author.
// DELETE /api/admin/events/:id
func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	if err := h.adminUsecase.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, eventdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

func (h *AdminHandler) respondUserError(c *gin.Context, err error) {
	if errors.Is(err, authdomain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
}
