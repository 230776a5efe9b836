package delivery

import (
	"errors"
	"net/http"

	authdelivery "campusbuddy-backend/internal/auth/delivery"
	eventdomain "campusbuddy-backend/internal/events/domain"
	eventdto "campusbuddy-backend/internal/events/dto"
	"campusbuddy-backend/internal/events/usecase"
	"campusbuddy-backend/pkg/paging"

	"github.com/gin-gonic/gin"
)

// EventHandler handles event HTTP requests.
type EventHandler struct {
	eventUsecase usecase.EventUsecase
}

func NewEventHandler(eventUsecase usecase.EventUsecase) *EventHandler {
	return &EventHandler{eventUsecase: eventUsecase}
}

// List returns events, newest window first.
// GET /api/events?category=tech&upcoming=true&page=1&limit=20
func (h *EventHandler) List(c *gin.Context) {
	page := paging.Normalize(c.Query("page"), c.Query("limit"))
	filter := eventdomain.Filter{
		Category: c.Query("category"),
		Upcoming: c.Query("upcoming") == "true",
	}

	events, total, err := h.eventUsecase.List(c.Request.Context(), filter, page)
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

// Get returns one event.
// GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.eventUsecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, eventdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// Create stamps the authenticated user as author.
// POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var req eventdto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventUsecase.Create(c.Request.Context(), authdelivery.CurrentUser(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

// Update replaces an event. Author or admin only.
// PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req eventdto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventUsecase.Update(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, eventdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// Delete removes an event. Author or admin only.
// DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	err := h.eventUsecase.Delete(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, eventdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}
