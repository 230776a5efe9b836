package delivery

import (
	"errors"
	"net/http"
	"strconv"

	authdelivery "campusbuddy-backend/internal/auth/delivery"
	marketdomain "campusbuddy-backend/internal/marketplace/domain"
	marketdto "campusbuddy-backend/internal/marketplace/dto"
	"campusbuddy-backend/internal/marketplace/usecase"
	"campusbuddy-backend/pkg/paging"

	"github.com/gin-gonic/gin"
)

// MarketplaceHandler handles listing and accommodation HTTP requests.
type MarketplaceHandler struct {
	marketUsecase usecase.MarketplaceUsecase
}

func NewMarketplaceHandler(marketUsecase usecase.MarketplaceUsecase) *MarketplaceHandler {
	return &MarketplaceHandler{marketUsecase: marketUsecase}
}

// ListListings returns marketplace listings.
// GET /api/marketplace/listings?category=books&min_price=10&max_price=100&q=calculus
func (h *MarketplaceHandler) ListListings(c *gin.Context) {
	page := paging.Normalize(c.Query("page"), c.Query("limit"))
	filter := marketdomain.ListingFilter{
		Category:   c.Query("category"),
		Search:     c.Query("q"),
		ActiveOnly: c.DefaultQuery("active", "true") == "true",
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		filter.MaxPrice = &v
	}

	listings, total, err := h.marketUsecase.ListListings(c.Request.Context(), filter, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	if listings == nil {
		listings = []*marketdomain.Listing{}
	}
	c.JSON(http.StatusOK, gin.H{
		"listings": listings,
		"total":    total,
		"page":     page.Page,
		"limit":    page.Limit,
	})
}

// GetListing returns one listing.
// GET /api/marketplace/listings/:id
func (h *MarketplaceHandler) GetListing(c *gin.Context) {
	listing, err := h.marketUsecase.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// CreateListing creates an active listing authored by the requester.
// POST /api/marketplace/listings
func (h *MarketplaceHandler) CreateListing(c *gin.Context) {
	var req marketdto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.marketUsecase.CreateListing(c.Request.Context(), authdelivery.CurrentUser(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// UpdateListing replaces listing fields. Author or admin only.
// PUT /api/marketplace/listings/:id
func (h *MarketplaceHandler) UpdateListing(c *gin.Context) {
	var req marketdto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.marketUsecase.UpdateListing(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		h.respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// SetListingStatus toggles the active flag. Author or admin only.
// PATCH /api/marketplace/listings/:id/status
func (h *MarketplaceHandler) SetListingStatus(c *gin.Context) {
	var req marketdto.ListingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.marketUsecase.SetListingStatus(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), *req.IsActive)
	if err != nil {
		h.respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// DeleteListing removes a listing. Author or admin only.
// DELETE /api/marketplace/listings/:id
func (h *MarketplaceHandler) DeleteListing(c *gin.Context) {
	if err := h.marketUsecase.DeleteListing(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id")); err != nil {
		h.respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing deleted"})
}

// ListAccommodations returns accommodation posts.
// GET /api/marketplace/accommodations?max_rent=800&q=studio
func (h *MarketplaceHandler) ListAccommodations(c *gin.Context) {
	page := paging.Normalize(c.Query("page"), c.Query("limit"))
	filter := marketdomain.AccommodationFilter{Search: c.Query("q")}
	if v, err := strconv.ParseFloat(c.Query("max_rent"), 64); err == nil {
		filter.MaxRent = &v
	}

	accs, total, err := h.marketUsecase.ListAccommodations(c.Request.Context(), filter, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	if accs == nil {
		accs = []*marketdomain.Accommodation{}
	}
	c.JSON(http.StatusOK, gin.H{
		"accommodations": accs,
		"total":          total,
		"page":           page.Page,
		"limit":          page.Limit,
	})
}

// GetAccommodation returns one accommodation post.
// GET /api/marketplace/accommodations/:id
func (h *MarketplaceHandler) GetAccommodation(c *gin.Context) {
	acc, err := h.marketUsecase.GetAccommodation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondAccommodationError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// CreateAccommodation creates an accommodation post.
// POST /api/marketplace/accommodations
func (h *MarketplaceHandler) CreateAccommodation(c *gin.Context) {
	var req marketdto.CreateAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acc, err := h.marketUsecase.CreateAccommodation(c.Request.Context(), authdelivery.CurrentUser(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusCreated, acc)
}

// UpdateAccommodation replaces accommodation fields. Author or admin only.
// PUT /api/marketplace/accommodations/:id
func (h *MarketplaceHandler) UpdateAccommodation(c *gin.Context) {
	var req marketdto.UpdateAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acc, err := h.marketUsecase.UpdateAccommodation(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		h.respondAccommodationError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// DeleteAccommodation removes an accommodation post. Author or admin only.
// DELETE /api/marketplace/accommodations/:id
func (h *MarketplaceHandler) DeleteAccommodation(c *gin.Context) {
	if err := h.marketUsecase.DeleteAccommodation(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id")); err != nil {
		h.respondAccommodationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "accommodation deleted"})
}

func (h *MarketplaceHandler) respondListingError(c *gin.Context, err error) {
	if errors.Is(err, marketdomain.ErrListingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
}

func (h *MarketplaceHandler) respondAccommodationError(c *gin.Context, err error) {
	if errors.Is(err, marketdomain.ErrAccommodationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "accommodation not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
}
