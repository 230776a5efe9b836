package delivery

import (
	"errors"
	"net/http"

	authdelivery "campusbuddy-backend/internal/auth/delivery"
	studydomain "campusbuddy-backend/internal/studyhub/domain"
	studydto "campusbuddy-backend/internal/studyhub/dto"
	"campusbuddy-backend/internal/studyhub/usecase"
	"campusbuddy-backend/pkg/paging"
	"campusbuddy-backend/pkg/upload"

	"github.com/gin-gonic/gin"
)

// MaterialHandler handles study material HTTP requests.
type MaterialHandler struct {
	materialUsecase usecase.MaterialUsecase
	files           *upload.Store
}

func NewMaterialHandler(materialUsecase usecase.MaterialUsecase, files *upload.Store) *MaterialHandler {
	return &MaterialHandler{
		materialUsecase: materialUsecase,
		files:           files,
	}
}

// List returns materials, best voted first.
// GET /api/studyhub/materials?subject=calculus&semester=3&q=notes
func (h *MaterialHandler) List(c *gin.Context) {
	page := paging.Normalize(c.Query("page"), c.Query("limit"))
	filter := studydomain.Filter{
		Subject:  c.Query("subject"),
		Semester: c.Query("semester"),
		Search:   c.Query("q"),
	}

	materials, total, err := h.materialUsecase.List(c.Request.Context(), filter, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	if materials == nil {
		materials = []*studydomain.Material{}
	}
	c.JSON(http.StatusOK, gin.H{
		"materials": materials,
		"total":     total,
		"page":      page.Page,
		"limit":     page.Limit,
	})
}

// Get returns one material.
// GET /api/studyhub/materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	material, err := h.materialUsecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

// Upload stores a material file and returns the descriptor to embed in a
// subsequent create call.
// POST /api/studyhub/materials/upload
func (h *MaterialHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	defer src.Close()

	saved, err := h.files.Save(upload.KindMaterial, file.Filename, file.Size, src)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrUnsupportedType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		case errors.Is(err, upload.ErrTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// Create records an uploaded material.
// POST /api/studyhub/materials
func (h *MaterialHandler) Create(c *gin.Context) {
	var req studydto.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.materialUsecase.Create(c.Request.Context(), authdelivery.CurrentUser(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusCreated, material)
}

// Update edits material metadata. Author or admin only.
// PUT /api/studyhub/materials/:id
func (h *MaterialHandler) Update(c *gin.Context) {
	var req studydto.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.materialUsecase.Update(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

// Delete removes a material and its stored file. Author or admin only.
// DELETE /api/studyhub/materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.materialUsecase.Delete(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "material deleted"})
}

// Vote toggles or switches the requester's vote.
// POST /api/studyhub/materials/:id/vote
func (h *MaterialHandler) Vote(c *gin.Context) {
	var req studydto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.materialUsecase.Vote(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), req.Direction)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vote_count": material.VoteCount})
}

// Download streams the stored file. Premium only; guarded in the router.
// GET /api/studyhub/materials/:id/download
func (h *MaterialHandler) Download(c *gin.Context) {
	material, err := h.materialUsecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	path, ok := h.files.Path(material.FileURL)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.FileAttachment(path, material.FileName)
}

func (h *MaterialHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, studydomain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "material not found"})
	case errors.Is(err, studydomain.ErrBadVoteDirection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
