package api

import (
	"errors"
	"net/http"

	"campusbuddy-backend/pkg/upload"

	"github.com/gin-gonic/gin"
)

// UploadHandler stores images referenced by events and listings.
type UploadHandler struct {
	files *upload.Store
}

func NewUploadHandler(files *upload.Store) *UploadHandler {
	return &UploadHandler{files: files}
}

// UploadImage stores one image and returns its public URL.
// POST /api/uploads/images
func (h *UploadHandler) UploadImage(c *gin.Context) {
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

	saved, err := h.files.Save(upload.KindImage, file.Filename, file.Size, src)
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
