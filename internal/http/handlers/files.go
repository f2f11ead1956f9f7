package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raagrecording/raagrecording-backend/internal/http/response"
	"github.com/raagrecording/raagrecording-backend/internal/services"
)

type FileHandler struct {
	bucketService services.BucketService
}

func NewFileHandler(bucketService services.BucketService) *FileHandler {
	return &FileHandler{bucketService: bucketService}
}

// POST /api/files/audio — multipart upload; returns the storage key artifact
// submissions reference.
func (h *FileHandler) UploadAudio(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer file.Close()

	key, err := h.bucketService.UploadAudio(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"storage_key": key,
		"public_url":  h.bucketService.PublicURL(key),
	})
}
