package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parley-chat/parley/internal/logger"
	"github.com/parley-chat/parley/internal/store"
)

// FileHandler serves file upload, listing, download and deletion.
type FileHandler struct {
	files *store.FileStore
}

func NewFileHandler(files *store.FileStore) *FileHandler {
	return &FileHandler{files: files}
}

type fileInfoResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	CreatedAt   int64  `json:"createdAt"`
}

func toFileInfoResponse(f store.FileInfo) fileInfoResponse {
	return fileInfoResponse{
		ID:          f.ID,
		Name:        f.Name,
		ContentType: f.ContentType,
		Size:        f.Size,
		CreatedAt:   f.CreatedAt.UnixMilli(),
	}
}

// UploadFile stores one multipart file.
func (h *FileHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	upload, err := h.files.OpenUploadStream(fileHeader.Filename, contentType)
	if err != nil {
		logger.Errorf("Failed to open upload stream: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	if _, err := io.Copy(upload, src); err != nil {
		logger.Errorf("Failed to write upload %s: %v", upload.ID(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}
	if err := upload.Close(); err != nil {
		logger.Errorf("Failed to finish upload %s: %v", upload.ID(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": upload.ID(), "name": fileHeader.Filename})
}

// ListFiles lists stored files, optionally filtered by exact name.
func (h *FileHandler) ListFiles(c *gin.Context) {
	files, err := h.files.Find(c.Request.Context(), c.Query("name"))
	if err != nil {
		logger.Errorf("Failed to list files: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list files"})
		return
	}

	response := make([]fileInfoResponse, 0, len(files))
	for _, f := range files {
		response = append(response, toFileInfoResponse(f))
	}
	c.JSON(http.StatusOK, gin.H{"files": response})
}

// DownloadFile streams a file blob to the client.
func (h *FileHandler) DownloadFile(c *gin.Context) {
	id := c.Param("id")

	src, info, err := h.files.OpenDownloadStream(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	if err != nil {
		logger.Errorf("Failed to open download stream for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	defer src.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Name))
	c.DataFromReader(http.StatusOK, info.Size, info.ContentType, src, nil)
}

// DeleteFile removes a file and its metadata.
func (h *FileHandler) DeleteFile(c *gin.Context) {
	id := c.Param("id")

	err := h.files.DeleteByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	if err != nil {
		logger.Errorf("Failed to delete file %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
