package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"casepilot/models"
	"casepilot/service"
	"casepilot/utils"
)

type FileHandler struct {
	data    *service.DataService
	uploads *utils.UploadStore
}

func NewFileHandler(data *service.DataService, uploads *utils.UploadStore) *FileHandler {
	return &FileHandler{data: data, uploads: uploads}
}

func (h *FileHandler) ListFiles(c *gin.Context) {
	ifaNumber := c.Param("ifa")
	if ifaNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ifa number is required"})
		return
	}

	c.JSON(http.StatusOK, h.data.LoadFilesForClient(ifaNumber))
}

// UploadFile copies the multipart payload into the managed uploads
// directory and records the resolved absolute path for the client. The
// record never carries the bytes themselves.
func (h *FileHandler) UploadFile(c *gin.Context) {
	ifaNumber := c.Param("ifa")
	if ifaNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ifa number is required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer src.Close()

	absPath, mimeType, err := h.uploads.Store(file.Filename, src)
	if err != nil {
		log.Printf("Failed to store upload %q: %v", file.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded file"})
		return
	}

	record := h.data.SaveFileRecord(models.FileRecord{
		FileName:        file.Filename,
		FileType:        mimeType,
		UploadDate:      time.Now(),
		FilePath:        absPath,
		ClientIfaNumber: ifaNumber,
	})

	c.JSON(http.StatusCreated, record)
}

func (h *FileHandler) DeleteFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if !h.data.DeleteFileRecord(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file record not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
