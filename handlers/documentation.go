package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"casepilot/models"
	"casepilot/service"
)

type DocumentationHandler struct {
	data *service.DataService
}

func NewDocumentationHandler(data *service.DataService) *DocumentationHandler {
	return &DocumentationHandler{data: data}
}

type DocumentationRequest struct {
	ClientIfaNumber string `json:"client_ifa_number" binding:"required,len=6,numeric"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
}

func (h *DocumentationHandler) ListDocumentations(c *gin.Context) {
	if ifa := c.Query("client"); ifa != "" {
		c.JSON(http.StatusOK, h.data.LoadDocumentationsForClient(ifa))
		return
	}
	c.JSON(http.StatusOK, h.data.LoadDocumentations())
}

func (h *DocumentationHandler) CreateDocumentation(c *gin.Context) {
	doc, ok := h.bindDocumentation(c)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, h.data.SaveDocumentation(doc))
}

func (h *DocumentationHandler) UpdateDocumentation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	doc, ok := h.bindDocumentation(c)
	if !ok {
		return
	}
	doc.ID = id

	h.data.UpdateDocumentation(doc)
	c.Status(http.StatusNoContent)
}

func (h *DocumentationHandler) DeleteDocumentation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	h.data.DeleteDocumentation(id)
	c.Status(http.StatusNoContent)
}

func (h *DocumentationHandler) bindDocumentation(c *gin.Context) (models.Documentation, bool) {
	var req DocumentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Documentation{}, false
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return models.Documentation{}, false
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time, expected HH:MM"})
		return models.Documentation{}, false
	}

	return models.Documentation{
		ClientIfaNumber: req.ClientIfaNumber,
		Date:            date,
		Time:            req.Time,
		Title:           req.Title,
		Description:     req.Description,
	}, true
}
