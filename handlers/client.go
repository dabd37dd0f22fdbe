package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"casepilot/models"
	"casepilot/service"
	"casepilot/utils"
)

const dateLayout = "2006-01-02"

type ClientHandler struct {
	data  *service.DataService
	kafka utils.KafkaProducer
}

func NewClientHandler(data *service.DataService, kafka utils.KafkaProducer) *ClientHandler {
	return &ClientHandler{data: data, kafka: kafka}
}

type ClientRequest struct {
	IfaNumber          string `json:"ifa_number" binding:"required,len=6,numeric"`
	LastName           string `json:"last_name" binding:"required"`
	FirstName          string `json:"first_name" binding:"required"`
	BirthDate          string `json:"birth_date" binding:"required"`
	Nationality        string `json:"nationality"`
	Gender             string `json:"gender" binding:"required"`
	RelationshipStatus string `json:"relationship_status" binding:"required"`
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.LoadClients())
}

// NewClientForm returns the empty form state with a freshly generated ifa
// number, ready for the caseworker to fill in.
func (h *ClientHandler) NewClientForm(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.ResetForm())
}

// UpsertClient inserts or updates the client identified by the request's
// ifa number. Validation happens here; the orchestration layer below only
// ever sees well-formed clients.
func (h *ClientHandler) UpsertClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birthDate, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birth_date, expected YYYY-MM-DD"})
		return
	}

	client := models.Client{
		IfaNumber:          req.IfaNumber,
		LastName:           req.LastName,
		FirstName:          req.FirstName,
		BirthDate:          birthDate,
		Nationality:        req.Nationality,
		Gender:             req.Gender,
		RelationshipStatus: req.RelationshipStatus,
	}
	if err := client.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.data.SaveOrUpdateClient(client)

	if h.kafka != nil {
		go h.sendClientEvent("client_saved", client)
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	ifaNumber := c.Param("ifa")
	if ifaNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ifa number is required"})
		return
	}

	h.data.DeleteClient(ifaNumber)

	if h.kafka != nil {
		go func(ifa string) {
			event := map[string]interface{}{
				"event":      "client_deleted",
				"ifa_number": ifa,
			}
			h.sendRawKafkaEvent("client_events", event)
		}(ifaNumber)
	}

	c.Status(http.StatusNoContent)
}

// GetClientRecords returns everything linked to one client: appointments,
// documentations and file records. Empty collections, never an error.
func (h *ClientHandler) GetClientRecords(c *gin.Context) {
	ifaNumber := c.Param("ifa")
	if ifaNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ifa number is required"})
		return
	}

	c.JSON(http.StatusOK, h.data.LoadForClient(ifaNumber))
}

func (h *ClientHandler) sendClientEvent(eventType string, client models.Client) {
	event := map[string]interface{}{
		"event": eventType,
		"data":  client,
	}
	h.sendRawKafkaEvent("client_events", event)
}

func (h *ClientHandler) sendRawKafkaEvent(topic string, event interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	jsonData, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal Kafka event: %v", err)
		return
	}

	if err := h.kafka.SendMessage(ctx, topic, nil, jsonData); err != nil {
		log.Printf("Failed to send Kafka message: %v", err)
	}
}
