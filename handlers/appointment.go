package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"casepilot/models"
	"casepilot/service"
)

const timeLayout = "15:04"

type AppointmentHandler struct {
	data *service.DataService
}

func NewAppointmentHandler(data *service.DataService) *AppointmentHandler {
	return &AppointmentHandler{data: data}
}

type AppointmentRequest struct {
	ClientIfaNumber string `json:"client_ifa_number" binding:"required,len=6,numeric"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	Address         string `json:"address"`
	Institution     string `json:"institution"`
	Priority        string `json:"priority"`
	Status          string `json:"status"`
}

// ListAppointments returns all appointments, the ones for a single client
// (?client=<ifa>) or only the open ones (?status=open).
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	if ifa := c.Query("client"); ifa != "" {
		c.JSON(http.StatusOK, h.data.LoadAppointmentsForClient(ifa))
		return
	}
	if c.Query("status") == "open" {
		c.JSON(http.StatusOK, h.data.LoadOpenAppointments())
		return
	}
	c.JSON(http.StatusOK, h.data.LoadAppointments())
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	appointment, ok := h.bindAppointment(c)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, h.data.SaveAppointment(appointment))
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	appointment, ok := h.bindAppointment(c)
	if !ok {
		return
	}
	appointment.ID = id

	h.data.UpdateAppointment(appointment)
	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	h.data.DeleteAppointment(id)
	c.Status(http.StatusNoContent)
}

// bindAppointment validates the request body, including date and time
// parsability, before anything reaches the orchestration layer.
func (h *AppointmentHandler) bindAppointment(c *gin.Context) (models.Appointment, bool) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Appointment{}, false
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return models.Appointment{}, false
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time, expected HH:MM"})
		return models.Appointment{}, false
	}

	return models.Appointment{
		ClientIfaNumber: req.ClientIfaNumber,
		Date:            date,
		Time:            req.Time,
		Address:         req.Address,
		Institution:     req.Institution,
		Priority:        req.Priority,
		Status:          req.Status,
	}, true
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id format"})
		return 0, false
	}
	return id, true
}
