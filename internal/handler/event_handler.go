package handler

import (
	"net/http"

	"github.com/artconnect/artconnect-api/internal/middleware"
	"github.com/artconnect/artconnect-api/internal/model"
	"github.com/artconnect/artconnect-api/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventHandler handles event listing requests
type EventHandler struct {
	events EventAPI
	limits UploadLimits
	logger *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(events EventAPI, limits UploadLimits, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		events: events,
		limits: limits,
		logger: logger,
	}
}

// Create lists a new event
// POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var request model.EventCreate
	if err := c.ShouldBind(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	uploads, err := readUploads(c, "images", h.limits)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	event, reports, err := h.events.Create(c.Request.Context(), c.GetString(middleware.ContextUserID), &request, uploads)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully",
		"event":   event,
		"images":  reports,
	})
}

// List returns available events matching the query
// GET /api/events?query=&category=&page=&limit=
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// Get returns a single event
// GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// SetAvailability opens or closes bookings for an event
// PATCH /api/events/:id
func (h *EventHandler) SetAvailability(c *gin.Context) {
	var request model.AvailabilityUpdate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.events.SetAvailability(c.Request.Context(),
		c.GetString(middleware.ContextUserID), c.Param("id"), *request.IsAvailable)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, event)
}
