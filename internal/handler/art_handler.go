package handler

import (
	"net/http"
	"strings"

	"github.com/artconnect/artconnect-api/internal/middleware"
	"github.com/artconnect/artconnect-api/internal/model"
	"github.com/artconnect/artconnect-api/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// listFilter reads the search parameters shared by art and event listings
func listFilter(c *gin.Context) model.ListFilter {
	page := utils.ParsePaginationParams(c, defaultPageSize, maxPageSize)
	return model.ListFilter{
		Query:    strings.TrimSpace(c.Query("query")),
		Category: strings.TrimSpace(c.Query("category")),
		Limit:    page.Limit,
		Offset:   page.Offset(),
	}
}

// ArtHandler handles art listing requests
type ArtHandler struct {
	arts   ArtAPI
	limits UploadLimits
	logger *zap.Logger
}

// NewArtHandler creates a new art handler
func NewArtHandler(arts ArtAPI, limits UploadLimits, logger *zap.Logger) *ArtHandler {
	return &ArtHandler{
		arts:   arts,
		limits: limits,
		logger: logger,
	}
}

// Create lists a new art piece with up to MaxFiles images
// POST /api/arts
func (h *ArtHandler) Create(c *gin.Context) {
	var request model.ArtCreate
	if err := c.ShouldBind(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	uploads, err := readUploads(c, "images", h.limits)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	art, reports, err := h.arts.Create(c.Request.Context(), c.GetString(middleware.ContextUserID), &request, uploads)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Art created successfully",
		"art":     art,
		"images":  reports,
	})
}

// List returns available arts matching the query
// GET /api/arts?query=&category=&page=&limit=
func (h *ArtHandler) List(c *gin.Context) {
	arts, err := h.arts.List(c.Request.Context(), listFilter(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, arts)
}

// Get returns a single art
// GET /api/arts/:id
func (h *ArtHandler) Get(c *gin.Context) {
	art, err := h.arts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, art)
}

// SetAvailability marks an art as available or sold
// PATCH /api/arts/:id
func (h *ArtHandler) SetAvailability(c *gin.Context) {
	var request model.AvailabilityUpdate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	art, err := h.arts.SetAvailability(c.Request.Context(),
		c.GetString(middleware.ContextUserID), c.Param("id"), *request.IsAvailable)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, art)
}
