package handler

import (
	"errors"
	"net/http"

	"github.com/artconnect/artconnect-api/internal/imaging"
	"github.com/artconnect/artconnect-api/internal/service"
	"github.com/artconnect/artconnect-api/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ingestionErrorMessage is the only detail clients get about a bad upload
const ingestionErrorMessage = "Failed to process images"

var (
	errBadForm      = errors.New("invalid multipart form")
	errFileTooLarge = errors.New("file too large")
)

// respondError maps service and upload errors to HTTP responses
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, message := http.StatusInternalServerError, "Internal server error"

	switch {
	case errors.Is(err, errBadForm):
		status, message = http.StatusBadRequest, "Failed to parse form data"
	case errors.Is(err, errFileTooLarge):
		status, message = http.StatusBadRequest, "File too large"
	case errors.Is(err, imaging.ErrNoImages):
		status, message = http.StatusBadRequest, "No images uploaded"
	case service.IsIngestionError(err):
		status, message = http.StatusBadRequest, ingestionErrorMessage
	case errors.Is(err, service.ErrUserNotFound):
		status, message = http.StatusNotFound, "User not found"
	case errors.Is(err, service.ErrArtNotFound):
		status, message = http.StatusNotFound, "Art not found"
	case errors.Is(err, service.ErrEventNotFound):
		status, message = http.StatusNotFound, "Event not found"
	case errors.Is(err, service.ErrEmailInUse):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, service.ErrForbidden):
		status, message = http.StatusForbidden, "Insufficient permissions"
	case errors.Is(err, service.ErrArtUnavailable), errors.Is(err, service.ErrEventUnavailable):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInvalidItemType),
		errors.Is(err, service.ErrInvalidUserType),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrNotAnArtist):
		status, message = http.StatusBadRequest, err.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err), zap.String("path", c.FullPath()))
	} else {
		logger.Debug("Request rejected", zap.Error(err), zap.Int("status", status))
	}
	c.Error(err)
	utils.SendErrorResponse(c, status, message)
}
