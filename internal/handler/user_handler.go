package handler

import (
	"net/http"

	"github.com/artconnect/artconnect-api/internal/middleware"
	"github.com/artconnect/artconnect-api/internal/model"
	"github.com/artconnect/artconnect-api/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles account, favorite, follow and order requests
type UserHandler struct {
	auth   AuthAPI
	users  UserAPI
	limits UploadLimits
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(auth AuthAPI, users UserAPI, limits UploadLimits, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		auth:   auth,
		users:  users,
		limits: limits,
		logger: logger,
	}
}

// Register handles user registration
// POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var request model.UserRegister
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.Register(c.Request.Context(), &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles user login
// POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var request model.UserLogin
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.auth.Login(c.Request.Context(), &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout handles user logout. Tokens are stateless, so this only records it.
// POST /api/users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context(), c.GetString(middleware.ContextUserID))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetDetails returns a user with everything linked to them
// GET /api/users/details/:id
func (h *UserHandler) GetDetails(c *gin.Context) {
	details, err := h.users.GetDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// UpdateImage replaces the profile image with a compressed upload
// POST /api/users/update-image/:id
func (h *UserHandler) UpdateImage(c *gin.Context) {
	limits := h.limits
	limits.MaxFiles = 1

	uploads, err := readUploads(c, "image", limits)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response, err := h.users.UpdateImage(c.Request.Context(), c.Param("id"), uploads[0])
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ToggleFavorite adds or removes a favorite
// POST /api/users/toggle-favorite/:userId/:itemId/:itemType
func (h *UserHandler) ToggleFavorite(c *gin.Context) {
	active, err := h.users.ToggleFavorite(c.Request.Context(),
		c.Param("userId"), c.Param("itemId"), c.Param("itemType"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, model.ToggleResult{Active: active})
}

// GetFavorites returns the favorited arts and events of a user
// GET /api/users/favorites/:userId
func (h *UserHandler) GetFavorites(c *gin.Context) {
	favorites, err := h.users.GetFavorites(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, favorites)
}

// ToggleFollow follows or unfollows an artist
// POST /api/users/toggle-follow/:userId/:artistId
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	active, err := h.users.ToggleFollow(c.Request.Context(), c.Param("userId"), c.Param("artistId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, model.ToggleResult{Active: active})
}

// CompleteOrder buys an art or books an event for the authenticated user
// POST /api/users/complete-order
func (h *UserHandler) CompleteOrder(c *gin.Context) {
	var request model.OrderCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if request.UserID != c.GetString(middleware.ContextUserID) {
		utils.SendErrorResponse(c, http.StatusForbidden, "You can only order for your own account")
		return
	}

	order, err := h.users.CompleteOrder(c.Request.Context(), &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order completed successfully",
		"order":   order,
	})
}
