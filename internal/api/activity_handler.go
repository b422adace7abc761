package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"keycrypt-backend/internal/core"
	"keycrypt-backend/internal/middleware"
	"keycrypt-backend/internal/models"
)

// ActivityHandler handles activity endpoints nested under a credential.
type ActivityHandler struct {
	service core.ActivityService
	logger  *zap.Logger
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(service core.ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{service: service, logger: logger}
}

// CreateBulk handles POST /credentials/:credentialId/activities.
func (h *ActivityHandler) CreateBulk(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	credentialID := c.Param("credentialId")
	if credentialID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Credential ID is required in path"})
		return
	}

	var entries []models.ActivityEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: expected an array of activity entries"})
		return
	}

	userEmail := c.GetString(middleware.ContextUserEmail)
	result, err := h.service.CreateBulk(c.Request.Context(), userID, userEmail, credentialID, entries)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp := newBulkResponse(result)
	c.JSON(bulkStatusCode(resp), resp)
}

// List handles GET /credentials/:credentialId/activities.
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	credentialID := c.Param("credentialId")
	if credentialID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Credential ID is required in path"})
		return
	}

	entries, err := h.service.List(c.Request.Context(), userID, credentialID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if entries == nil {
		entries = []*models.ActivityEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// Update handles PUT /credentials/:credentialId/activities/:activityId with
// merge semantics: only the fields present in the body change.
func (h *ActivityHandler) Update(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	credentialID := c.Param("credentialId")
	activityID := c.Param("activityId")
	if credentialID == "" || activityID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Credential ID and Activity ID are required in path"})
		return
	}

	var req models.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	if err := h.service.Update(c.Request.Context(), userID, credentialID, activityID, req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Activity updated successfully"})
}
