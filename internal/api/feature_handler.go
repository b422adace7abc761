package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"keycrypt-backend/internal/core"
	"keycrypt-backend/internal/models"
)

// FeatureHandler handles password feature vector reporting.
type FeatureHandler struct {
	service core.FeatureService
	logger  *zap.Logger
}

// NewFeatureHandler creates a FeatureHandler.
func NewFeatureHandler(service core.FeatureService, logger *zap.Logger) *FeatureHandler {
	return &FeatureHandler{service: service, logger: logger}
}

// Report handles POST /password-features.
func (h *FeatureHandler) Report(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var feature models.PasswordFeature
	if err := c.ShouldBindJSON(&feature); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	id, err := h.service.Report(c.Request.Context(), userID, feature)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
