package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"keycrypt-backend/internal/core"
	"keycrypt-backend/internal/models"
)

// CompromisedHandler handles breach-record endpoints scoped to the user.
type CompromisedHandler struct {
	service core.CompromisedService
	logger  *zap.Logger
}

// NewCompromisedHandler creates a CompromisedHandler.
func NewCompromisedHandler(service core.CompromisedService, logger *zap.Logger) *CompromisedHandler {
	return &CompromisedHandler{service: service, logger: logger}
}

// CreateBulk handles POST /compromised.
func (h *CompromisedHandler) CreateBulk(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var entries []models.CompromisedEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: expected an array of compromised entries"})
		return
	}

	result, err := h.service.CreateBulk(c.Request.Context(), userID, entries)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp := newBulkResponse(result)
	c.JSON(bulkStatusCode(resp), resp)
}

// List handles GET /compromised.
func (h *CompromisedHandler) List(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	entries, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if entries == nil {
		entries = []*models.CompromisedEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// Update handles PUT /compromised/:entryId with merge semantics.
func (h *CompromisedHandler) Update(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	entryID := c.Param("entryId")
	if entryID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Entry ID is required in path"})
		return
	}

	var req models.UpdateCompromisedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	if err := h.service.Update(c.Request.Context(), userID, entryID, req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Compromised entry updated successfully"})
}
