package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"keycrypt-backend/internal/core"
	"keycrypt-backend/internal/models"
)

// CredentialHandler handles the credential CRUD and bulk-import endpoints.
type CredentialHandler struct {
	service core.CredentialService
	logger  *zap.Logger
}

// NewCredentialHandler creates a CredentialHandler.
func NewCredentialHandler(service core.CredentialService, logger *zap.Logger) *CredentialHandler {
	return &CredentialHandler{service: service, logger: logger}
}

// Create handles POST /credentials.
func (h *CredentialHandler) Create(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var payload models.Credential
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CreateBulk handles POST /credentials/bulk. The response always carries the
// full per-index outcome; the status code only summarizes it.
func (h *CredentialHandler) CreateBulk(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var payloads []models.Credential
	if err := c.ShouldBindJSON(&payloads); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: expected an array of credentials"})
		return
	}

	result, err := h.service.CreateBulk(c.Request.Context(), userID, payloads)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp := newBulkResponse(result)
	c.JSON(bulkStatusCode(resp), resp)
}

// List handles GET /credentials. Records come back decrypted.
func (h *CredentialHandler) List(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	credentials, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if credentials == nil {
		credentials = []*models.Credential{}
	}
	c.JSON(http.StatusOK, credentials)
}

// Replace handles PUT /credentials/:credentialId with full-document
// overwrite semantics.
func (h *CredentialHandler) Replace(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	credentialID := c.Param("credentialId")
	if credentialID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Credential ID is required in path"})
		return
	}

	var payload models.Credential
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	updated, err := h.service.Replace(c.Request.Context(), userID, credentialID, payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /credentials/:credentialId.
func (h *CredentialHandler) Delete(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	credentialID := c.Param("credentialId")
	if credentialID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Credential ID is required in path"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, credentialID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Credential deleted successfully"})
}
