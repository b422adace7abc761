package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"keycrypt-backend/internal/core"
	"keycrypt-backend/internal/ingest"
	"keycrypt-backend/internal/middleware"
)

// maxImportSize caps an uploaded workbook at 8 MiB.
const maxImportSize = 8 << 20

// ImportHandler handles spreadsheet bulk imports.
type ImportHandler struct {
	activities core.ActivityService
	logger     *zap.Logger
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(activities core.ActivityService, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{activities: activities, logger: logger}
}

// ImportActivities handles POST /imports/activities. It expects a multipart
// form with an .xlsx "file" and a "credentialId" field; rows become activity
// entries, with row-level problems reported per index in the bulk envelope.
func (h *ImportHandler) ImportActivities(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	credentialID := c.PostForm("credentialId")
	if credentialID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "credentialId form field is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file form field with an .xlsx upload is required"})
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Uploaded file is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	entries, err := ingest.ParseActivities(file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	userEmail := c.GetString(middleware.ContextUserEmail)
	result, err := h.activities.CreateBulk(c.Request.Context(), userID, userEmail, credentialID, entries)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp := newBulkResponse(result)
	c.JSON(bulkStatusCode(resp), resp)
}
