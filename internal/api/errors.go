package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"keycrypt-backend/internal/apperror"
	"keycrypt-backend/internal/core"
)

// respondError maps a service error to an HTTP status and the standardized
// error body. Validation failures carry per-field details; everything mapped
// to a 500 answers with a generic message and keeps the detail in the log.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *apperror.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: verr.Fields})
	case errors.Is(err, apperror.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperror.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperror.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperror.ErrDecryption):
		logger.Error("decryption failure", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to decrypt stored data"})
	default:
		logger.Error("unexpected error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred"})
	}
}

// bulkStatusCode maps a bulk outcome to its response status: nothing written
// is a client error, a mixed batch is multi-status, a clean batch is created.
func bulkStatusCode(resp BulkResponse) int {
	switch resp.Status {
	case core.BulkFailed:
		return http.StatusBadRequest
	case core.BulkPartial:
		return http.StatusMultiStatus
	default:
		return http.StatusCreated
	}
}

// userIDFromContext returns the verified uid the auth middleware stored, or
// answers 401 and reports false when it is absent.
func userIDFromContext(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return "", false
	}
	return userID, true
}
