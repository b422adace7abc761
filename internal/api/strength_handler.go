package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"keycrypt-backend/internal/strength"
)

// StrengthPredictor is the strength engine surface the handler needs.
type StrengthPredictor interface {
	Predict(ctx context.Context, userID, password string) (*strength.Prediction, error)
}

// StrengthHandler proxies password-strength predictions from the ML engine.
type StrengthHandler struct {
	predictor StrengthPredictor
	logger    *zap.Logger
}

// NewStrengthHandler creates a StrengthHandler.
func NewStrengthHandler(predictor StrengthPredictor, logger *zap.Logger) *StrengthHandler {
	return &StrengthHandler{predictor: predictor, logger: logger}
}

type strengthRequest struct {
	Password string `json:"password"`
}

// Predict handles POST /password-strength. The password travels in the body,
// never in the URL, so it cannot leak into access logs.
func (h *StrengthHandler) Predict(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req strengthRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Request body must carry a non-empty password"})
		return
	}

	prediction, err := h.predictor.Predict(c.Request.Context(), userID, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, prediction)
}
