package api

import (
	"keycrypt-backend/internal/apperror"
	"keycrypt-backend/internal/core"
)

// ErrorResponse is the standardized error body for all endpoints.
type ErrorResponse struct {
	Error   string                `json:"error"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

// BulkResponse is the envelope for bulk create endpoints: every element's
// outcome in one body, failures attributed to their original input indices.
type BulkResponse struct {
	Status     core.BulkStatus    `json:"status"`
	CreatedIDs []string           `json:"createdIds"`
	Failures   []core.BulkFailure `json:"failures,omitempty"`
}

func newBulkResponse(result *core.BulkResult) BulkResponse {
	createdIDs := result.CreatedIDs
	if createdIDs == nil {
		createdIDs = []string{}
	}
	return BulkResponse{
		Status:     result.Status(),
		CreatedIDs: createdIDs,
		Failures:   result.Failures,
	}
}
