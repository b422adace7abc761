package models

import "time"

// AuditLog is one audit trail event, scoped to the user who performed it.
// Best-effort: a failed audit write never fails the operation it describes.
type AuditLog struct {
	ID         string                 `json:"id" firestore:"-"`
	Timestamp  time.Time              `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	Action     string                 `json:"action" firestore:"action"` // e.g. "CREDENTIAL_CREATE", "ACTIVITY_IMPORT"
	TargetType string                 `json:"targetType,omitempty" firestore:"targetType,omitempty"`
	TargetID   string                 `json:"targetId,omitempty" firestore:"targetId,omitempty"`
	IPAddress  string                 `json:"ipAddress,omitempty" firestore:"ipAddress,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
}
