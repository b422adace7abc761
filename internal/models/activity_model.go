package models

import "time"

// ActivityEntry is one login/session event observed for a credential.
// Owned by exactly one credential and stored under it. Stored in plaintext:
// entries are treated as metadata, not secrets.
type ActivityEntry struct {
	ID            string    `json:"id" firestore:"-"`
	Device        string    `json:"device" firestore:"device" validate:"required"`
	City          string    `json:"city,omitempty" firestore:"city,omitempty"`
	State         string    `json:"state,omitempty" firestore:"state,omitempty"`
	Country       string    `json:"country,omitempty" firestore:"country,omitempty"`
	IP            string    `json:"ip,omitempty" firestore:"ip,omitempty" validate:"omitempty,ip"`
	Timestamp     time.Time `json:"timestamp" firestore:"timestamp" validate:"required"`
	Suspicious    bool      `json:"suspicious" firestore:"suspicious"`
	SessionActive bool      `json:"sessionActive" firestore:"sessionActive"`
	// Confirmed is tri-state: nil means the user has not yet answered
	// "was this you?".
	Confirmed *bool `json:"confirmed" firestore:"confirmed"`
}

// UpdateActivityRequest carries a merge-semantics patch: only non-nil fields
// are written, everything else on the stored entry stays untouched.
type UpdateActivityRequest struct {
	Device        *string `json:"device,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	Country       *string `json:"country,omitempty"`
	IP            *string `json:"ip,omitempty" validate:"omitempty,ip"`
	Suspicious    *bool   `json:"suspicious,omitempty"`
	SessionActive *bool   `json:"sessionActive,omitempty"`
	Confirmed     *bool   `json:"confirmed,omitempty"`
}

// Patch returns only the fields present in the request, keyed by their
// stored names.
func (r *UpdateActivityRequest) Patch() map[string]interface{} {
	patch := make(map[string]interface{})
	if r.Device != nil {
		patch["device"] = *r.Device
	}
	if r.City != nil {
		patch["city"] = *r.City
	}
	if r.State != nil {
		patch["state"] = *r.State
	}
	if r.Country != nil {
		patch["country"] = *r.Country
	}
	if r.IP != nil {
		patch["ip"] = *r.IP
	}
	if r.Suspicious != nil {
		patch["suspicious"] = *r.Suspicious
	}
	if r.SessionActive != nil {
		patch["sessionActive"] = *r.SessionActive
	}
	if r.Confirmed != nil {
		patch["confirmed"] = *r.Confirmed
	}
	return patch
}
