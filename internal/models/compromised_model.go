package models

import "time"

// CompromisedEntry is a flagged breach record. Same shape family as
// ActivityEntry but scoped directly to the user, created only in bulk.
type CompromisedEntry struct {
	ID            string    `json:"id" firestore:"-"`
	Device        string    `json:"device" firestore:"device" validate:"required"`
	City          string    `json:"city,omitempty" firestore:"city,omitempty"`
	State         string    `json:"state,omitempty" firestore:"state,omitempty"`
	Country       string    `json:"country,omitempty" firestore:"country,omitempty"`
	IP            string    `json:"ip,omitempty" firestore:"ip,omitempty" validate:"omitempty,ip"`
	Timestamp     time.Time `json:"timestamp" firestore:"timestamp" validate:"required"`
	Suspicious    bool      `json:"suspicious" firestore:"suspicious"`
	SessionActive bool      `json:"sessionActive" firestore:"sessionActive"`
	// Reported is tri-state: nil while the user has not decided whether to
	// report the breach.
	Reported *bool `json:"reported" firestore:"reported"`
}

// UpdateCompromisedRequest carries a merge-semantics patch for a breach
// record; only non-nil fields are written.
type UpdateCompromisedRequest struct {
	Suspicious    *bool `json:"suspicious,omitempty"`
	SessionActive *bool `json:"sessionActive,omitempty"`
	Reported      *bool `json:"reported,omitempty"`
}

// Patch returns only the fields present in the request.
func (r *UpdateCompromisedRequest) Patch() map[string]interface{} {
	patch := make(map[string]interface{})
	if r.Suspicious != nil {
		patch["suspicious"] = *r.Suspicious
	}
	if r.SessionActive != nil {
		patch["sessionActive"] = *r.SessionActive
	}
	if r.Reported != nil {
		patch["reported"] = *r.Reported
	}
	return patch
}
