package core

// BulkStatus is the three-way classification of a bulk operation's outcome.
type BulkStatus string

const (
	// BulkFailed: every element failed; nothing was written.
	BulkFailed BulkStatus = "failed"
	// BulkPartial: some elements succeeded, the rest are reported per index.
	BulkPartial BulkStatus = "partial"
	// BulkComplete: every element succeeded.
	BulkComplete BulkStatus = "complete"
)

// BulkFailure attributes one failed element to its original input index, so a
// spreadsheet import can point at the exact bad row regardless of processing
// order.
type BulkFailure struct {
	Index int         `json:"index"`
	Input interface{} `json:"input"`
	Error string      `json:"error"`
}

// BulkResult is the structured outcome of a bulk create: a failure on one
// element never aborts the rest, so both lists can be populated at once.
type BulkResult struct {
	CreatedIDs []string      `json:"createdIds"`
	Failures   []BulkFailure `json:"failures"`
}

// Status classifies the result: zero successes is a full failure, zero
// failures a full success, anything else partial.
func (r *BulkResult) Status() BulkStatus {
	switch {
	case len(r.Failures) == 0:
		return BulkComplete
	case len(r.CreatedIDs) == 0:
		return BulkFailed
	default:
		return BulkPartial
	}
}
