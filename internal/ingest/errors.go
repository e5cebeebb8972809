package ingest

import (
	"errors"
	"net/http"
)

// Request-level failures. Any of these rejects the whole body before processing starts.
var (
	ErrEmptyBody   = errors.New("empty request body")
	ErrInvalidJSON = errors.New("invalid JSON payload")
	ErrEmptyBatch  = errors.New("no call data provided")
)

// Item-level failures.
var (
	ErrInvalidTimestamp = errors.New("invalid date format")
	ErrNotObject        = errors.New("call data item is not a JSON object")
	ErrSaveRejected     = errors.New("save operation returned false")
)

// ItemError describes one batch item that could not be stored.
type ItemError struct {
	ID      string `json:"id"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// BatchResult summarizes one ingestion request.
//
// Skipped counts items whose id was already stored; they are neither saved nor failed.
type BatchResult struct {
	Total   int
	Saved   int
	Failed  int
	Skipped int
	Errors  []ItemError

	// SavedIDs lists the ids of inserted records in input order.
	SavedIDs []string
}

// Success reports a batch with no failures that stored or matched at least one item.
func (r BatchResult) Success() bool {
	return r.Failed == 0 && r.Saved+r.Skipped > 0
}

// StatusCode maps the batch outcome to an HTTP status:
// 200 when nothing failed, 207 when some items failed and some were saved, 400 otherwise.
func (r BatchResult) StatusCode() int {
	switch {
	case r.Success():
		return http.StatusOK
	case r.Saved > 0:
		return http.StatusMultiStatus
	default:
		return http.StatusBadRequest
	}
}
