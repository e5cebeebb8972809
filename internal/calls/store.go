package calls

import (
	"context"
	"errors"
)

var (
	ErrInvalidRecord = errors.New("calls: invalid record")
	ErrNotConfigured = errors.New("calls: store not configured")
)

// Store is the persistence contract consumed by ingestion and the read endpoints.
//
// Insert returns false (with a nil error) when the id is already taken. Callers check
// Exists first and skip the insert; the read-before-write is not atomic across requests.
type Store interface {
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, rec CallRecord) (bool, error)
	// ListAll returns every record ordered by CallStart descending.
	ListAll(ctx context.Context) ([]CallRecord, error)
}

// LeadStore lists contact rows ordered by owner name ascending.
type LeadStore interface {
	ListLeads(ctx context.Context) ([]Lead, error)
}

// LeadWriter appends contact rows. Used by the operator import.
type LeadWriter interface {
	AddLead(ctx context.Context, l Lead) error
}

// ReadResult is the outcome of a fail-soft read.
// Items is never nil. Degraded reports that Items is empty because the backend failed,
// as opposed to there being no data.
type ReadResult[T any] struct {
	Items    []T
	Degraded bool
	Err      error
}

// ReadCalls lists all calls, converting any backend failure into an empty degraded result.
func ReadCalls(ctx context.Context, s Store) ReadResult[CallRecord] {
	if s == nil {
		return ReadResult[CallRecord]{Items: []CallRecord{}, Degraded: true, Err: ErrNotConfigured}
	}
	rows, err := s.ListAll(ctx)
	if err != nil {
		return ReadResult[CallRecord]{Items: []CallRecord{}, Degraded: true, Err: err}
	}
	if rows == nil {
		rows = []CallRecord{}
	}
	return ReadResult[CallRecord]{Items: rows}
}

// ReadLeads is the LeadStore counterpart of ReadCalls.
func ReadLeads(ctx context.Context, s LeadStore) ReadResult[Lead] {
	if s == nil {
		return ReadResult[Lead]{Items: []Lead{}, Degraded: true, Err: ErrNotConfigured}
	}
	rows, err := s.ListLeads(ctx)
	if err != nil {
		return ReadResult[Lead]{Items: []Lead{}, Degraded: true, Err: err}
	}
	if rows == nil {
		rows = []Lead{}
	}
	return ReadResult[Lead]{Items: rows}
}
