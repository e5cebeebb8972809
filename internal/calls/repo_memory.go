package calls

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is a simple in-memory store for tests and for running without DATABASE_URL.
// It is not intended for production use.
type MemoryRepo struct {
	mu    sync.Mutex
	calls map[string]CallRecord
	leads []Lead

	// FailReads forces ListAll/ListLeads to fail; used to exercise fail-soft reads.
	FailReads error
	// FailInserts forces Insert to fail.
	FailInserts error
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{calls: map[string]CallRecord{}} }

func (r *MemoryRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.calls[id]
	return ok, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, rec CallRecord) (bool, error) {
	if rec.ID == "" {
		return false, ErrInvalidRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailInserts != nil {
		return false, r.FailInserts
	}
	if _, ok := r.calls[rec.ID]; ok {
		return false, nil
	}
	r.calls[rec.ID] = rec
	return true, nil
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]CallRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailReads != nil {
		return nil, r.FailReads
	}
	out := make([]CallRecord, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c)
	}
	sortByStartDesc(out)
	return out, nil
}

func (r *MemoryRepo) AddLead(ctx context.Context, l Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = append(r.leads, l)
	return nil
}

func (r *MemoryRepo) ListLeads(ctx context.Context) ([]Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailReads != nil {
		return nil, r.FailReads
	}
	out := make([]Lead, len(r.leads))
	copy(out, r.leads)
	sortLeads(out)
	return out, nil
}

func sortByStartDesc(rows []CallRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CallStart.Equal(rows[j].CallStart) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].CallStart.After(rows[j].CallStart)
	})
}

// sortLeads orders by owner name ascending with null names last, as Postgres does.
func sortLeads(rows []Lead) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].OwnerName, rows[j].OwnerName
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}
