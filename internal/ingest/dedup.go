package ingest

import (
	"fmt"

	"voice-call-dashboard/internal/calls"
)

const maxMintAttempts = 5

// Resolve returns the id to store an incoming call under.
//
// When existing holds a record with candidateID but a different caller name, the incoming
// call is a different call reusing the id, so a fresh id absent from existing is returned.
// Otherwise candidateID is returned unchanged. existing is a snapshot and may be stale.
func Resolve(candidateID, name string, existing []calls.CallRecord, newID IDFunc) string {
	collides := false
	taken := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		taken[rec.ID] = struct{}{}
		if rec.ID == candidateID && rec.CallerName != name {
			collides = true
		}
	}
	if !collides {
		return candidateID
	}

	for i := 0; i < maxMintAttempts; i++ {
		if id := newID(); id != candidateID {
			if _, ok := taken[id]; !ok {
				return id
			}
		}
	}
	// newID keeps colliding; derive from the candidate instead.
	for n := 1; ; n++ {
		id := fmt.Sprintf("%s_r%d", candidateID, n)
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}
