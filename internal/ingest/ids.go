package ingest

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// IDFunc mints a fresh call identifier.
type IDFunc func() string

// NewCallID returns an identifier of the form call_<unix-ms>_<0-999>.
// Two ids minted in the same millisecond collide with probability 1/1000.
func NewCallID() string {
	return callIDAt(time.Now(), rand.IntN(1000))
}

func callIDAt(t time.Time, suffix int) string {
	return fmt.Sprintf("call_%d_%d", t.UnixMilli(), suffix)
}
