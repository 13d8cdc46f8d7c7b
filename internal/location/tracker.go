package location

import "sync"

// Tracker enforces last-write-wins over concurrent resolutions for the
// same view. Fetches are numbered when issued; a result commits only if
// no result from a later fetch has committed already, so a slow early
// request can never overwrite a faster, newer one. Superseded results
// are discarded, not applied.
type Tracker struct {
	mu        sync.Mutex
	nextSeq   uint64
	committed uint64
	latest    *ResolvedReading
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin assigns the next fetch sequence number. Call it when the fetch
// is issued, not when it completes.
func (t *Tracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextSeq++
	return t.nextSeq
}

// Commit records a completed fetch. It returns false, leaving state
// untouched, when a fetch issued later has already committed.
func (t *Tracker) Commit(seq uint64, result *ResolvedReading) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seq < t.committed {
		return false
	}
	t.committed = seq
	t.latest = result
	return true
}

// Latest returns the most recently committed result, or nil.
func (t *Tracker) Latest() *ResolvedReading {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest
}
