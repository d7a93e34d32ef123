package repair

import "sync"

// PreviousSeen is the per-failing-label set of candidate target labels
// already attempted during the current run. It persists
// across outer-driver iterations; nothing clears it during a run, and
// only an explicit Reset empties it. Each label's entry is guarded by a
// short critical section around Take/Put so that the lock is never
// held across a slow external-editor call.
type PreviousSeen struct {
	mu      sync.Mutex
	byLabel map[string]map[string]bool
}

func NewPreviousSeen() *PreviousSeen {
	return &PreviousSeen{byLabel: make(map[string]map[string]bool)}
}

// Take removes and returns label's entry, leaving an empty set behind
// in its place conceptually — the caller owns it exclusively until Put.
func (p *PreviousSeen) Take(label string) map[string]bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	set := p.byLabel[label]
	if set == nil {
		set = make(map[string]bool)
	} else {
		delete(p.byLabel, label)
	}
	return set
}

// Put merges set back into label's entry. The set of (label, target)
// pairs across a run is monotonically non-decreasing: Put only adds.
func (p *PreviousSeen) Put(label string, set map[string]bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	existing := p.byLabel[label]
	if existing == nil {
		p.byLabel[label] = set
		return
	}
	for k := range set {
		existing[k] = true
	}
}

// Reset clears all entries. PreviousSeen persists across the outer
// driver's retry iterations by design (§3) — Reset must only be called
// at the boundary of a whole auto-repair run, never between retries of
// the same run.
func (p *PreviousSeen) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byLabel = make(map[string]map[string]bool)
}
