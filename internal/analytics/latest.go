package analytics

import "sync"

// Latest holds the most recent report. Runs are numbered when they start and
// a report is only accepted if it belongs to a newer run than the one already
// held, so a slow stale run never replaces a fresher result.
type Latest struct {
	mu        sync.RWMutex
	next      uint64
	published uint64
	report    *Report
}

// Begin reserves a sequence number for a new run.
func (l *Latest) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	return l.next
}

// Publish stores the report if seq is newer than the held one and reports
// whether it was stored.
func (l *Latest) Publish(seq uint64, report *Report) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if seq <= l.published {
		return false
	}
	l.published = seq
	l.report = report
	return true
}

// Get returns the held report and its sequence number, or nil when nothing
// has been published yet.
func (l *Latest) Get() (*Report, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.report, l.published
}
