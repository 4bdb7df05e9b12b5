package prof

import (
	"sync"
	"time"
)

// Entry represents a single timing measurement.
type Entry struct {
	Label string
	Dur   time.Duration
}

var (
	mu     sync.Mutex
	record []Entry
)

// Track logs the duration since start with the given name. Call it
// deferred at the top of the measured function.
func Track(start time.Time, name string) {
	elapsed := time.Since(start)
	mu.Lock()
	record = append(record, Entry{Label: name, Dur: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns the collected timing entries and clears them.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}

// TotalByLabel sums a snapshot per label.
func TotalByLabel(entries []Entry) map[string]time.Duration {
	out := make(map[string]time.Duration, len(entries))
	for _, e := range entries {
		out[e.Label] += e.Dur
	}
	return out
}
