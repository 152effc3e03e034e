package engine

import (
	"sync"
	"time"
)

// percentMultiplier converts a ratio to a percentage (0-100).
const percentMultiplier = 100

// ProgressCallback is an optional callback invoked after each work item
// completes. It runs on worker goroutines and receives progress
// information for UI updates or logging.
type ProgressCallback func(progress *Progress)

// Progress tracks the progress of one dispatch. It provides thread-safe
// access to progress metrics for UI updates.
type Progress struct {
	// TotalItems is the total number of work items to process.
	TotalItems int

	// ProcessedItems is the number of work items completed so far,
	// counting failures as completed.
	ProcessedItems int

	// StartTime is when the dispatch started.
	StartTime time.Time

	// LastUpdateTime is when progress was last updated.
	LastUpdateTime time.Time

	// mu protects concurrent access to progress fields.
	mu sync.RWMutex
}

// NewProgress creates a progress tracker for a dispatch of totalItems.
func NewProgress(totalItems int) *Progress {
	now := time.Now()
	return &Progress{
		TotalItems:     totalItems,
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// AddProcessed increments the processed item count. Thread-safe.
func (p *Progress) AddProcessed(items int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ProcessedItems += items
	p.LastUpdateTime = time.Now()
}

// PercentComplete returns the completion percentage (0-100).
func (p *Progress) PercentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.TotalItems == 0 {
		return 0
	}
	return (float64(p.ProcessedItems) / float64(p.TotalItems)) * percentMultiplier
}

// IsComplete returns true if every work item has produced an outcome.
func (p *Progress) IsComplete() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.ProcessedItems >= p.TotalItems
}

// ElapsedTime returns the time elapsed since the dispatch started.
func (p *Progress) ElapsedTime() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return time.Since(p.StartTime)
}

// ItemsPerSecond returns the processing rate in items per second.
func (p *Progress) ItemsPerSecond() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	elapsed := time.Since(p.StartTime).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(p.ProcessedItems) / elapsed
}

// Snapshot returns a thread-safe copy of the current progress state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := ProgressSnapshot{
		TotalItems:     p.TotalItems,
		ProcessedItems: p.ProcessedItems,
		StartTime:      p.StartTime,
		LastUpdateTime: p.LastUpdateTime,
		ElapsedTime:    time.Since(p.StartTime),
	}
	if p.TotalItems > 0 {
		snap.PercentComplete = (float64(p.ProcessedItems) / float64(p.TotalItems)) * percentMultiplier
	}
	return snap
}

// ProgressSnapshot is an immutable snapshot of progress state.
type ProgressSnapshot struct {
	TotalItems      int
	ProcessedItems  int
	StartTime       time.Time
	LastUpdateTime  time.Time
	PercentComplete float64
	ElapsedTime     time.Duration
}
