// Package stats accumulates process-wide job statistics.
//
// The aggregator is the only shared mutable state across user jobs besides
// the transport handles; updates are mutex-guarded and mirrored into the
// prometheus collectors in metrics.go.
package stats

import (
	"sync"
	"time"
)

// Aggregator accumulates counters and timings across completed jobs.
// It resets only on process restart.
type Aggregator struct {
	mu sync.Mutex

	start       time.Time
	processed   int64
	totalTime   time.Duration
	errorCount  int64
	largestFile int64
	fastest     time.Duration
}

// New creates an aggregator; uptime is measured from this moment.
func New() *Aggregator {
	return &Aggregator{start: time.Now()}
}

// RecordSuccess registers one completed job with its elapsed wall time and
// the size of the original input file.
func (a *Aggregator) RecordSuccess(elapsed time.Duration, fileSize int64) {
	a.mu.Lock()
	a.processed++
	a.totalTime += elapsed
	if fileSize > a.largestFile {
		a.largestFile = fileSize
	}
	if a.fastest == 0 || elapsed < a.fastest {
		a.fastest = elapsed
	}
	a.mu.Unlock()

	JobsProcessed.Inc()
	JobDuration.Observe(elapsed.Seconds())
	LargestFileBytes.Set(float64(a.LargestFile()))
}

// RecordError registers one failed processing attempt.
func (a *Aggregator) RecordError() {
	a.mu.Lock()
	a.errorCount++
	a.mu.Unlock()

	JobErrors.Inc()
}

// Snapshot is a point-in-time view of the aggregate.
type Snapshot struct {
	Processed   int64         `json:"processed"`
	Errors      int64         `json:"errors"`
	Average     time.Duration `json:"averageNs"`
	Fastest     time.Duration `json:"fastestNs"`
	LargestFile int64         `json:"largestFileBytes"`
	Uptime      time.Duration `json:"uptimeNs"`
}

// Snapshot returns the current aggregate. Average is zero when no job has
// completed; Fastest is zero until the first success.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	var average time.Duration
	if a.processed > 0 {
		average = a.totalTime / time.Duration(a.processed)
	}
	return Snapshot{
		Processed:   a.processed,
		Errors:      a.errorCount,
		Average:     average,
		Fastest:     a.fastest,
		LargestFile: a.largestFile,
		Uptime:      time.Since(a.start),
	}
}

// LargestFile returns the largest input size seen so far.
func (a *Aggregator) LargestFile() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.largestFile
}
