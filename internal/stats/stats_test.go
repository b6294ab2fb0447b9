package stats

import (
	"sync"
	"testing"
	"time"
)

func TestSnapshotEmpty(t *testing.T) {
	a := New()
	snap := a.Snapshot()

	if snap.Processed != 0 || snap.Errors != 0 {
		t.Errorf("fresh aggregator counts = %+v, want zeros", snap)
	}
	if snap.Average != 0 {
		t.Errorf("Average = %s with no jobs, want 0", snap.Average)
	}
	if snap.Fastest != 0 {
		t.Errorf("Fastest = %s with no jobs, want 0", snap.Fastest)
	}
	if snap.Uptime < 0 {
		t.Errorf("Uptime = %s, want >= 0", snap.Uptime)
	}
}

func TestRecordSuccess(t *testing.T) {
	a := New()
	a.RecordSuccess(10*time.Second, 50<<20)
	a.RecordSuccess(20*time.Second, 10<<20)

	snap := a.Snapshot()
	if snap.Processed != 2 {
		t.Errorf("Processed = %d, want 2", snap.Processed)
	}
	if snap.Average != 15*time.Second {
		t.Errorf("Average = %s, want 15s", snap.Average)
	}
	if snap.Fastest != 10*time.Second {
		t.Errorf("Fastest = %s, want 10s", snap.Fastest)
	}
	if snap.LargestFile != 50<<20 {
		t.Errorf("LargestFile = %d, want %d", snap.LargestFile, int64(50<<20))
	}
}

func TestRecordError(t *testing.T) {
	a := New()
	a.RecordError()
	a.RecordError()

	if got := a.Snapshot().Errors; got != 2 {
		t.Errorf("Errors = %d, want 2", got)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	a := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.RecordSuccess(time.Second, 1024)
		}()
		go func() {
			defer wg.Done()
			a.RecordError()
		}()
	}
	wg.Wait()

	snap := a.Snapshot()
	if snap.Processed != 50 || snap.Errors != 50 {
		t.Errorf("counts = %d/%d, want 50/50", snap.Processed, snap.Errors)
	}
}
