package jobqueue

import (
	"testing"
	"time"
)

func TestStopReturnsWhileWorkerNeedsLock(t *testing.T) {
	q := &Queue{
		processors: make(map[JobType]Processor),
		stopCh:     make(chan struct{}),
		running:    true,
	}

	// Emulate a worker mid-job: it still needs q.mu for the processor
	// lookup before it can exit.
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		<-q.stopCh
		q.mu.Lock()
		_ = q.processors[JobTypeOwnerEmail]
		q.mu.Unlock()
	}()

	done := make(chan struct{})
	go func() {
		q.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return while a worker was finishing a job")
	}
}

func TestStopIdempotent(t *testing.T) {
	q := &Queue{
		processors: make(map[JobType]Processor),
		stopCh:     make(chan struct{}),
		running:    true,
	}
	q.Stop()
	q.Stop()
}

func TestProcessingStart(t *testing.T) {
	created := time.Date(2026, 1, 21, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Minute)
	processed := created.Add(2 * time.Minute)

	job := &Job{CreatedAt: created, UpdatedAt: updated, ProcessedAt: &processed}
	if got := processingStart(job); !got.Equal(processed) {
		t.Fatalf("processingStart = %s, want ProcessedAt %s", got, processed)
	}

	job = &Job{CreatedAt: created, UpdatedAt: updated}
	if got := processingStart(job); !got.Equal(updated) {
		t.Fatalf("processingStart = %s, want UpdatedAt %s", got, updated)
	}

	job = &Job{CreatedAt: created}
	if got := processingStart(job); !got.Equal(created) {
		t.Fatalf("processingStart = %s, want CreatedAt %s", got, created)
	}

	var zero time.Time
	job = &Job{CreatedAt: created, UpdatedAt: updated, ProcessedAt: &zero}
	if got := processingStart(job); !got.Equal(updated) {
		t.Fatalf("zero ProcessedAt must fall back to UpdatedAt, got %s", got)
	}
}
