package intake

import (
	"testing"
	"time"
)

func TestSweeperRemovesExpiredRecords(t *testing.T) {
	pending := newFakePendingRepo()
	fresh, _ := pending.Put("SUB-20260121-FRESH1", `{"business_name":"Fresh"}`)
	stale, _ := pending.Put("SUB-20260121-STALE1", `{"business_name":"Stale"}`)
	stale.ExpiresAt = time.Now().Add(-time.Minute)

	sweeper := NewSweeper(pending, 10*time.Millisecond)
	sweeper.Start()
	defer sweeper.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := pending.Get(stale.SubmissionID, true); err != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, err := pending.Get(stale.SubmissionID, true); err == nil {
		t.Fatalf("expired record survived the sweep")
	}
	if _, err := pending.Get(fresh.SubmissionID, true); err != nil {
		t.Fatalf("live record must survive the sweep: %v", err)
	}
}

func TestSweeperStartStopIdempotent(t *testing.T) {
	sweeper := NewSweeper(newFakePendingRepo(), time.Hour)
	sweeper.Start()
	sweeper.Start()
	sweeper.Stop()
	sweeper.Stop()
}

func TestSweeperDefaultInterval(t *testing.T) {
	s := NewSweeper(newFakePendingRepo(), 0)
	if s.interval != DefaultSweepInterval {
		t.Fatalf("interval = %s, want %s", s.interval, DefaultSweepInterval)
	}
}
