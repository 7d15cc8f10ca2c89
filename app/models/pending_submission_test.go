package models

import (
	"testing"
	"time"
)

func TestPendingSubmissionExpired(t *testing.T) {
	now := time.Date(2026, 1, 21, 12, 0, 0, 0, time.UTC)
	rec := PendingSubmission{ExpiresAt: now.Add(DefaultPendingTTL)}

	if rec.Expired(now) {
		t.Fatalf("fresh record must not be expired")
	}
	if rec.Expired(now.Add(DefaultPendingTTL)) {
		t.Fatalf("record expires only after its deadline, not at it")
	}
	if !rec.Expired(now.Add(DefaultPendingTTL + time.Second)) {
		t.Fatalf("record past its deadline must be expired")
	}
}
