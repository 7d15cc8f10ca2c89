package models

import "time"

// DefaultPendingTTL is how long a checkout handoff stays claimable before the
// expiry sweep removes it.
const DefaultPendingTTL = 2 * time.Hour

// PendingSubmission holds the full form payload between checkout start and
// payment confirmation. Rows are upserted by submission id and either promoted
// into PaidSubmission or garbage-collected by the expiry sweep.
type PendingSubmission struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_pending_submissions_submission_id" json:"submission_id"`
	FormDataJSON string    `gorm:"type:longtext;not null" json:"form_data_json"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt    time.Time `gorm:"type:timestamp;not null;index" json:"expires_at"`
}

// Expired reports whether the record is past its TTL at the given time.
func (p *PendingSubmission) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
