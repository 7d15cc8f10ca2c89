package jobqueue

import (
	"encoding/json"
	"errors"
	"time"
)

// JobType defines the type of delivery job
type JobType string

const (
	JobTypeOwnerEmail    JobType = "owner_email"
	JobTypeCustomerEmail JobType = "customer_email"
	JobTypeAirtableSync  JobType = "airtable_sync"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

const (
	// DefaultMaxRetries bounds transient-failure retries per job.
	DefaultMaxRetries = 3
	// baseRetryDelay doubles per attempt.
	baseRetryDelay = 30 * time.Second
	// JobTTL expires stale job records in redis.
	JobTTL = 24 * time.Hour
)

// ErrPermanent wraps an error that must never be retried (4xx-class
// responses from a delivery target). 5xx and network failures stay retryable.
var ErrPermanent = errors.New("permanent delivery failure")

// Permanent marks err as non-retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return ErrPermanent }

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanent)
}

// RetryDelay returns the bounded exponential backoff before the given retry
// attempt (1-based): base, 2x base, 4x base.
func RetryDelay(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	delay := baseRetryDelay
	for i := 1; i < retryCount; i++ {
		delay *= 2
	}
	return delay
}

// Job represents a queued delivery attempt
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// MarkAsProcessing transitions the job to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.ProcessedAt = &now
	j.UpdatedAt = now
}

// MarkAsCompleted transitions the job to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkAsFailed records the failure message
func (j *Job) MarkAsFailed(msg string) {
	j.Status = JobStatusFailed
	j.ErrorMsg = msg
	j.UpdatedAt = time.Now()
}

// MarkAsRetrying bumps the retry counter
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.RetryCount++
	j.UpdatedAt = time.Now()
}

// IsRetryable reports whether another attempt is allowed
func (j *Job) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}

// DeliveryJobPayload carries everything a delivery target needs about a paid
// submission. The queue is volatile, so the payload is self-contained rather
// than a row reference.
type DeliveryJobPayload struct {
	SubmissionID    string `json:"submission_id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	BusinessName    string `json:"business_name"`
	FormDataJSON    string `json:"form_data_json"`
	PaymentDataJSON string `json:"payment_data_json"`
}

// ToMap converts the payload to a map for storage
func (p DeliveryJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"submission_id":     p.SubmissionID,
		"email":             p.Email,
		"first_name":        p.FirstName,
		"business_name":     p.BusinessName,
		"form_data_json":    p.FormDataJSON,
		"payment_data_json": p.PaymentDataJSON,
	}
}

// DeliveryJobPayloadFromMap creates a payload from a map
func DeliveryJobPayloadFromMap(data map[string]interface{}) (*DeliveryJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload DeliveryJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}
