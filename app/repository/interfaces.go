package repository

import (
	"github.com/kobusvdwalt/subscribeza/app/models"
)

// PendingSubmissionRepository defines the interface for pending-handoff
// database operations. Get returns gorm.ErrRecordNotFound for missing rows
// and, unless ignoreExpiry is set, for expired ones.
type PendingSubmissionRepository interface {
	Put(submissionID string, formDataJSON string) (*models.PendingSubmission, error)
	Get(submissionID string, ignoreExpiry bool) (*models.PendingSubmission, error)
	Delete(submissionID string) (bool, error)
	SweepExpired() (int64, error)
}

// PaidSubmissionRepository defines the interface for the permanent
// confirmed-payment table. Create is an upsert keyed on submission id; on
// conflict only payment metadata is refreshed, and empty incoming values keep
// the stored ones.
type PaidSubmissionRepository interface {
	Exists(submissionID string) (bool, error)
	Create(sub *models.PaidSubmission) (*models.PaidSubmission, error)
	FindBySubmissionID(submissionID string) (*models.PaidSubmission, error)
	FindByEmail(email string) ([]models.PaidSubmission, error)
}
