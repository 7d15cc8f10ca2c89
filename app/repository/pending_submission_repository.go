package repository

import (
	"time"

	"github.com/kobusvdwalt/subscribeza/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pendingSubmissionRepository struct {
	db *gorm.DB
}

// NewPendingSubmissionRepository creates a pending-submission repository
// backed by GORM.
func NewPendingSubmissionRepository(db *gorm.DB) PendingSubmissionRepository {
	return &pendingSubmissionRepository{db: db}
}

// Put upserts the handoff record. Retried checkout attempts for the same
// submission id overwrite the payload and reset the TTL window.
func (r *pendingSubmissionRepository) Put(submissionID string, formDataJSON string) (*models.PendingSubmission, error) {
	now := time.Now()
	record := &models.PendingSubmission{
		SubmissionID: submissionID,
		FormDataJSON: formDataJSON,
		CreatedAt:    now,
		ExpiresAt:    now.Add(models.DefaultPendingTTL),
	}

	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "submission_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"form_data_json",
			"created_at",
			"expires_at",
		}),
	}).Create(record).Error; err != nil {
		return nil, err
	}

	return record, r.db.Where("submission_id = ?", submissionID).First(record).Error
}

func (r *pendingSubmissionRepository) Get(submissionID string, ignoreExpiry bool) (*models.PendingSubmission, error) {
	var record models.PendingSubmission
	if err := r.db.Where("submission_id = ?", submissionID).First(&record).Error; err != nil {
		return nil, err
	}
	if !ignoreExpiry && record.Expired(time.Now()) {
		return nil, gorm.ErrRecordNotFound
	}
	return &record, nil
}

func (r *pendingSubmissionRepository) Delete(submissionID string) (bool, error) {
	tx := r.db.Where("submission_id = ?", submissionID).Delete(&models.PendingSubmission{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// SweepExpired bulk-deletes records past their TTL. Runs on its own schedule,
// never on the notification hot path.
func (r *pendingSubmissionRepository) SweepExpired() (int64, error) {
	tx := r.db.Where("expires_at < ?", time.Now()).Delete(&models.PendingSubmission{})
	return tx.RowsAffected, tx.Error
}
