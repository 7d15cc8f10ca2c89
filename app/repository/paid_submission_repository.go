package repository

import (
	"github.com/kobusvdwalt/subscribeza/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type paidSubmissionRepository struct {
	db *gorm.DB
}

// NewPaidSubmissionRepository creates a paid-submission repository backed by
// GORM.
func NewPaidSubmissionRepository(db *gorm.DB) PaidSubmissionRepository {
	return &paidSubmissionRepository{db: db}
}

func (r *paidSubmissionRepository) Exists(submissionID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.PaidSubmission{}).
		Where("submission_id = ?", submissionID).
		Count(&count).Error
	return count > 0, err
}

// paidConflictAssignments lists what a duplicate notification may touch:
// payment metadata only, and only when the incoming value is non-empty.
// form_data_json and payment_status are deliberately absent so the original
// promotion can never be overwritten.
func paidConflictAssignments() map[string]interface{} {
	return map[string]interface{}{
		"pf_payment_id":     gorm.Expr("COALESCE(NULLIF(VALUES(`pf_payment_id`), ''), `pf_payment_id`)"),
		"token":             gorm.Expr("COALESCE(NULLIF(VALUES(`token`), ''), `token`)"),
		"amount_gross":      gorm.Expr("COALESCE(NULLIF(VALUES(`amount_gross`), ''), `amount_gross`)"),
		"amount_net":        gorm.Expr("COALESCE(NULLIF(VALUES(`amount_net`), ''), `amount_net`)"),
		"payment_data_json": gorm.Expr("COALESCE(NULLIF(VALUES(`payment_data_json`), ''), `payment_data_json`)"),
		"updated_at":        gorm.Expr("CURRENT_TIMESTAMP"),
	}
}

// Create promotes a submission. The unique index on submission_id plus the
// bounded ON DUPLICATE KEY assignments make the write idempotent under
// at-least-once delivery; racing duplicates both succeed, one row exists.
// PaymentStatus is pinned here - the table has no API for any other value.
func (r *paidSubmissionRepository) Create(sub *models.PaidSubmission) (*models.PaidSubmission, error) {
	sub.PaymentStatus = models.PaymentStatusComplete

	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_id"}},
		DoUpdates: clause.Assignments(paidConflictAssignments()),
	}).Create(sub).Error; err != nil {
		return nil, err
	}

	return r.FindBySubmissionID(sub.SubmissionID)
}

func (r *paidSubmissionRepository) FindBySubmissionID(submissionID string) (*models.PaidSubmission, error) {
	var record models.PaidSubmission
	if err := r.db.Where("submission_id = ?", submissionID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *paidSubmissionRepository) FindByEmail(email string) ([]models.PaidSubmission, error) {
	var records []models.PaidSubmission
	err := r.db.Where("email = ?", email).Order("created_at DESC").Find(&records).Error
	return records, err
}
