package models

import "time"

// PaymentStatusComplete is the only status a PaidSubmission row may carry.
// The repository fixes it on insert and never updates it; a row existing in
// this table means a COMPLETE notification was validated for it.
const PaymentStatusComplete = "COMPLETE"

// PaidSubmission is the permanent record of a confirmed-paid signup. Exactly
// one row per submission id; duplicate notifications update bounded payment
// metadata only.
type PaidSubmission struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	SubmissionID string `gorm:"type:varchar(64);not null;uniqueIndex:ux_paid_submissions_submission_id" json:"submission_id"`

	// Scalars extracted for querying; the authoritative payload is FormDataJSON.
	BusinessName string `gorm:"type:varchar(255)" json:"business_name"`
	FirstName    string `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string `gorm:"type:varchar(100)" json:"last_name"`
	Email        string `gorm:"type:varchar(255);index" json:"email"`
	Phone        string `gorm:"type:varchar(50)" json:"phone"`
	Industry     string `gorm:"type:varchar(100)" json:"industry"`

	PaymentStatus string `gorm:"type:varchar(20);not null" json:"payment_status"`
	PfPaymentID   string `gorm:"type:varchar(100)" json:"pf_payment_id"`
	Token         string `gorm:"type:varchar(100)" json:"token"`
	AmountGross   string `gorm:"type:varchar(20)" json:"amount_gross"`
	AmountNet     string `gorm:"type:varchar(20)" json:"amount_net"`

	FormDataJSON    string `gorm:"type:longtext;not null" json:"form_data_json"`
	PaymentDataJSON string `gorm:"type:longtext" json:"payment_data_json"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
