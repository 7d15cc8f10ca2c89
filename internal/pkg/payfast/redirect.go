package payfast

import "github.com/kobusvdwalt/subscribeza/internal/pkg/env"

// CheckoutDetails carries the subscriber fields the redirect form needs.
type CheckoutDetails struct {
	SubmissionID string
	FirstName    string
	LastName     string
	Email        string
	BusinessName string
}

// Monthly subscription with the first period free. Frequency 3 is PayFast's
// monthly cycle; cycles 0 runs until cancelled.
const (
	subscriptionTypeRecurring = "1"
	billingFrequencyMonthly   = "3"
	billingCyclesIndefinite   = "0"
	introAmount               = "0.00"
)

// BuildRedirectParams assembles the signed parameter set the browser posts to
// /eng/process. The field order here is fixed by us as the sender and the
// signature is computed over exactly this order; it is a different
// computation from ITN verification and must never be sorted or conflated
// with it.
func BuildRedirectParams(cfg Config, d CheckoutDetails) OrderedFields {
	fields := OrderedFields{}.
		Append("merchant_id", cfg.MerchantID).
		Append("merchant_key", cfg.MerchantKey).
		Append("return_url", env.GetEnv("PAYFAST_RETURN_URL", "")).
		Append("cancel_url", env.GetEnv("PAYFAST_CANCEL_URL", "")).
		Append("notify_url", env.GetEnv("PAYFAST_NOTIFY_URL", "")).
		Append("name_first", d.FirstName).
		Append("name_last", d.LastName).
		Append("email_address", d.Email).
		Append("m_payment_id", d.SubmissionID).
		Append("amount", introAmount).
		Append("item_name", env.GetEnv("PAYFAST_ITEM_NAME", "Subscription")).
		Append("custom_str1", d.SubmissionID).
		Append("custom_str2", d.BusinessName).
		Append("subscription_type", subscriptionTypeRecurring).
		Append("recurring_amount", cfg.RecurringAmount).
		Append("frequency", billingFrequencyMonthly).
		Append("cycles", billingCyclesIndefinite)

	return fields.Append(SignatureField, Sign(fields, cfg.Passphrase))
}
