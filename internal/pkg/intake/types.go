package intake

import (
	"context"

	"github.com/kobusvdwalt/subscribeza/internal/pkg/payfast"
)

// Outcome is the acknowledgment the webhook handler sends back to PayFast.
type Outcome struct {
	HTTPStatus   int    `json:"-"`
	Message      string `json:"message"`
	SubmissionID string `json:"submission_id,omitempty"`
	Err          string `json:"error,omitempty"`
}

// Acknowledgment messages. Everything past the signature gate acknowledges
// success so the provider never retries a notification we already trust.
const (
	MsgProcessed        = "processed"
	MsgAlreadyProcessed = "already processed"
	MsgIgnored          = "payment not complete"
	MsgRejected         = "rejected"
)

// IncompleteDataKey marks a synthesized form payload in the recovery branch,
// flagging the record for manual follow-up.
const IncompleteDataKey = "_incomplete"

// Confirmer re-validates a notification with the gateway. Failure is
// advisory; the orchestrator's trust decision is the signature.
type Confirmer interface {
	Confirm(ctx context.Context, fields payfast.OrderedFields) (bool, error)
}

// Notification is the data handed to post-promotion side effects.
type Notification struct {
	SubmissionID    string `json:"submission_id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	BusinessName    string `json:"business_name"`
	FormDataJSON    string `json:"form_data_json"`
	PaymentDataJSON string `json:"payment_data_json"`
}

// Notifier delivers the staff and customer emails. Implementations must not
// block promotion; errors are logged and swallowed by the orchestrator.
type Notifier interface {
	NotifyOwner(n Notification) error
	NotifyCustomer(n Notification) error
}

// SheetSyncer mirrors a paid submission into the back-office spreadsheet.
type SheetSyncer interface {
	Sync(n Notification) error
}
