package jobqueue

import (
	"github.com/kobusvdwalt/subscribeza/internal/pkg/intake"
)

// Notifier implements intake.Notifier and intake.SheetSyncer by enqueuing
// delivery jobs, giving every side effect the queue's retry policy instead of
// a single inline attempt.
type Notifier struct {
	queue *Queue
}

// NewNotifier wraps a queue as the orchestrator's side-effect sink.
func NewNotifier(q *Queue) *Notifier {
	return &Notifier{queue: q}
}

func deliveryPayload(n intake.Notification) map[string]interface{} {
	return DeliveryJobPayload{
		SubmissionID:    n.SubmissionID,
		Email:           n.Email,
		FirstName:       n.FirstName,
		BusinessName:    n.BusinessName,
		FormDataJSON:    n.FormDataJSON,
		PaymentDataJSON: n.PaymentDataJSON,
	}.ToMap()
}

func (n *Notifier) NotifyOwner(notification intake.Notification) error {
	_, err := n.queue.EnqueueJob(JobTypeOwnerEmail, deliveryPayload(notification))
	return err
}

func (n *Notifier) NotifyCustomer(notification intake.Notification) error {
	_, err := n.queue.EnqueueJob(JobTypeCustomerEmail, deliveryPayload(notification))
	return err
}

func (n *Notifier) Sync(notification intake.Notification) error {
	_, err := n.queue.EnqueueJob(JobTypeAirtableSync, deliveryPayload(notification))
	return err
}
