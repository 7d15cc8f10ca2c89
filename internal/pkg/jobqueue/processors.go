package jobqueue

import (
	"context"
	"errors"
	"fmt"

	"github.com/kobusvdwalt/subscribeza/internal/pkg/airtable"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/mail"
)

// OwnerEmailProcessor delivers the staff notification for a paid submission.
func OwnerEmailProcessor(ctx context.Context, job *Job) error {
	payload, err := DeliveryJobPayloadFromMap(job.Payload)
	if err != nil {
		return Permanent(fmt.Errorf("invalid owner email payload: %w", err))
	}
	return mail.SendOwnerNotification(payload.SubmissionID, payload.BusinessName, payload.FormDataJSON, payload.PaymentDataJSON)
}

// CustomerEmailProcessor delivers the welcome email to the subscriber.
func CustomerEmailProcessor(ctx context.Context, job *Job) error {
	payload, err := DeliveryJobPayloadFromMap(job.Payload)
	if err != nil {
		return Permanent(fmt.Errorf("invalid customer email payload: %w", err))
	}
	if payload.Email == "" {
		return Permanent(fmt.Errorf("submission %s has no customer email", payload.SubmissionID))
	}
	return mail.SendCustomerWelcome(payload.Email, payload.FirstName, payload.BusinessName, payload.SubmissionID)
}

// AirtableSyncProcessor mirrors a paid submission into the back-office base.
// 4xx responses are permanent (a malformed record never fixes itself);
// 5xx/network failures retry with backoff.
func AirtableSyncProcessor(client *airtable.Client) Processor {
	return func(ctx context.Context, job *Job) error {
		payload, err := DeliveryJobPayloadFromMap(job.Payload)
		if err != nil {
			return Permanent(fmt.Errorf("invalid airtable sync payload: %w", err))
		}

		err = client.CreateSubmissionRecord(ctx, airtable.SubmissionRecord{
			SubmissionID:    payload.SubmissionID,
			Email:           payload.Email,
			FirstName:       payload.FirstName,
			BusinessName:    payload.BusinessName,
			FormDataJSON:    payload.FormDataJSON,
			PaymentDataJSON: payload.PaymentDataJSON,
		})

		var reqErr *airtable.RequestError
		if errors.As(err, &reqErr) && reqErr.Permanent() {
			return Permanent(err)
		}
		return err
	}
}
