package intake

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/kobusvdwalt/subscribeza/app/models"
	"github.com/kobusvdwalt/subscribeza/app/repository"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/payfast"
)

// amountEpsilon bounds the soft comparison against the two expected gross
// amounts (intro 0.00 and the configured recurring charge).
const amountEpsilon = 0.01

// Service runs the ITN pipeline: parse, verify, confirm, promote, notify,
// clean up. One instance per notification; all state lives in the stores.
type Service struct {
	cfg       payfast.Config
	pending   repository.PendingSubmissionRepository
	paid      repository.PaidSubmissionRepository
	confirmer Confirmer
	notifier  Notifier
	syncer    SheetSyncer
}

// NewService wires the orchestrator. confirmer, notifier and syncer may be
// nil; the corresponding step is then skipped.
func NewService(
	cfg payfast.Config,
	pending repository.PendingSubmissionRepository,
	paid repository.PaidSubmissionRepository,
	confirmer Confirmer,
	notifier Notifier,
	syncer SheetSyncer,
) *Service {
	return &Service{
		cfg:       cfg,
		pending:   pending,
		paid:      paid,
		confirmer: confirmer,
		notifier:  notifier,
		syncer:    syncer,
	}
}

// ProcessITN handles one notification body. Signature and hard-validation
// failures reject; everything after the payment is established as genuine
// and COMPLETE is best effort and still acknowledges success.
func (s *Service) ProcessITN(ctx context.Context, rawBody []byte) Outcome {
	fields, err := payfast.ParseNotificationBody(rawBody)
	if err != nil {
		fiberlog.Warnf("[ITN] unparseable notification body: %v", err)
		return Outcome{HTTPStatus: 400, Message: MsgRejected, Err: "unparseable payload"}
	}

	if !payfast.VerifySignature(fields, s.cfg.Passphrase) {
		fiberlog.Warn("[ITN] signature verification failed")
		return Outcome{HTTPStatus: 400, Message: MsgRejected, Err: "invalid signature"}
	}

	if got := fields.Get("merchant_id"); got != s.cfg.MerchantID {
		fiberlog.Warnf("[ITN] merchant id mismatch: got %q", got)
		return Outcome{HTTPStatus: 400, Message: MsgRejected, Err: "merchant id mismatch"}
	}

	gross := fields.Get("amount_gross")
	grossValue, err := strconv.ParseFloat(gross, 64)
	if err != nil {
		fiberlog.Warnf("[ITN] malformed amount_gross %q", gross)
		return Outcome{HTTPStatus: 400, Message: MsgRejected, Err: "malformed amount"}
	}

	submissionID := s.resolveSubmissionID(fields)

	// Server confirmation is advisory: the signature is the trust decision,
	// so an unreachable validation endpoint must not bounce a genuine payment.
	if s.confirmer != nil {
		if ok, err := s.confirmer.Confirm(ctx, fields); err != nil {
			fiberlog.Warnf("[ITN] server confirmation unreachable for %s: %v", submissionID, err)
		} else if !ok {
			fiberlog.Warnf("[ITN] server confirmation did not return VALID for %s", submissionID)
		}
	}

	s.checkExpectedAmount(submissionID, grossValue)

	if status := fields.Get("payment_status"); status != models.PaymentStatusComplete {
		fiberlog.Infof("[ITN] ignoring notification for %s with status %q", submissionID, status)
		return Outcome{HTTPStatus: 200, Message: MsgIgnored, SubmissionID: submissionID}
	}

	// Idempotency gate. The pre-check is an optimization; the real guard is
	// the unique-key upsert in the paid store, so a lookup error downgrades
	// to a warning and the pipeline continues.
	exists, err := s.paid.Exists(submissionID)
	if err != nil {
		fiberlog.Warnf("[ITN] duplicate pre-check failed for %s: %v", submissionID, err)
	} else if exists {
		fiberlog.Infof("[ITN] duplicate notification for %s, skipping", submissionID)
		return Outcome{HTTPStatus: 200, Message: MsgAlreadyProcessed, SubmissionID: submissionID}
	}

	formDataJSON := s.resolveFormData(submissionID, fields)
	sub := buildPaidSubmission(submissionID, formDataJSON, fields, rawBody)

	// A valid payment is immutable fact; a persistence failure is alerting
	// material, never an error response that would trigger provider retries.
	if _, err := s.paid.Create(sub); err != nil {
		fiberlog.Errorf("[ITN] CRITICAL: failed to persist paid submission %s, manual recovery required: %v", submissionID, err)
	}

	n := Notification{
		SubmissionID:    submissionID,
		Email:           sub.Email,
		FirstName:       sub.FirstName,
		BusinessName:    sub.BusinessName,
		FormDataJSON:    formDataJSON,
		PaymentDataJSON: sub.PaymentDataJSON,
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyOwner(n); err != nil {
			fiberlog.Warnf("[ITN] owner notification failed for %s: %v", submissionID, err)
		}
		if err := s.notifier.NotifyCustomer(n); err != nil {
			fiberlog.Warnf("[ITN] customer notification failed for %s: %v", submissionID, err)
		}
	}
	if s.syncer != nil {
		if err := s.syncer.Sync(n); err != nil {
			fiberlog.Warnf("[ITN] spreadsheet sync failed for %s: %v", submissionID, err)
		}
	}

	if _, err := s.pending.Delete(submissionID); err != nil {
		// Non-critical: the expiry sweep removes it eventually.
		fiberlog.Warnf("[ITN] pending cleanup failed for %s: %v", submissionID, err)
	}

	return Outcome{HTTPStatus: 200, Message: MsgProcessed, SubmissionID: submissionID}
}

// resolveSubmissionID extracts the correlating id from the designated custom
// field, with fallbacks so a paid customer is never dropped for want of a key.
func (s *Service) resolveSubmissionID(fields payfast.OrderedFields) string {
	if id := strings.TrimSpace(fields.Get("custom_str1")); id != "" {
		return id
	}
	if id := strings.TrimSpace(fields.Get("m_payment_id")); id != "" {
		fiberlog.Warnf("[ITN] custom_str1 missing, falling back to m_payment_id %q", id)
		return id
	}
	id := "PF-" + strings.TrimSpace(fields.Get("pf_payment_id"))
	fiberlog.Warnf("[ITN] notification carries no submission id, synthesized %q", id)
	return id
}

// checkExpectedAmount soft-validates the gross amount against the two
// expected charges. Anomalies are logged for follow-up, never blocked on:
// the money already moved.
func (s *Service) checkExpectedAmount(submissionID string, gross float64) {
	recurring, err := strconv.ParseFloat(s.cfg.RecurringAmount, 64)
	if err != nil {
		recurring = -1
	}
	if math.Abs(gross) < amountEpsilon {
		return
	}
	if recurring >= 0 && math.Abs(gross-recurring) < amountEpsilon {
		return
	}
	fiberlog.Warnf("[ITN] unexpected amount_gross %.2f for %s (expected 0.00 or %s)", gross, submissionID, s.cfg.RecurringAmount)
}

// resolveFormData fetches the pending handoff payload, or synthesizes a
// minimal one from the notification itself when the handoff is missing. The
// recovery branch keeps a paying customer on the books even when the checkout
// data never arrived.
func (s *Service) resolveFormData(submissionID string, fields payfast.OrderedFields) string {
	record, err := s.pending.Get(submissionID, false)
	if err == nil {
		return record.FormDataJSON
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		fiberlog.Warnf("[ITN] pending lookup failed for %s: %v", submissionID, err)
	}
	fiberlog.Warnf("[ITN] no pending record for %s, promoting with incomplete data for manual follow-up", submissionID)

	synthesized := map[string]interface{}{
		"business_name":   fields.Get("custom_str2"),
		"first_name":      fields.Get("name_first"),
		"last_name":       fields.Get("name_last"),
		"email":           fields.Get("email_address"),
		IncompleteDataKey: true,
	}
	encoded, err := json.Marshal(synthesized)
	if err != nil {
		return `{"` + IncompleteDataKey + `":true}`
	}
	return string(encoded)
}

// buildPaidSubmission copies the full form payload and raw notification into
// the permanent row, extracting the scalar columns used for querying.
func buildPaidSubmission(submissionID, formDataJSON string, fields payfast.OrderedFields, rawBody []byte) *models.PaidSubmission {
	var form map[string]interface{}
	_ = json.Unmarshal([]byte(formDataJSON), &form)

	return &models.PaidSubmission{
		SubmissionID:    submissionID,
		BusinessName:    firstNonEmpty(formString(form, "business_name"), fields.Get("custom_str2")),
		FirstName:       firstNonEmpty(formString(form, "first_name"), fields.Get("name_first")),
		LastName:        firstNonEmpty(formString(form, "last_name"), fields.Get("name_last")),
		Email:           firstNonEmpty(formString(form, "email"), fields.Get("email_address")),
		Phone:           formString(form, "phone"),
		Industry:        formString(form, "industry"),
		PfPaymentID:     fields.Get("pf_payment_id"),
		Token:           fields.Get("token"),
		AmountGross:     fields.Get("amount_gross"),
		AmountNet:       fields.Get("amount_net"),
		FormDataJSON:    formDataJSON,
		PaymentDataJSON: string(rawBody),
	}
}

func formString(form map[string]interface{}, key string) string {
	if form == nil {
		return ""
	}
	if v, ok := form[key].(string); ok {
		return v
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
