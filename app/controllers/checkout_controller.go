package controllers

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/kobusvdwalt/subscribeza/app/repository"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/env"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/hcaptcha"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/payfast"
)

var (
	checkoutRepos    *repository.Repositories
	checkoutValidate = validator.New()
)

// InitializeCheckoutController wires the checkout handler's repositories.
func InitializeCheckoutController(repos *repository.Repositories) {
	checkoutRepos = repos
}

// CheckoutRequest is the validated slice of the signup form. The rest of the
// form travels in FormData and stays opaque all the way to the paid record.
type CheckoutRequest struct {
	BusinessName string                 `json:"business_name" validate:"required,min=2,max=255"`
	FirstName    string                 `json:"first_name" validate:"required,max=100"`
	LastName     string                 `json:"last_name" validate:"required,max=100"`
	Email        string                 `json:"email" validate:"required,email"`
	Phone        string                 `json:"phone" validate:"max=50"`
	Industry     string                 `json:"industry" validate:"max=100"`
	CaptchaToken string                 `json:"captcha_token"`
	FormData     map[string]interface{} `json:"form_data"`
}

// HandleCheckoutStart stores the full submission as a pending handoff and
// returns the signed PayFast redirect parameter set for the browser to
// auto-submit. The submission id placed in custom_str1 is the key the ITN
// handler correlates on.
func HandleCheckoutStart(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := checkoutValidate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation failed", "details": err.Error()})
	}

	if !env.IsDev() {
		if ok, err := hcaptcha.Verify(req.CaptchaToken); !ok {
			fiberlog.Warnf("[Checkout] captcha rejected: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "captcha verification failed"})
		}
	}

	cfg, err := payfast.LoadConfig()
	if err != nil {
		fiberlog.Errorf("[Checkout] configuration unresolvable: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "payment configuration error"})
	}

	submissionID, err := generateSubmissionID()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not generate submission id"})
	}

	formData := buildFormData(req)
	formDataJSON, err := json.Marshal(formData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not encode form data"})
	}

	if _, err := checkoutRepos.Pending.Put(submissionID, string(formDataJSON)); err != nil {
		fiberlog.Errorf("[Checkout] failed to store pending submission %s: %v", submissionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not store submission"})
	}

	params := payfast.BuildRedirectParams(cfg, payfast.CheckoutDetails{
		SubmissionID: submissionID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		BusinessName: req.BusinessName,
	})

	fiberlog.Infof("[Checkout] pending submission %s stored, redirecting to PayFast", submissionID)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"submission_id": submissionID,
		"redirect_url":  cfg.ProcessURL(),
		"params":        redirectParamList(params),
	})
}

// buildFormData merges the validated scalars with the free-form remainder.
// Scalars win on key collision so the promoted record's extracted columns
// always match the payload.
func buildFormData(req CheckoutRequest) map[string]interface{} {
	formData := make(map[string]interface{}, len(req.FormData)+6)
	for k, v := range req.FormData {
		formData[k] = v
	}
	formData["business_name"] = req.BusinessName
	formData["first_name"] = req.FirstName
	formData["last_name"] = req.LastName
	formData["email"] = req.Email
	formData["phone"] = req.Phone
	formData["industry"] = req.Industry
	return formData
}

// redirectParamList keeps the signed field order on the wire; a JSON object
// would let clients reorder the hidden form inputs.
func redirectParamList(params payfast.OrderedFields) []fiber.Map {
	list := make([]fiber.Map, 0, len(params))
	for _, f := range params {
		list = append(list, fiber.Map{"name": f.Key, "value": f.Value})
	}
	return list
}

const submissionIDCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateSubmissionID produces SUB-YYYYMMDD-RANDOM6 ids. The charset skips
// lookalike characters since customers read these back over the phone.
func generateSubmissionID() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = submissionIDCharset[int(b)%len(submissionIDCharset)]
	}
	return fmt.Sprintf("SUB-%s-%s", time.Now().Format("20060102"), string(buf)), nil
}
