package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/kobusvdwalt/subscribeza/app/repository"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/intake"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/payfast"
)

const itnProcessTimeout = 30 * time.Second

var (
	itnRepos    *repository.Repositories
	itnNotifier intake.Notifier
	itnSyncer   intake.SheetSyncer
)

// InitializeITNController wires the webhook handler's collaborators.
func InitializeITNController(repos *repository.Repositories, notifier intake.Notifier, syncer intake.SheetSyncer) {
	itnRepos = repos
	itnNotifier = notifier
	itnSyncer = syncer
}

// HandlePayFastITN receives the gateway's server-to-server payment
// notification. Route registration makes it POST-only; Fiber answers other
// methods with 405 before this handler runs.
func HandlePayFastITN(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)

	cfg, err := payfast.LoadConfig()
	if err != nil {
		fiberlog.Errorf("[ITN] configuration unresolvable: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(intake.Outcome{
			Message: intake.MsgRejected,
			Err:     "server configuration error",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), itnProcessTimeout)
	defer cancel()

	outcome := processITNSafely(ctx, cfg, rawBody)
	return c.Status(outcome.HTTPStatus).JSON(outcome)
}

// processITNSafely converts any panic past the gates into a success
// acknowledgment. A retry of an already-signature-valid COMPLETE notification
// buys nothing and risks duplicate side effects, so the provider must never
// see an unexpected error.
func processITNSafely(ctx context.Context, cfg payfast.Config, rawBody []byte) (outcome intake.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			fiberlog.Errorf("[ITN] recovered from panic during processing: %v", r)
			outcome = intake.Outcome{HTTPStatus: 200, Message: intake.MsgProcessed, Err: "internal processing anomaly, logged"}
		}
	}()

	svc := intake.NewService(
		cfg,
		itnRepos.Pending,
		itnRepos.Paid,
		payfast.NewConfirmer(cfg),
		itnNotifier,
		itnSyncer,
	)
	return svc.ProcessITN(ctx, rawBody)
}
