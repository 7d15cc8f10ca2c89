package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/kobusvdwalt/subscribeza/app/controllers"
	"github.com/kobusvdwalt/subscribeza/app/repository"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/database"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/jobqueue"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	factory := repository.NewFactory(database.GetDB())
	repos := factory.GetRepositories()
	notifier := jobqueue.NewNotifier(jobqueue.GetQueue())

	controllers.InitializeCheckoutController(repos)
	controllers.InitializeITNController(repos, notifier, notifier)

	app.Get("/healthz", controllers.HandleHealthz)

	// The checkout form is browser-facing and rate limited; the ITN endpoint
	// is server-to-server from PayFast and must not be, or a burst of
	// legitimate notifications would get dropped.
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
	}))
	api.Post("/checkout", controllers.HandleCheckoutStart)

	app.Post("/payfast/itn", controllers.HandlePayFastITN)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

// InstallRouter wires all routes into the app.
func InstallRouter(app *fiber.App) {
	NewHttpRouter().InstallRouter(app)
}
