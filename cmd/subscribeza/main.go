package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/kobusvdwalt/subscribeza/app/repository"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/cache"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/database"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/env"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/intake"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/jobqueue"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	// Delivery retry queue for emails and spreadsheet sync
	jobqueue.GetQueue().Start()

	// Expiry sweep for abandoned checkout handoffs
	sweeper := intake.NewSweeper(
		repository.NewPendingSubmissionRepository(database.GetDB()),
		intake.DefaultSweepInterval,
	)
	sweeper.Start()

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // notifications and form posts are small
	})

	app.Use(recover.New(), logger.New())

	router.InstallRouter(app)

	return app
}
