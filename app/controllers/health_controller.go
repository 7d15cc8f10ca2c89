package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kobusvdwalt/subscribeza/internal/pkg/cache"
	"github.com/kobusvdwalt/subscribeza/internal/pkg/database"
)

// HandleHealthz reports dependency health for load balancers and uptime
// checks.
func HandleHealthz(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if sqlDB, err := database.GetDB().DB(); err != nil {
		dbStatus = err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = err.Error()
	}

	redisStatus := "ok"
	if err := cache.GetClient().Ping(ctx).Err(); err != nil {
		redisStatus = err.Error()
	}

	return c.Status(readinessStatus(dbStatus, redisStatus)).JSON(fiber.Map{
		"database": dbStatus,
		"redis":    redisStatus,
	})
}

// readinessStatus maps dependency states to the HTTP status. Redis backs the
// delivery queue, so it gates readiness the same as the database.
func readinessStatus(statuses ...string) int {
	for _, s := range statuses {
		if s != "ok" {
			return fiber.StatusServiceUnavailable
		}
	}
	return fiber.StatusOK
}
