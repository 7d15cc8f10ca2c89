package controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestReadinessStatus(t *testing.T) {
	assert.Equal(t, fiber.StatusOK, readinessStatus("ok", "ok"))
	assert.Equal(t, fiber.StatusServiceUnavailable, readinessStatus("dial tcp: connection refused", "ok"))
	assert.Equal(t, fiber.StatusServiceUnavailable, readinessStatus("ok", "dial tcp: connection refused"),
		"a dead redis takes the delivery queue down and must fail readiness")
	assert.Equal(t, fiber.StatusServiceUnavailable, readinessStatus("down", "down"))
}
