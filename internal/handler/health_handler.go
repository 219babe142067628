package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Pinger is the slice of pgxpool.Pool the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the API and its database are reachable.
type HealthHandler struct {
	pool Pinger
}

func NewHealthHandler(pool Pinger) *HealthHandler {
	return &HealthHandler{pool: pool}
}

// Check pings the database with a short deadline so a stalled connection
// cannot hang the probe. 200 when healthy, 503 otherwise.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.pool.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("health check failed: database unreachable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  "database connection failed",
		})
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}
