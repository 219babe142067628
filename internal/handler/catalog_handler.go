package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/stylehub/booking-api/internal/model"
	"github.com/stylehub/booking-api/internal/service"
)

// CatalogServiceInterface defines the interface for catalog reads.
type CatalogServiceInterface interface {
	ListStylists(ctx context.Context) ([]model.Stylist, error)
	GetStylist(ctx context.Context, id string) (*model.Stylist, error)
	GetService(ctx context.Context, id string) (*model.Service, error)
	ListServicesByStylist(ctx context.Context, stylistID string) ([]model.Service, error)
}

// CatalogHandler handles HTTP requests for the stylist and service catalog.
type CatalogHandler struct {
	service CatalogServiceInterface
}

// NewCatalogHandler creates a new CatalogHandler with the given service.
func NewCatalogHandler(svc CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// ListStylists handles GET /api/stylists.
func (h *CatalogHandler) ListStylists(c *fiber.Ctx) error {
	stylists, err := h.service.ListStylists(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list stylists")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(stylists)
}

// GetStylist handles GET /api/stylists/:id.
func (h *CatalogHandler) GetStylist(c *fiber.Ctx) error {
	id := c.Params("id")

	stylist, err := h.service.GetStylist(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStylistNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "stylist not found"})
		}
		log.Error().Err(err).Str("stylist_id", id).Msg("failed to get stylist")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(stylist)
}

// GetService handles GET /api/services/:id.
func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	id := c.Params("id")

	svc, err := h.service.GetService(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "service not found"})
		}
		log.Error().Err(err).Str("service_id", id).Msg("failed to get service")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(svc)
}

// ListServicesByStylist handles GET /api/services/stylist/:stylistId.
func (h *CatalogHandler) ListServicesByStylist(c *fiber.Ctx) error {
	stylistID := c.Params("stylistId")

	services, err := h.service.ListServicesByStylist(c.Context(), stylistID)
	if err != nil {
		log.Error().Err(err).Str("stylist_id", stylistID).Msg("failed to list services")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(services)
}
