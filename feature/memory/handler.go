package memory

import (
	"lcftrans/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the translation memory over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a new memory handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the memory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/memory", h.HandleStats)
}

// HandleStats reports how many terms the memory holds.
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.Status()
	if err != nil {
		l.Error("Failed to read memory stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read memory stats",
		})
	}

	return c.JSON(stats)
}
