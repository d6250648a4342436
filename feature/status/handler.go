package status

import (
	"errors"

	"lcftrans/core/logger"
	"lcftrans/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for translation status.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/status", h.HandleOverview)
	app.Get("/units", h.HandleUnits)
	app.Get("/units/:name", h.HandleUnitDetail)
	app.Get("/search", h.HandleSearch)
}

// HandleOverview returns the aggregated progress of the whole directory.
func (h *Handler) HandleOverview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	overview, err := h.service.Overview()
	if err != nil {
		l.Error("Status overview failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(overview)
}

// HandleUnits returns the per-unit progress listing.
func (h *Handler) HandleUnits(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	units, err := h.service.Units()
	if err != nil {
		l.Error("Unit listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(units)
}

// HandleUnitDetail returns the full term listing of a single unit.
// The untranslated query parameter limits the listing to open terms.
func (h *Handler) HandleUnitDetail(c *fiber.Ctx) error {
	name := c.Params("name")
	untranslatedOnly := utils.ToBool(c.Query("untranslated"))
	l := logger.WithRayID(h.service.logger, c)

	detail, err := h.service.Unit(name, untranslatedOnly)
	if err != nil {
		if errors.Is(err, ErrUnitNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Unit detail failed", zap.String("unit", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(detail)
}

// HandleSearch finds terms matching the q query parameter across all units.
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := utils.ToInt(c.Query("limit"))
	l := logger.WithRayID(h.service.logger, c)

	results, err := h.service.Search(query, limit)
	if err != nil {
		l.Error("Search failed", zap.String("query", query), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}
