package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/i474232898/sensor-stats/internal/dataset"
	"github.com/i474232898/sensor-stats/internal/sensors"
	"github.com/i474232898/sensor-stats/internal/stats"
)

// CacheHeader reports whether a response was served from the result cache.
const CacheHeader = "X-Cache"

var validate = validator.New()

// statsResponse is the body of GET /stats.
type statsResponse struct {
	Stats stats.Result `json:"stats"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *sensors.Service) {
	app.Get("/stats", func(c *fiber.Ctx) error {
		params := parseStatsQuery(c)
		if err := validate.Struct(params); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, hit, err := service.Stats(c.UserContext(), params)
		if err != nil {
			var schemaErr *dataset.SchemaError
			if errors.As(err, &schemaErr) {
				return fiber.NewError(fiber.StatusServiceUnavailable, schemaErr.Error())
			}
			return fiber.NewError(fiber.StatusServiceUnavailable, "dataset unavailable")
		}

		if hit {
			c.Set(CacheHeader, "HIT")
		} else {
			c.Set(CacheHeader, "MISS")
		}
		return c.JSON(statsResponse{Stats: result})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "sensor-stats",
			"readings": service.Readings(c.UserContext()),
			"cached":   service.CachedResults(),
		})
	})
}

// parseStatsQuery copies the optional filters out of the request. Fiber
// reuses its buffers after the handler returns, and these values end up in
// long-lived cache keys.
func parseStatsQuery(c *fiber.Ctx) sensors.Params {
	return sensors.Params{
		Location:  utils.CopyString(c.Query("location")),
		Sensor:    utils.CopyString(c.Query("sensor")),
		StartDate: utils.CopyString(c.Query("start_date")),
		EndDate:   utils.CopyString(c.Query("end_date")),
	}
}

// ErrorHandler renders every handler error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
