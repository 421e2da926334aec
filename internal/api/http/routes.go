package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-history/internal/store"
	"github.com/i474232898/weather-history/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/regions", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"regions": service.RegionNames()})
	})

	v1.Get("/regions/:region/summary", func(c *fiber.Ctx) error {
		region := c.Params("region")
		summaries, err := service.Summaries(region)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{
			"region":    region,
			"summaries": summaries,
		})
	})

	v1.Get("/regions/:region/snowiest", func(c *fiber.Ctx) error {
		best, ok, err := service.Snowiest(c.Params("region"))
		if err != nil {
			return toHTTPError(err)
		}
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "region has no locations")
		}
		return c.JSON(best)
	})

	v1.Get("/regions/:region/locations/:location", func(c *fiber.Ctx) error {
		h, err := service.History(c.Params("region"), c.Params("location"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(newLocationView(h))
	})

	v1.Get("/regions/:region/locations/:location/observations", func(c *fiber.Ctx) error {
		raw := c.Query("date")
		if raw == "" {
			return fiber.NewError(fiber.StatusBadRequest, "date query parameter is required")
		}
		d, err := weather.ParseDate(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date; use YYYY-MM-DD")
		}

		obs, ok, err := service.Observation(c.Params("region"), c.Params("location"), d)
		if err != nil {
			return toHTTPError(err)
		}
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no observation recorded on "+d.String())
		}
		return c.JSON(newObservationView(d, obs))
	})

	v1.Get("/regions/:region/locations/:location/record-high", func(c *fiber.Ctx) error {
		var q dayQuery
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		h, err := service.History(c.Params("region"), c.Params("location"))
		if err != nil {
			return toHTTPError(err)
		}
		high, err := h.RecordHigh(q.month(), q.Day)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{
			"location":   h.Name,
			"month":      q.Month,
			"day":        q.Day,
			"recordHigh": high,
		})
	})
}

// toHTTPError maps domain errors onto fiber errors for the central handler.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, weather.ErrLocationNotFound),
		errors.Is(err, weather.ErrNoMatchingDay):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, weather.ErrDivisionByZero),
		errors.Is(err, weather.ErrNoObservations):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to query weather data")
	}
}
