package httpapi

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-history/internal/archive"
)

// RunReader reads archived report runs.
type RunReader interface {
	LatestRun(ctx context.Context, region string) (archive.Run, error)
}

// RegisterArchiveRoutes exposes archived report runs.
func RegisterArchiveRoutes(app *fiber.App, runs RunReader) {
	v1 := app.Group("/api/v1")

	v1.Get("/regions/:region/runs/latest", func(c *fiber.Ctx) error {
		run, err := runs.LatestRun(c.UserContext(), c.Params("region"))
		if err != nil {
			if errors.Is(err, archive.ErrNoRuns) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read archive")
		}
		return c.JSON(run)
	})
}
