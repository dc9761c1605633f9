package httpapi

import (
	"bytes"
	"errors"
	"image/png"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
	"github.com/ctaque/weather-app-challenge-sub002/internal/heatmap"
	"github.com/ctaque/weather-app-challenge-sub002/internal/overlay"
	"github.com/ctaque/weather-app-challenge-sub002/internal/store"
)

var validate = validator.New()

const cacheHeader = "public, max-age=300"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *overlay.Service) {
	v1 := app.Group("/api/v1")
	st := service.Store()

	v1.Get("/precipitation", func(c *fiber.Ctx) error {
		snap, err := st.LatestPrecipitation()
		if err != nil {
			return notYetAvailable(err, "precipitation data")
		}
		return c.JSON(snap)
	})

	v1.Get("/precipitation/indices", func(c *fiber.Ctx) error {
		return c.JSON(st.PrecipitationIndices())
	})

	v1.Get("/precipitation/:index", func(c *fiber.Ctx) error {
		index, err := c.ParamsInt("index")
		if err != nil || index < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "index must be a non-negative integer")
		}
		snap, err := st.PrecipitationByIndex(index)
		if err != nil {
			return notFound(err, "precipitation data")
		}
		return c.JSON(snap)
	})

	v1.Get("/wind", func(c *fiber.Ctx) error {
		snap, err := st.LatestWind()
		if err != nil {
			return notYetAvailable(err, "wind data")
		}
		return c.JSON(snap)
	})

	v1.Get("/wind/indices", func(c *fiber.Ctx) error {
		return c.JSON(st.WindIndices())
	})

	v1.Get("/wind/:index", func(c *fiber.Ctx) error {
		index, err := c.ParamsInt("index")
		if err != nil || index < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "index must be a non-negative integer")
		}
		snap, err := st.WindByIndex(index)
		if err != nil {
			return notFound(err, "wind data")
		}
		return c.JSON(snap)
	})

	v1.Get("/windgl/metadata.json", func(c *fiber.Ctx) error {
		snap, err := st.LatestWind()
		if err != nil {
			return notYetAvailable(err, "wind metadata")
		}
		c.Set(fiber.HeaderCacheControl, cacheHeader)
		return c.JSON(snap.Metadata)
	})

	v1.Get("/windgl/metadata.json/:index", func(c *fiber.Ctx) error {
		index, err := c.ParamsInt("index")
		if err != nil || index < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "index must be a non-negative integer")
		}
		snap, err := st.WindByIndex(index)
		if err != nil {
			return notFound(err, "wind metadata")
		}
		c.Set(fiber.HeaderCacheControl, cacheHeader)
		return c.JSON(snap.Metadata)
	})

	v1.Get("/windgl/wind.png", func(c *fiber.Ctx) error {
		snap, err := st.LatestWind()
		if err != nil {
			return notYetAvailable(err, "wind texture")
		}
		return sendWindPNG(c, snap)
	})

	v1.Get("/windgl/wind.png/:index", func(c *fiber.Ctx) error {
		index, err := c.ParamsInt("index")
		if err != nil || index < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "index must be a non-negative integer")
		}
		snap, err := st.WindByIndex(index)
		if err != nil {
			return notFound(err, "wind texture")
		}
		return sendWindPNG(c, snap)
	})

	v1.Get("/heatmap.png", func(c *fiber.Ctx) error {
		return handleHeatmap(c, service)
	})
}

func notYetAvailable(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusServiceUnavailable, what+" not yet available. Please try again in a few minutes.")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch "+what)
}

func notFound(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, what+" not found at requested index")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch "+what)
}

func sendWindPNG(c *fiber.Ctx, snap store.WindSnapshot) error {
	if snap.Texture == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "wind snapshot has no texture")
	}
	buf, err := snap.Texture.PNG()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to encode wind texture")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, cacheHeader)
	return c.Send(buf)
}

// heatmapQuery holds the viewport and rendering parameters for the heatmap
// endpoint. Bounds default to the snapshot's own region.
type heatmapQuery struct {
	MinLat  float64 `validate:"gte=-85,lte=85"`
	MaxLat  float64 `validate:"gte=-85,lte=85,gtefield=MinLat"`
	MinLon  float64 `validate:"gte=-180,lte=180"`
	MaxLon  float64 `validate:"gte=-180,lte=180,gtefield=MinLon"`
	Width   int     `validate:"gte=16,lte=2048"`
	Height  int     `validate:"gte=16,lte=2048"`
	Opacity float64 `validate:"gte=0,lte=1"`
}

func handleHeatmap(c *fiber.Ctx, service *overlay.Service) error {
	snap, err := service.Store().LatestPrecipitation()
	if err != nil {
		return notYetAvailable(err, "precipitation data")
	}

	q := heatmapQuery{
		MinLat:  c.QueryFloat("minLat", snap.Bounds.MinLat),
		MaxLat:  c.QueryFloat("maxLat", snap.Bounds.MaxLat),
		MinLon:  c.QueryFloat("minLon", snap.Bounds.MinLon),
		MaxLon:  c.QueryFloat("maxLon", snap.Bounds.MaxLon),
		Width:   c.QueryInt("width", 512),
		Height:  c.QueryInt("height", 512),
		Opacity: c.QueryFloat("opacity", 0.85),
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	bounds := geo.Bounds{
		MinLat: q.MinLat,
		MaxLat: q.MaxLat,
		MinLon: q.MinLon,
		MaxLon: q.MaxLon,
	}

	// One painter per request: painters own their canvas and are not safe
	// for concurrent draws.
	painter := heatmap.NewPainter(q.Width, q.Height)
	painter.SetProjection(geo.NewMercator(bounds, q.Width, q.Height))
	painter.SetSamples(snap.Points)
	painter.UpdateBounds(bounds)
	painter.SetOpacity(q.Opacity)
	if snap.Resolution > 0 {
		painter.SetInfluenceRadius(snap.Resolution * 2)
	}
	painter.Draw()

	var buf bytes.Buffer
	if err := png.Encode(&buf, painter.Image()); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to encode heatmap")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}
