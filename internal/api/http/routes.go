package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/location-report/internal/location"
)

var validate = validator.New()

// Reader is the read side the HTTP layer serves from.
type Reader interface {
	Find(name string) (*location.Report, error)
	GetWeather(key location.Key) (location.Weather, error)
	GetNews(key location.Key) ([]location.NewsItem, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, reader Reader) {
	v1 := app.Group("/api/v1")

	v1.Get("/report", func(c *fiber.Ctx) error {
		q := reportQuery{Name: c.Query("name")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := reader.Find(q.Name)
		if err != nil {
			if errors.Is(err, location.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no report for requested place")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build report")
		}
		return c.JSON(report)
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		w, err := reader.GetWeather(locReq.toKey())
		if err != nil {
			if errors.Is(err, location.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather data")
		}
		return c.JSON(w)
	})

	v1.Get("/news", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		items, err := reader.GetNews(locReq.toKey())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read news")
		}
		if items == nil {
			items = []location.NewsItem{}
		}
		return c.JSON(fiber.Map{
			"location": locReq.toKey(),
			"news":     items,
		})
	})
}

type reportQuery struct {
	Name string `validate:"required"`
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	Capital string `validate:"required"`
	Country string `validate:"required,len=2"`
}

func (l locationQuery) toKey() location.Key {
	return location.Key{
		Capital:     l.Capital,
		CountryCode: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.Capital = c.Query("capital")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
