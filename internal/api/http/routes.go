package httpapi

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/swellwatch/buoy-tracker/internal/buoy"
)

var validate = validator.New()

const (
	defaultTrendHours   = 72
	defaultHistoryHours = 24
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc *buoy.Service, locator *buoy.Locator) {
	v1 := app.Group("/api/v1")

	v1.Get("/stations", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"stations": svc.Stations(),
		})
	})

	v1.Get("/stations/nearest", func(c *fiber.Ctx) error {
		var q nearestQuery
		q.City = c.Query("city")
		q.Country = c.Query("country")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		st, km, err := locator.NearestStation(q.City, q.Country)
		if err != nil {
			if errors.Is(err, buoy.ErrGeocoderDisabled) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "nearest-station lookup requires a geocoder api key")
			}
			return fiber.NewError(fiber.StatusBadGateway, "geocoding failed")
		}

		return c.JSON(fiber.Map{
			"station":    st,
			"distanceKm": km,
		})
	})

	v1.Get("/buoys/current", func(c *fiber.Ctx) error {
		return c.JSON(svc.AllCurrentConditions())
	})

	v1.Get("/buoys/:station", func(c *fiber.Ctx) error {
		hours, err := queryInt(c, "hours", defaultHistoryHours)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		st, readings, err := svc.StationReadings(c.Params("station"), hours)
		if err != nil {
			return respondServiceError(c, svc, err, "failed to fetch station readings")
		}

		_, current, err := svc.CurrentConditions(st.ID)
		if err != nil {
			return respondServiceError(c, svc, err, "failed to fetch current conditions")
		}

		return c.JSON(fiber.Map{
			"station":  st,
			"current":  current,
			"readings": readings,
		})
	})

	v1.Get("/buoys/:station/trend", func(c *fiber.Ctx) error {
		var q trendQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := svc.TrendReport(c.Params("station"), buoy.Metric(q.Metric), buoy.Interval(q.Interval), q.Hours)
		if err != nil {
			return respondServiceError(c, svc, err, "failed to build trend report")
		}

		return c.JSON(report)
	})
}

// respondServiceError maps domain errors onto HTTP statuses. Unknown
// stations include the registry contents so the caller can correct the
// request.
func respondServiceError(c *fiber.Ctx, svc *buoy.Service, err error, fallback string) error {
	switch {
	case errors.Is(err, buoy.ErrUnknownStation):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":             true,
			"message":           err.Error(),
			"availableStations": svc.StationIDs(),
		})
	case errors.Is(err, buoy.ErrInvalidWindow):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, fallback)
	}
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", key)
	}
	return n, nil
}

// trendQuery holds query parameters for the trend endpoint. Absent
// interval and hours fall back to an hourly series over the last 72 hours;
// explicit invalid values are rejected, not defaulted.
type trendQuery struct {
	Metric   string `validate:"required,oneof=wave_height wave_period water_temp wind_speed wind_direction"`
	Interval string `validate:"required,oneof=HOURLY DAILY"`
	Hours    int    `validate:"gt=0"`
}

func (q *trendQuery) bind(c *fiber.Ctx) error {
	q.Metric = c.Query("metric")
	q.Interval = c.Query("interval", string(buoy.IntervalHourly))

	hours, err := queryInt(c, "hours", defaultTrendHours)
	if err != nil {
		return err
	}
	q.Hours = hours
	return nil
}

// nearestQuery holds query parameters for the nearest-station endpoint.
type nearestQuery struct {
	City    string `validate:"required"`
	Country string `validate:"required"`
}
