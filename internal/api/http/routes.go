package httpapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/units"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")
	state := service.State()

	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		snap := state.Snapshot()
		resp := dashboardResponse{Snapshot: snap}
		if snap.Current != nil {
			resp.TemperatureDisplay = units.FormatTemp(&snap.Current.TemperatureC, snap.Unit)
		}
		return c.JSON(resp)
	})

	v1.Get("/notifications", func(c *fiber.Ctx) error {
		return c.JSON(state.Notifications())
	})

	registerWeatherRoutes(v1, service)
	registerListRoutes(v1, service)
	registerPreferenceRoutes(v1, service)
}

type dashboardResponse struct {
	weather.Snapshot
	TemperatureDisplay string `json:"temperatureDisplay,omitempty"`
}

func registerWeatherRoutes(v1 fiber.Router, service *weather.Service) {
	state := service.State()

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		cur, ok := state.Current()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no weather displayed yet")
		}
		return c.JSON(cur)
	})

	v1.Post("/weather/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		res, err := service.SearchByText(c.UserContext(), req.Query)
		if err != nil {
			return err
		}
		return c.JSON(res)
	})

	v1.Post("/weather/coordinates", func(c *fiber.Ctx) error {
		var req coordinatesRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		var hint *weather.PlaceLabel
		if strings.TrimSpace(req.Name) != "" {
			hint = &weather.PlaceLabel{Name: req.Name, CountryCode: req.Country}
		}
		rec, err := service.FetchByCoordinates(c.UserContext(), geo.Coordinate{Latitude: *req.Lat, Longitude: *req.Lon}, hint)
		if err != nil {
			return err
		}
		return c.JSON(rec)
	})

	v1.Post("/weather/locate", func(c *fiber.Ctx) error {
		var req locateRequest
		if len(c.Body()) > 0 {
			if err := bindJSON(c, &req); err != nil {
				return err
			}
		}

		if (req.Lat == nil) != (req.Lon == nil) {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lon must be sent together")
		}

		var loc weather.Locator
		if req.Lat != nil && req.Lon != nil {
			loc = weather.StaticLocator{Fix: weather.Position{
				Coordinate:     geo.Coordinate{Latitude: *req.Lat, Longitude: *req.Lon},
				AccuracyMeters: req.Accuracy,
			}}
		}
		res, err := service.LocateAndFetch(c.UserContext(), loc)
		if err != nil {
			return err
		}
		return c.JSON(res)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		q := forecastQuery{View: c.Query("view")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snap := state.Snapshot()
		switch q.View {
		case "hourly":
			return c.JSON(snap.Hourly)
		case "daily":
			return c.JSON(snap.Daily)
		}
		return c.JSON(fiber.Map{"hourly": snap.Hourly, "daily": snap.Daily})
	})

	v1.Get("/suggestions", func(c *fiber.Ctx) error {
		return c.JSON(service.Suggest(c.UserContext(), c.Query("q")))
	})

	v1.Post("/suggestions/pick", func(c *fiber.Ctx) error {
		var req candidateRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		rec, err := service.PickSuggestion(c.UserContext(), req.toCandidate())
		if err != nil {
			return err
		}
		return c.JSON(rec)
	})
}

func registerListRoutes(v1 fiber.Router, service *weather.Service) {
	state := service.State()

	v1.Get("/history", func(c *fiber.Ctx) error {
		return c.JSON(state.History())
	})

	v1.Delete("/history", func(c *fiber.Ctx) error {
		service.ClearHistory()
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/history/select", func(c *fiber.Ctx) error {
		var req historySelectRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		res, err := service.SelectHistory(c.UserContext(), req.City)
		if err != nil {
			return err
		}
		return c.JSON(res)
	})

	v1.Get("/saved", func(c *fiber.Ctx) error {
		return c.JSON(state.Saved())
	})

	v1.Post("/saved", func(c *fiber.Ctx) error {
		rec, err := service.SaveCurrent()
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	})

	v1.Delete("/saved", func(c *fiber.Ctx) error {
		q := removeSavedQuery{City: c.Query("city"), Country: c.Query("country")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		removed := service.RemoveSaved(q.City, q.Country)
		return c.JSON(fiber.Map{"removed": removed})
	})

	v1.Post("/saved/select", func(c *fiber.Ctx) error {
		var req savedSelectRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		rec, err := service.SelectSaved(c.UserContext(), weather.WeatherRecord{
			City:      req.City,
			Country:   req.Country,
			Latitude:  *req.Lat,
			Longitude: *req.Lon,
		})
		if err != nil {
			return err
		}
		return c.JSON(rec)
	})
}

func registerPreferenceRoutes(v1 fiber.Router, service *weather.Service) {
	state := service.State()

	v1.Get("/preferences", func(c *fiber.Ctx) error {
		return c.JSON(preferences{Theme: string(state.Theme()), Unit: string(state.Unit())})
	})

	v1.Put("/preferences", func(c *fiber.Ctx) error {
		var req preferences
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		if req.Theme != "" {
			if err := service.SetTheme(weather.Theme(req.Theme)); err != nil {
				return err
			}
		}
		if req.Unit != "" {
			if err := service.SetUnit(units.Unit(req.Unit)); err != nil {
				return err
			}
		}
		return c.JSON(preferences{Theme: string(state.Theme()), Unit: string(state.Unit())})
	})
}

// ErrorHandler renders every handler error as {"error":true,"message":...}
// with a status derived from the error kind.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

func statusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &ve),
		errors.Is(err, weather.ErrEmptyQuery),
		errors.Is(err, weather.ErrInvalidPreference):
		return fiber.StatusBadRequest
	case errors.Is(err, weather.ErrNotFound), errors.Is(err, weather.ErrNoCurrent):
		return fiber.StatusNotFound
	case errors.Is(err, weather.ErrOffline), errors.Is(err, weather.ErrMissingCredential):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, weather.ErrNoData):
		return fiber.StatusBadGateway
	case errors.Is(err, weather.ErrSensorUnavailable), errors.Is(err, weather.ErrSensorFailed):
		return fiber.StatusFailedDependency
	}
	return fiber.StatusInternalServerError
}
