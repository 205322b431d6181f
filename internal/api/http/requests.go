package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// bindJSON parses the request body into req and validates it.
func bindJSON(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// searchRequest has no required tag; the service reports a blank query as
// weather.ErrEmptyQuery.
type searchRequest struct {
	Query string `json:"query"`
}

type coordinatesRequest struct {
	Lat     *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon     *float64 `json:"lon" validate:"required,min=-180,max=180"`
	Name    string   `json:"name"`
	Country string   `json:"country"`
}

// locateRequest carries an optional client-side fix. Without lat/lon the
// server-side locator is used.
type locateRequest struct {
	Lat      *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon      *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
	Accuracy *float64 `json:"accuracy" validate:"omitempty,min=0"`
}

type forecastQuery struct {
	View string `validate:"omitempty,oneof=hourly daily"`
}

type candidateRequest struct {
	Name    string   `json:"name" validate:"required"`
	State   string   `json:"state"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon     *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

func (r candidateRequest) toCandidate() weather.Candidate {
	return weather.Candidate{
		Name:       r.Name,
		State:      r.State,
		Country:    r.Country,
		Coordinate: geo.Coordinate{Latitude: *r.Lat, Longitude: *r.Lon},
	}
}

type historySelectRequest struct {
	City string `json:"city" validate:"required"`
}

type removeSavedQuery struct {
	City    string `validate:"required"`
	Country string
}

type savedSelectRequest struct {
	City    string   `json:"city" validate:"required"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon     *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

type preferences struct {
	Theme string `json:"theme" validate:"omitempty,oneof=light dark"`
	Unit  string `json:"unit" validate:"omitempty,oneof=celsius fahrenheit"`
}
