package httpapi

import (
	"time"

	"github.com/i474232898/weather-history/internal/weather"
)

// dayQuery holds the month and day of the record-high endpoint.
type dayQuery struct {
	Month int `query:"month" validate:"required,min=1,max=12"`
	Day   int `query:"day" validate:"required,min=1,max=31"`
}

func (q dayQuery) month() time.Month {
	return time.Month(q.Month)
}

type locationView struct {
	Name               string                  `json:"name"`
	Coordinates        weather.Coordinates     `json:"coordinates"`
	Days               int                     `json:"days"`
	MonthlyAverage     weather.MonthlyAverages `json:"monthlyAverage"`
	Streak             *weather.Streak         `json:"precipitationStreak"`
	SnowfallPercentage *float64                `json:"snowfallPercentage"`
}

func newLocationView(h *weather.History) locationView {
	v := locationView{
		Name:           h.Name,
		Coordinates:    h.Coordinates,
		Days:           h.Len(),
		MonthlyAverage: h.MonthlyAverage(),
	}
	if streak, err := h.LongestPrecipitationStreak(); err == nil {
		v.Streak = &streak
	}
	if pct, err := h.PercentageSnowfall(); err == nil {
		v.SnowfallPercentage = &pct
	}
	return v
}

type observationView struct {
	Date          weather.Date   `json:"date"`
	AvgTemp       float64        `json:"avgTemp"`
	LowTemp       float64        `json:"lowTemp"`
	HighTemp      float64        `json:"highTemp"`
	Precipitation weather.Amount `json:"precipitation"`
	Rainfall      weather.Amount `json:"rainfall"`
	Snowfall      weather.Amount `json:"snowfall"`
}

func newObservationView(d weather.Date, o weather.Observation) observationView {
	return observationView{
		Date:          d,
		AvgTemp:       o.AvgTemp(),
		LowTemp:       o.LowTemp(),
		HighTemp:      o.HighTemp(),
		Precipitation: o.Precipitation(),
		Rainfall:      o.Rainfall(),
		Snowfall:      o.Snowfall(),
	}
}
