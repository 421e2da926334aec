package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-history/internal/weather"
)

// Column positions in a daily station export.
const (
	colLongitude       = 0
	colLatitude        = 1
	colStation         = 2
	colYear            = 5
	colMonth           = 6
	colDay             = 7
	colMaxTemp         = 9
	colMinTemp         = 11
	colMeanTemp        = 13
	colTotalRain       = 19
	colTotalRainFlag   = 20
	colTotalSnow       = 21
	colTotalSnowFlag   = 22
	colTotalPrecip     = 23
	colTotalPrecipFlag = 24

	minColumns = colTotalPrecipFlag + 1
)

// traceFlag marks a precipitation value as a trace amount.
const traceFlag = "T"

var (
	// ErrNoData is returned for a source that holds nothing but its header.
	ErrNoData = errors.New("no data rows")

	// ErrNoStation is returned when no row names the station with valid coordinates.
	ErrNoStation = errors.New("no row identifies the station")

	// ErrMalformedRow marks a data row that cannot become an observation.
	ErrMalformedRow = errors.New("malformed row")
)

// row is one data line after field parsing. The validate tags are only
// checked in strict mode.
type row struct {
	Station   string `validate:"required"`
	Latitude  string `validate:"required,latitude"`
	Longitude string `validate:"required,longitude"`

	High float64
	Low  float64 `validate:"ltefield=High"`
	Mean float64 `validate:"gtefield=Low,ltefield=High"`

	// Raw measured totals. Trace totals are recorded as 0.
	Precip float64 `validate:"gte=0"`
	Rain   float64 `validate:"gte=0"`
	Snow   float64 `validate:"gte=0"`

	date   weather.Date
	precip weather.Precipitation
}

func (r row) observation() weather.Observation {
	return weather.NewObservation(
		weather.Temperatures{Avg: r.Mean, Low: r.Low, High: r.High},
		r.precip,
	)
}

// stationOf returns the station name and coordinates carried by rec.
func stationOf(rec []string) (string, weather.Coordinates, bool) {
	if len(rec) <= colStation {
		return "", weather.Coordinates{}, false
	}
	name := strings.TrimSpace(rec[colStation])
	if name == "" {
		return "", weather.Coordinates{}, false
	}
	lat, err := parseFloat(rec[colLatitude])
	if err != nil {
		return "", weather.Coordinates{}, false
	}
	lon, err := parseFloat(rec[colLongitude])
	if err != nil {
		return "", weather.Coordinates{}, false
	}
	return name, weather.Coordinates{Latitude: lat, Longitude: lon}, true
}

func parseRow(rec []string) (row, error) {
	if len(rec) < minColumns {
		return row{}, fmt.Errorf("%w: %d columns, want at least %d", ErrMalformedRow, len(rec), minColumns)
	}

	r := row{
		Station:   strings.TrimSpace(rec[colStation]),
		Latitude:  strings.TrimSpace(rec[colLatitude]),
		Longitude: strings.TrimSpace(rec[colLongitude]),
	}

	var err error
	if r.date, err = parseDate(rec[colYear], rec[colMonth], rec[colDay]); err != nil {
		return row{}, err
	}

	temps := []struct {
		name string
		col  int
		dst  *float64
	}{
		{"max temp", colMaxTemp, &r.High},
		{"min temp", colMinTemp, &r.Low},
		{"mean temp", colMeanTemp, &r.Mean},
	}
	for _, t := range temps {
		if *t.dst, err = parseFloat(rec[t.col]); err != nil {
			return row{}, fmt.Errorf("%w: %s: %v", ErrMalformedRow, t.name, err)
		}
	}

	amounts := []struct {
		name      string
		col, flag int
		raw       *float64
		dst       *weather.Amount
	}{
		{"total precip", colTotalPrecip, colTotalPrecipFlag, &r.Precip, &r.precip.Total},
		{"total rain", colTotalRain, colTotalRainFlag, &r.Rain, &r.precip.Rain},
		{"total snow", colTotalSnow, colTotalSnowFlag, &r.Snow, &r.precip.Snow},
	}
	for _, a := range amounts {
		if strings.TrimSpace(rec[a.flag]) == traceFlag {
			*a.dst = weather.Trace()
			continue
		}
		if *a.raw, err = parseFloat(rec[a.col]); err != nil {
			return row{}, fmt.Errorf("%w: %s: %v", ErrMalformedRow, a.name, err)
		}
		*a.dst = weather.Measured(*a.raw)
	}

	return r, nil
}

func parseDate(year, month, day string) (weather.Date, error) {
	var parts [3]int
	for i, s := range []string{year, month, day} {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return weather.Date{}, fmt.Errorf("%w: date: %v", ErrMalformedRow, err)
		}
		parts[i] = n
	}

	d := weather.NewDate(parts[0], time.Month(parts[1]), parts[2])
	if d.Year != parts[0] || int(d.Month) != parts[1] || d.Day != parts[2] {
		return weather.Date{}, fmt.Errorf("%w: date %s-%s-%s out of range", ErrMalformedRow, year, month, day)
	}
	return d, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
