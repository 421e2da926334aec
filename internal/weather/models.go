package weather

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Amount is a precipitation-family reading: either a measured quantity or a
// trace (some precipitation fell but too little to measure).
type Amount struct {
	value float64
	trace bool
}

// Measured returns an Amount holding v. v is expected to be >= 0.
func Measured(v float64) Amount {
	return Amount{value: v}
}

// Trace returns a trace Amount.
func Trace() Amount {
	return Amount{trace: true}
}

// IsTrace reports whether a is a trace amount.
func (a Amount) IsTrace() bool {
	return a.trace
}

// Value returns the measured quantity. ok is false for trace amounts.
func (a Amount) Value() (v float64, ok bool) {
	if a.trace {
		return 0, false
	}
	return a.value, true
}

// IsNonZero reports whether any precipitation was recorded. Trace counts.
func (a Amount) IsNonZero() bool {
	return a.trace || a.value != 0
}

func (a Amount) String() string {
	if a.trace {
		return "T"
	}
	return strconv.FormatFloat(a.value, 'f', 2, 64)
}

// MarshalJSON encodes a measured amount as a number and a trace as "T".
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.trace {
		return []byte(`"T"`), nil
	}
	return json.Marshal(a.value)
}

// Temperatures groups one day's temperature statistics in degrees Celsius.
type Temperatures struct {
	Avg  float64
	Low  float64
	High float64
}

// Precipitation groups one day's precipitation statistics. Total and Rain are
// in mm, Snow in cm.
type Precipitation struct {
	Total Amount
	Rain  Amount
	Snow  Amount
}

// Observation is the weather recorded at one location on one day.
// Low <= Avg <= High is the caller's responsibility; nothing is validated here.
type Observation struct {
	temps  Temperatures
	precip Precipitation
}

// NewObservation builds an Observation from the given statistics.
func NewObservation(t Temperatures, p Precipitation) Observation {
	return Observation{temps: t, precip: p}
}

func (o Observation) AvgTemp() float64           { return o.temps.Avg }
func (o Observation) LowTemp() float64           { return o.temps.Low }
func (o Observation) HighTemp() float64          { return o.temps.High }
func (o Observation) Precipitation() Amount      { return o.precip.Total }
func (o Observation) Rainfall() Amount           { return o.precip.Rain }
func (o Observation) Snowfall() Amount           { return o.precip.Snow }
func (o Observation) Temperatures() Temperatures { return o.temps }

func (o Observation) String() string {
	return fmt.Sprintf("Average: %.2f Low: %.2f High: %.2f Precipitation: %s Snow: %s Rain: %s",
		o.temps.Avg, o.temps.Low, o.temps.High,
		o.precip.Total, o.precip.Snow, o.precip.Rain)
}

// Date is a calendar day with no time zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for year, month and day. Out-of-range values are
// normalized the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes d as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", c.Latitude, c.Longitude)
}
