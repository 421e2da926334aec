package weather

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// MonthLabels are the keys of MonthlyAverages, in calendar order.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthlyAverages maps a month label to the mean low temperature of that
// month. A nil value means the month has no recorded days.
type MonthlyAverages map[string]*float64

// Get returns the average for month, if any.
func (m MonthlyAverages) Get(month time.Month) (float64, bool) {
	if month < time.January || month > time.December {
		return 0, false
	}
	v := m[MonthLabels[month-1]]
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Streak is a run of consecutive days.
type Streak struct {
	Start  Date `json:"start"`
	Length int  `json:"length"`
}

// History is the daily weather record of one place. Dates may have gaps.
// A History is not safe for concurrent writers.
type History struct {
	Name        string
	Coordinates Coordinates

	records map[Date]Observation
}

// NewHistory returns an empty history for the named place.
func NewHistory(name string, coords Coordinates) *History {
	return &History{
		Name:        name,
		Coordinates: coords,
		records:     make(map[Date]Observation),
	}
}

// Add records o as the weather on d. If d already has a record, Add leaves it
// untouched and returns false.
func (h *History) Add(d Date, o Observation) bool {
	if _, ok := h.records[d]; ok {
		return false
	}
	h.records[d] = o
	return true
}

// Observation returns the weather recorded on d.
func (h *History) Observation(d Date) (Observation, bool) {
	o, ok := h.records[d]
	return o, ok
}

// Len returns the number of recorded days.
func (h *History) Len() int {
	return len(h.records)
}

// Dates returns the recorded days in ascending order.
func (h *History) Dates() []Date {
	dates := make([]Date, 0, len(h.records))
	for d := range h.records {
		dates = append(dates, d)
	}
	sortDates(dates)
	return dates
}

// RecordHigh returns the highest temperature recorded on the given month and
// day in any year.
func (h *History) RecordHigh(month time.Month, day int) (float64, error) {
	var (
		high  float64
		found bool
	)
	for d, o := range h.records {
		if d.Month != month || d.Day != day {
			continue
		}
		if !found || o.HighTemp() > high {
			high = o.HighTemp()
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("%s on %s %d: %w", h.Name, month, day, ErrNoMatchingDay)
	}
	return high, nil
}

// MonthlyAverage returns, for each of the 12 months, the mean low temperature
// over every recorded day of that month in any year.
func (h *History) MonthlyAverage() MonthlyAverages {
	var (
		sums   [12]float64
		counts [12]int
	)
	for d, o := range h.records {
		sums[d.Month-1] += o.LowTemp()
		counts[d.Month-1]++
	}

	out := make(MonthlyAverages, len(MonthLabels))
	for i, label := range MonthLabels {
		if counts[i] == 0 {
			out[label] = nil
			continue
		}
		avg := sums[i] / float64(counts[i])
		out[label] = &avg
	}
	return out
}

// LongestPrecipitationStreak returns the longest run of consecutive days with
// non-zero precipitation. Trace amounts count as precipitation. Ties resolve
// to the earliest run. When no day had precipitation the earliest recorded
// day is returned with length 1.
func (h *History) LongestPrecipitationStreak() (Streak, error) {
	if len(h.records) == 0 {
		return Streak{}, fmt.Errorf("%s: %w", h.Name, ErrNoObservations)
	}

	wet := make([]Date, 0, len(h.records))
	for d, o := range h.records {
		if o.Precipitation().IsNonZero() {
			wet = append(wet, d)
		}
	}
	if len(wet) == 0 {
		return Streak{Start: h.Dates()[0], Length: 1}, nil
	}
	sortDates(wet)

	best := Streak{Start: wet[0], Length: 1}
	cur := best
	for i := 1; i < len(wet); i++ {
		if wet[i] == wet[i-1].AddDays(1) {
			cur.Length++
		} else {
			cur = Streak{Start: wet[i], Length: 1}
		}
		if cur.Length > best.Length {
			best = cur
		}
	}
	return best, nil
}

// PercentageSnowfall returns total snowfall / (total snowfall + total rainfall)
// across all recorded days. Trace amounts are left out of both totals.
func (h *History) PercentageSnowfall() (float64, error) {
	var rain, snow float64
	for _, o := range h.records {
		if v, ok := o.Rainfall().Value(); ok {
			rain += v
		}
		if v, ok := o.Snowfall().Value(); ok {
			snow += v
		}
	}
	if snow+rain == 0 {
		return 0, fmt.Errorf("%s: snowfall ratio: %w", h.Name, ErrDivisionByZero)
	}
	return snow / (snow + rain), nil
}

func (h *History) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s:", h.Name, h.Coordinates)
	for _, d := range h.Dates() {
		fmt.Fprintf(&b, "\n%s: %s", d, h.records[d])
	}
	return b.String()
}

func sortDates(dates []Date) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}
