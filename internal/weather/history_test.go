package weather_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-history/internal/weather"
)

var toronto = weather.Coordinates{Latitude: 43.6529, Longitude: -79.3849}

func obs(avg, low, high float64, total, rain, snow weather.Amount) weather.Observation {
	return weather.NewObservation(
		weather.Temperatures{Avg: avg, Low: low, High: high},
		weather.Precipitation{Total: total, Rain: rain, Snow: snow},
	)
}

func wetDay(total float64) weather.Observation {
	m := weather.Measured
	return obs(0, 0, 0, m(total), m(0), m(0))
}

func TestHistory_AddAndLookup(t *testing.T) {
	h := weather.NewHistory("Toronto", toronto)
	day := weather.NewDate(2024, time.July, 13)
	first := obs(13, 9, 20, weather.Measured(5), weather.Measured(0), weather.Measured(0))
	second := obs(14, 10, 21, weather.Measured(5), weather.Measured(0), weather.Measured(2))

	assert.True(t, h.Add(day, first))
	got, ok := h.Observation(day)
	require.True(t, ok)
	assert.Equal(t, first, got)

	assert.False(t, h.Add(day, second), "second insert for the same date must be ignored")
	got, ok = h.Observation(day)
	require.True(t, ok)
	assert.Equal(t, first, got)
	assert.Equal(t, 1, h.Len())

	_, ok = h.Observation(day.AddDays(1))
	assert.False(t, ok)
}

func TestHistory_RecordHigh(t *testing.T) {
	h := weather.NewHistory("Toronto", toronto)
	m := weather.Measured
	h.Add(weather.NewDate(2024, time.June, 8), obs(13, 10, 40, m(0), m(0), m(0)))
	h.Add(weather.NewDate(2023, time.June, 8), obs(13, 10, 30, m(0), m(0), m(0)))
	h.Add(weather.NewDate(2023, time.June, 9), obs(13, 10, 45, m(0), m(0), m(0)))

	high, err := h.RecordHigh(time.June, 8)
	require.NoError(t, err)
	assert.Equal(t, 40.0, high)
}

func TestHistory_RecordHighNegative(t *testing.T) {
	h := weather.NewHistory("Iqaluit", weather.Coordinates{Latitude: 63.75, Longitude: -68.55})
	m := weather.Measured
	h.Add(weather.NewDate(2022, time.December, 25), obs(-25, -30, -21.5, m(0), m(0), m(0)))
	h.Add(weather.NewDate(2023, time.December, 25), obs(-28, -33, -24, m(0), m(0), m(0)))

	high, err := h.RecordHigh(time.December, 25)
	require.NoError(t, err)
	assert.Equal(t, -21.5, high, "a sub-zero record must not be masked by a zero default")
}

func TestHistory_RecordHighNoMatch(t *testing.T) {
	h := weather.NewHistory("Toronto", toronto)
	h.Add(weather.NewDate(2024, time.June, 8), wetDay(1))

	_, err := h.RecordHigh(time.December, 25)
	assert.ErrorIs(t, err, weather.ErrNoMatchingDay)
}

func TestHistory_MonthlyAverage(t *testing.T) {
	h := weather.NewHistory("Toronto", toronto)
	m := weather.Measured
	h.Add(weather.NewDate(2023, time.January, 1), obs(13, 11, 30, m(0), m(0), m(0)))
	h.Add(weather.NewDate(2023, time.January, 2), obs(13, 10, 30, m(0), m(0), m(0)))
	h.Add(weather.NewDate(2024, time.January, 18), obs(13, 0, 30, m(0), m(0), m(0)))
	h.Add(weather.NewDate(2023, time.February, 1), obs(13, 11, 30, m(0), m(0), m(0)))

	avg := h.MonthlyAverage()

	assert.Len(t, avg, 12)
	for _, label := range weather.MonthLabels {
		assert.Contains(t, avg, label)
	}
	require.NotNil(t, avg["Jan"])
	assert.Equal(t, 7.0, *avg["Jan"])
	require.NotNil(t, avg["Feb"])
	assert.Equal(t, 11.0, *avg["Feb"])
	assert.Nil(t, avg["Mar"])

	jan, ok := avg.Get(time.January)
	assert.True(t, ok)
	assert.Equal(t, 7.0, jan)
	_, ok = avg.Get(time.December)
	assert.False(t, ok)
}

func TestHistory_MonthlyAverageEmpty(t *testing.T) {
	avg := weather.NewHistory("Nowhere", weather.Coordinates{}).MonthlyAverage()

	assert.Len(t, avg, 12)
	for label, v := range avg {
		assert.Nil(t, v, label)
	}
}

func TestHistory_LongestPrecipitationStreak(t *testing.T) {
	start := weather.NewDate(2024, time.May, 1)
	m := weather.Measured

	tests := []struct {
		name      string
		days      map[weather.Date]weather.Observation
		wantStart weather.Date
		wantLen   int
	}{
		{
			name: "four consecutive days",
			days: map[weather.Date]weather.Observation{
				start:            wetDay(1),
				start.AddDays(1): wetDay(2),
				start.AddDays(2): wetDay(1),
				start.AddDays(3): wetDay(1),
			},
			wantStart: start,
			wantLen:   4,
		},
		{
			name: "no two consecutive",
			days: map[weather.Date]weather.Observation{
				weather.NewDate(2024, time.April, 3): wetDay(1),
				weather.NewDate(2024, time.April, 5): wetDay(2),
				weather.NewDate(2024, time.April, 7): wetDay(1),
			},
			wantStart: weather.NewDate(2024, time.April, 3),
			wantLen:   1,
		},
		{
			name: "dry day breaks the run",
			days: map[weather.Date]weather.Observation{
				start:            wetDay(1),
				start.AddDays(1): wetDay(0),
				start.AddDays(2): wetDay(3),
				start.AddDays(3): wetDay(3),
				start.AddDays(4): wetDay(3),
			},
			wantStart: start.AddDays(2),
			wantLen:   3,
		},
		{
			name: "trace counts as precipitation",
			days: map[weather.Date]weather.Observation{
				start:            obs(0, 0, 0, weather.Trace(), m(0), weather.Trace()),
				start.AddDays(1): wetDay(2),
			},
			wantStart: start,
			wantLen:   2,
		},
		{
			name: "run spans a year boundary",
			days: map[weather.Date]weather.Observation{
				weather.NewDate(2023, time.December, 30): wetDay(1),
				weather.NewDate(2023, time.December, 31): wetDay(1),
				weather.NewDate(2024, time.January, 1):   wetDay(1),
				weather.NewDate(2024, time.January, 5):   wetDay(1),
			},
			wantStart: weather.NewDate(2023, time.December, 30),
			wantLen:   3,
		},
		{
			name: "tie resolves to earliest run",
			days: map[weather.Date]weather.Observation{
				start:            wetDay(1),
				start.AddDays(1): wetDay(1),
				start.AddDays(5): wetDay(1),
				start.AddDays(6): wetDay(1),
			},
			wantStart: start,
			wantLen:   2,
		},
		{
			name: "no precipitation at all",
			days: map[weather.Date]weather.Observation{
				start.AddDays(3): wetDay(0),
				start:            wetDay(0),
				start.AddDays(1): wetDay(0),
			},
			wantStart: start,
			wantLen:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := weather.NewHistory("Montreal", weather.Coordinates{Latitude: 45.47, Longitude: -73.74})
			for d, o := range tt.days {
				h.Add(d, o)
			}

			got, err := h.LongestPrecipitationStreak()
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, got.Length)
			assert.Equal(t, tt.wantStart, got.Start)
		})
	}
}

func TestHistory_LongestPrecipitationStreakEmpty(t *testing.T) {
	_, err := weather.NewHistory("Nowhere", weather.Coordinates{}).LongestPrecipitationStreak()
	assert.ErrorIs(t, err, weather.ErrNoObservations)
}

func TestHistory_PercentageSnowfall(t *testing.T) {
	m := weather.Measured
	day := weather.NewDate(2024, time.May, 1)

	h := weather.NewHistory("Toronto", toronto)
	h.Add(day, obs(0, 0, 0, m(1), m(0), m(1)))
	h.Add(day.AddDays(1), obs(0, 0, 0, m(3), m(3), m(0)))

	pct, err := h.PercentageSnowfall()
	require.NoError(t, err)
	assert.Equal(t, 0.25, pct)
}

func TestHistory_PercentageSnowfallIgnoresTrace(t *testing.T) {
	m := weather.Measured
	day := weather.NewDate(2024, time.January, 1)

	h := weather.NewHistory("Toronto", toronto)
	h.Add(day, obs(0, 0, 0, m(2), m(1), m(1)))
	h.Add(day.AddDays(1), obs(0, 0, 0, weather.Trace(), weather.Trace(), weather.Trace()))

	pct, err := h.PercentageSnowfall()
	require.NoError(t, err)
	assert.Equal(t, 0.5, pct)
}

func TestHistory_PercentageSnowfallDivisionByZero(t *testing.T) {
	m := weather.Measured
	tests := []struct {
		name string
		days []weather.Observation
	}{
		{name: "empty history"},
		{name: "dry days", days: []weather.Observation{obs(0, 0, 0, m(0), m(0), m(0))}},
		{name: "only trace", days: []weather.Observation{obs(0, 0, 0, weather.Trace(), weather.Trace(), weather.Trace())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := weather.NewHistory("Dry", weather.Coordinates{})
			for i, o := range tt.days {
				h.Add(weather.NewDate(2024, time.May, 1).AddDays(i), o)
			}

			_, err := h.PercentageSnowfall()
			assert.ErrorIs(t, err, weather.ErrDivisionByZero)
		})
	}
}

func TestHistory_DatesSorted(t *testing.T) {
	h := weather.NewHistory("Toronto", toronto)
	d := weather.NewDate(2024, time.July, 13)
	h.Add(d.AddDays(2), wetDay(0))
	h.Add(d, wetDay(0))
	h.Add(d.AddDays(-400), wetDay(0))

	assert.Equal(t, []weather.Date{d.AddDays(-400), d, d.AddDays(2)}, h.Dates())
}

func TestHistory_String(t *testing.T) {
	m := weather.Measured
	h := weather.NewHistory("Toronto", weather.Coordinates{Latitude: 43.6, Longitude: -79.63})
	h.Add(weather.NewDate(2024, time.July, 13), obs(13, 9, 20, m(5), m(0), m(0)))

	want := "Toronto (43.60, -79.63):\n" +
		"2024-07-13: Average: 13.00 Low: 9.00 High: 20.00 Precipitation: 5.00 Snow: 0.00 Rain: 0.00"
	assert.Equal(t, want, h.String())
}
