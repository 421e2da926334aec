package weather

import "time"

// Report day used for the record-high column.
const (
	summaryMonth = time.December
	summaryDay   = 25
)

// Summary is the set of derived statistics reported for one location.
// A nil field means the location's data cannot provide that value.
type Summary struct {
	Location           string   `json:"location"`
	RecordHigh         *float64 `json:"recordHighDec25"`
	DecemberAverage    *float64 `json:"decemberAverage"`
	StreakLength       int      `json:"precipitationStreak"`
	SnowfallPercentage *float64 `json:"snowfallPercentage"`
}

// Summarize derives the reported statistics for h: record high on Dec 25,
// the December average low, the longest precipitation streak length and the
// snowfall percentage.
func Summarize(h *History) Summary {
	s := Summary{Location: h.Name}

	if high, err := h.RecordHigh(summaryMonth, summaryDay); err == nil {
		s.RecordHigh = &high
	}

	if avg, ok := h.MonthlyAverage().Get(summaryMonth); ok {
		s.DecemberAverage = &avg
	}

	if streak, err := h.LongestPrecipitationStreak(); err == nil {
		s.StreakLength = streak.Length
	}

	if pct, err := h.PercentageSnowfall(); err == nil {
		s.SnowfallPercentage = &pct
	}

	return s
}
