// Package report renders region summaries as a markdown file or a terminal table.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/i474232898/weather-history/internal/weather"
)

// Headers are the report column titles.
var Headers = []string{
	"Location",
	"record high <br/> for Dec 25",
	"december <br/> average",
	"contiguous <br/> precipitation",
	"percentage <br/> snowfall",
}

const absent = "-"

// WriteMarkdown writes summaries as a markdown table, one row per location in
// the given order.
func WriteMarkdown(w io.Writer, summaries []weather.Summary) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(strings.Join(Headers, " | ") + "\n")

	dashes := make([]string, len(Headers))
	for i, h := range Headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	bw.WriteString(strings.Join(dashes, ":|-") + ":\n")

	for _, s := range summaries {
		fmt.Fprintf(bw, "%-20s | %-10s | %s | %-24d | %-18s\n",
			s.Location,
			formatFloat(s.RecordHigh, 4),
			formatFloat(s.DecemberAverage, -1),
			s.StreakLength,
			formatFloat(s.SnowfallPercentage, 2),
		)
	}

	return bw.Flush()
}

// WriteFile writes the markdown report to path, replacing any existing file.
func WriteFile(path string, summaries []weather.Summary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteMarkdown(f, summaries)
}

var (
	colorBorder = lipgloss.Color("#4A90E2")
	colorHeader = lipgloss.Color("205")

	borderStyle = lipgloss.NewStyle().Foreground(colorBorder)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHeader).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table renders summaries for a terminal.
func Table(summaries []weather.Summary) string {
	headers := make([]string, len(Headers))
	for i, h := range Headers {
		headers[i] = strings.ReplaceAll(h, " <br/> ", " ")
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Location,
			formatFloat(s.RecordHigh, 4),
			formatFloat(s.DecemberAverage, 4),
			strconv.Itoa(s.StreakLength),
			formatFloat(s.SnowfallPercentage, 2),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.String()
}

// formatFloat renders v with at most digits significant digits, or absent
// when v is nil. digits < 0 uses the shortest exact representation.
func formatFloat(v *float64, digits int) string {
	if v == nil {
		return absent
	}
	return strconv.FormatFloat(*v, 'g', digits, 64)
}
