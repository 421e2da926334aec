package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-history/internal/weather"
	"github.com/i474232898/weather-history/pkg/logger"
)

const defaultWorkers = 4

// Loader parses station exports into histories and directories of them into
// regions.
type Loader struct {
	workers  int
	strict   bool
	validate *validator.Validate
	log      *logger.Logger
}

// NewLoader creates a Loader that parses up to workers files at once. In
// strict mode every row is also checked for coordinate ranges, a station
// name, ordered temperatures and non-negative totals.
func NewLoader(workers int, strict bool, l *logger.Logger) *Loader {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Loader{
		workers:  workers,
		strict:   strict,
		validate: validator.New(),
		log:      l,
	}
}

// LoadHistory reads one station export. The first line is a header. Rows
// that cannot be parsed are skipped.
func (l *Loader) LoadHistory(r io.Reader) (*weather.History, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrNoData
	}
	records = records[1:]

	var h *weather.History
	for _, rec := range records {
		if name, coords, ok := stationOf(rec); ok {
			h = weather.NewHistory(name, coords)
			break
		}
	}
	if h == nil {
		return nil, ErrNoStation
	}

	var skipped, duplicates int
	for i, rec := range records {
		rw, err := l.row(rec)
		if err != nil {
			skipped++
			l.log.Debug("row skipped", map[string]any{
				"station": h.Name,
				"line":    i + 2,
				"reason":  err.Error(),
			})
			continue
		}
		if !h.Add(rw.date, rw.observation()) {
			duplicates++
		}
	}

	if skipped > 0 || duplicates > 0 {
		l.log.Info("station loaded with gaps", map[string]any{
			"station":    h.Name,
			"days":       h.Len(),
			"skipped":    skipped,
			"duplicates": duplicates,
		})
	}
	return h, nil
}

func (l *Loader) row(rec []string) (row, error) {
	rw, err := parseRow(rec)
	if err != nil {
		return row{}, err
	}
	if l.strict {
		if err := l.validate.Struct(rw); err != nil {
			return row{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
	}
	return rw, nil
}

// LoadFile opens path and parses it with LoadHistory.
func (l *Loader) LoadFile(path string) (*weather.History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := l.LoadHistory(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return h, nil
}

// LoadRegion builds a region from every station export in dir.
// Sub-directories and dot-files are ignored. Files are parsed concurrently but
// registered in file-name order, so the first file naming a location wins.
// Files that cannot be parsed are logged and left out.
func (l *Loader) LoadRegion(ctx context.Context, name, dir string) (*weather.Region, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	histories := make([]*weather.History, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(l.workers, len(files)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				h, err := l.LoadFile(files[i])
				switch {
				case errors.Is(err, ErrNoData):
					l.log.Debug("empty station file", map[string]any{"file": files[i]})
				case err != nil:
					l.log.Error(err, map[string]any{"file": files[i], "region": name})
				default:
					histories[i] = h
				}
			}
		}()
	}

feed:
	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	region := weather.NewRegion(name)
	for i, h := range histories {
		if h == nil {
			continue
		}
		if !region.Add(h) {
			l.log.Warning("duplicate location ignored", map[string]any{
				"region":   name,
				"location": h.Name,
				"file":     files[i],
			})
		}
	}

	l.log.Info("region loaded", map[string]any{
		"region":    name,
		"files":     len(files),
		"locations": region.Len(),
	})
	return region, nil
}
