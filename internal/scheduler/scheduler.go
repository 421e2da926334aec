package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-history/internal/weather"
	"github.com/i474232898/weather-history/pkg/logger"
)

const reloadTimeout = 5 * time.Minute

// Reloader rebuilds a stored region from its source.
type Reloader interface {
	Reload(ctx context.Context, src weather.Source) (*weather.Region, error)
}

// Scheduler periodically reloads the configured region sources from disk.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reloader  Reloader
	sources   []weather.Source
	interval  time.Duration
	l         *logger.Logger
}

// New creates a new Scheduler.
func New(sources []weather.Source, interval time.Duration, reloader Reloader, l *logger.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		reloader:  reloader,
		sources:   sources,
		interval:  interval,
		l:         l,
	}
}

// Start schedules the reload job and starts the underlying scheduler.
// A non-positive interval disables reloading.
func (s *Scheduler) Start() error {
	if len(s.sources) == 0 || s.interval <= 0 {
		s.l.Info("scheduler: periodic reload disabled", map[string]any{
			"sources":  len(s.sources),
			"interval": s.interval.String(),
		})
		return nil
	}

	// The first run happens one interval from now; sources are loaded at startup.
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.ReloadAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// ReloadAll reloads every source concurrently. A failed source keeps its
// previously stored region.
func (s *Scheduler) ReloadAll() {
	s.l.Debug("scheduler: running region reload job")

	var wg sync.WaitGroup
	for _, src := range s.sources {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
			defer cancel()

			if _, err := s.reloader.Reload(ctx, src); err != nil {
				s.l.Error(err, map[string]any{"region": src.Region, "dir": src.Dir})
			}
		}()
	}
	wg.Wait()

	s.l.Debug("scheduler: completed region reload job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
