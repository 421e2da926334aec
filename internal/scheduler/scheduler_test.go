package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-history/internal/weather"
	"github.com/i474232898/weather-history/pkg/logger"
)

type recordingReloader struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (r *recordingReloader) Reload(_ context.Context, src weather.Source) (*weather.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, src.Region)
	if r.fail[src.Region] {
		return nil, errors.New("load failed")
	}
	return weather.NewRegion(src.Region), nil
}

func (r *recordingReloader) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestReloadAll(t *testing.T) {
	reloader := &recordingReloader{fail: map[string]bool{"Ontario": true}}
	sources := []weather.Source{
		{Region: "Canada", Dir: "data"},
		{Region: "Ontario", Dir: "data/ontario"},
		{Region: "Quebec", Dir: "data/quebec"},
	}

	New(sources, time.Minute, reloader, logger.NewNop()).ReloadAll()

	sort.Strings(reloader.calls)
	assert.Equal(t, []string{"Canada", "Ontario", "Quebec"}, reloader.calls)
}

func TestStart_Disabled(t *testing.T) {
	reloader := &recordingReloader{}
	s := New([]weather.Source{{Region: "Canada", Dir: "data"}}, 0, reloader, logger.NewNop())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.False(t, s.scheduler.IsRunning())
}

func TestStart_RunsPeriodically(t *testing.T) {
	reloader := &recordingReloader{}
	s := New([]weather.Source{{Region: "Canada", Dir: "data"}}, 50*time.Millisecond, reloader, logger.NewNop())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return reloader.count() >= 2 }, 2*time.Second, 10*time.Millisecond)
}
