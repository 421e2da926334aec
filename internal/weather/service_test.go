package weather_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-history/internal/store"
	"github.com/i474232898/weather-history/internal/weather"
	"github.com/i474232898/weather-history/pkg/logger"
)

type stubLoader struct {
	regions map[string]*weather.Region
	err     error
	calls   []string
}

func (s *stubLoader) LoadRegion(_ context.Context, name, dir string) (*weather.Region, error) {
	s.calls = append(s.calls, name+"@"+dir)
	if s.err != nil {
		return nil, s.err
	}
	return s.regions[name], nil
}

func newTestService(t *testing.T) (*weather.Service, *stubLoader) {
	t.Helper()

	m := weather.Measured
	r := weather.NewRegion("Canada")
	h := weather.NewHistory("Toronto", toronto)
	h.Add(weather.NewDate(2024, time.July, 13), obs(13, 9, 20, m(5), m(5), m(0)))
	h.Add(weather.NewDate(2024, time.July, 14), obs(13, 9, 20, m(5), m(3), m(1)))
	r.Add(h)

	loader := &stubLoader{regions: map[string]*weather.Region{"Canada": r}}
	svc := weather.NewService(store.NewMemoryStore(), loader, logger.NewNop())
	_, err := svc.Reload(context.Background(), weather.Source{Region: "Canada", Dir: "data"})
	require.NoError(t, err)
	return svc, loader
}

func TestService_Reload(t *testing.T) {
	svc, loader := newTestService(t)

	assert.Equal(t, []string{"Canada@data"}, loader.calls)
	assert.Equal(t, []string{"Canada"}, svc.RegionNames())

	r, err := svc.Region("Canada")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestService_ReloadFailureKeepsPrevious(t *testing.T) {
	svc, loader := newTestService(t)
	loader.err = errors.New("disk on fire")

	_, err := svc.Reload(context.Background(), weather.Source{Region: "Canada", Dir: "data"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")

	r, err := svc.Region("Canada")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestService_History(t *testing.T) {
	svc, _ := newTestService(t)

	h, err := svc.History("Canada", "Toronto")
	require.NoError(t, err)
	assert.Equal(t, "Toronto", h.Name)

	_, err = svc.History("Canada", "Ottawa")
	assert.ErrorIs(t, err, weather.ErrLocationNotFound)

	_, err = svc.History("Mars", "Toronto")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_Observation(t *testing.T) {
	svc, _ := newTestService(t)

	o, ok, err := svc.Observation("Canada", "Toronto", weather.NewDate(2024, time.July, 13))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 20.0, o.HighTemp())

	_, ok, err = svc.Observation("Canada", "Toronto", weather.NewDate(2024, time.July, 15))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_SummariesAndSnowiest(t *testing.T) {
	svc, _ := newTestService(t)

	sums, err := svc.Summaries("Canada")
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, 2, sums[0].StreakLength)

	best, ok, err := svc.Snowiest("Canada")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Toronto", best.Name)
	assert.Equal(t, 1.0/9, best.Value)

	_, err = svc.Summaries("Mars")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
