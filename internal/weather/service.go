package weather

import (
	"context"
	"errors"
	"fmt"

	"github.com/i474232898/weather-history/pkg/logger"
)

// ErrLocationNotFound is returned when a region has no history for a location.
var ErrLocationNotFound = errors.New("location not found")

// Service loads regions into a store and answers queries against them.
type Service struct {
	store  Store
	loader Loader
	l      *logger.Logger
}

// NewService creates a new Service.
func NewService(store Store, loader Loader, l *logger.Logger) *Service {
	return &Service{
		store:  store,
		loader: loader,
		l:      l,
	}
}

// Reload loads src from disk and replaces the stored region of the same name.
// On failure the previously stored region, if any, is kept.
func (s *Service) Reload(ctx context.Context, src Source) (*Region, error) {
	if s.loader == nil {
		return nil, errors.New("no region loader configured")
	}

	region, err := s.loader.LoadRegion(ctx, src.Region, src.Dir)
	if err != nil {
		return nil, fmt.Errorf("load region %s: %w", src.Region, err)
	}

	s.store.SaveRegion(region)
	s.l.Info("region stored", map[string]any{
		"region":    region.Name,
		"locations": region.Len(),
	})
	return region, nil
}

// RegionNames lists the stored regions.
func (s *Service) RegionNames() []string {
	return s.store.RegionNames()
}

// Region delegates to the underlying store.
func (s *Service) Region(name string) (*Region, error) {
	return s.store.Region(name)
}

// History returns the history of one location in a stored region.
func (s *Service) History(region, location string) (*History, error) {
	r, err := s.store.Region(region)
	if err != nil {
		return nil, err
	}
	h, ok := r.History(location)
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", region, location, ErrLocationNotFound)
	}
	return h, nil
}

// Observation returns the weather recorded at a location on d. ok is false
// when the location exists but has no record for d.
func (s *Service) Observation(region, location string, d Date) (obs Observation, ok bool, err error) {
	h, err := s.History(region, location)
	if err != nil {
		return Observation{}, false, err
	}
	obs, ok = h.Observation(d)
	return obs, ok, nil
}

// Summaries returns the per-location summaries of a stored region.
func (s *Service) Summaries(region string) ([]Summary, error) {
	r, err := s.store.Region(region)
	if err != nil {
		return nil, err
	}
	return r.Summaries(), nil
}

// Snowiest returns the snowiest location of a stored region.
func (s *Service) Snowiest(region string) (Ranking, bool, error) {
	r, err := s.store.Region(region)
	if err != nil {
		return Ranking{}, false, err
	}
	return r.SnowiestLocation()
}
