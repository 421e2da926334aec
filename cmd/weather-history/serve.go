package main

import (
	"context"
	"time"

	httpapi "github.com/i474232898/weather-history/internal/api/http"
	"github.com/i474232898/weather-history/internal/archive"
	"github.com/i474232898/weather-history/internal/config"
	"github.com/i474232898/weather-history/internal/ingest"
	"github.com/i474232898/weather-history/internal/scheduler"
	"github.com/i474232898/weather-history/internal/store"
	"github.com/i474232898/weather-history/internal/weather"
	"github.com/i474232898/weather-history/pkg/logger"
)

func runServe(ctx context.Context, cfg *config.AppConfig, l *logger.Logger) error {
	memStore := store.NewMemoryStore()
	loader := ingest.NewLoader(cfg.Workers, cfg.StrictRows, l)
	service := weather.NewService(memStore, loader, l)

	var reloader scheduler.Reloader = service
	var repo *archive.Repository
	if cfg.ArchiveEnabled() {
		var err error
		if repo, err = openArchive(ctx, cfg); err != nil {
			return err
		}
		defer repo.Close()
		reloader = archivingReloader{service: service, repo: repo, l: l}
	}

	sources := cfg.Sources()
	for _, src := range sources {
		// A region that fails to load stays absent until the next reload.
		if _, err := reloader.Reload(ctx, src); err != nil {
			l.Error(err, map[string]any{"region": src.Region, "dir": src.Dir})
		}
	}

	sched := scheduler.New(sources, cfg.ReloadInterval, reloader, l)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := httpapi.NewApp(cfg.AppName)
	httpapi.RegisterRoutes(app, service)
	if repo != nil {
		httpapi.RegisterArchiveRoutes(app, repo)
	}

	go func() {
		l.Info("http server listening", map[string]any{"port": cfg.Port})
		if err := app.Listen(":" + cfg.Port); err != nil {
			l.Error(err, map[string]any{"event": "fiber server stopped"})
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}

// archivingReloader archives the summaries of every region it reloads.
type archivingReloader struct {
	service *weather.Service
	repo    *archive.Repository
	l       *logger.Logger
}

func (a archivingReloader) Reload(ctx context.Context, src weather.Source) (*weather.Region, error) {
	region, err := a.service.Reload(ctx, src)
	if err != nil {
		return nil, err
	}

	run, err := a.repo.SaveRun(ctx, region.Name, region.Summaries())
	if err != nil {
		a.l.Error(err, map[string]any{"region": region.Name})
		return region, nil
	}
	a.l.Debug("region summaries archived", map[string]any{"region": region.Name, "run_id": run.ID})
	return region, nil
}
