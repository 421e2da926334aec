package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/i474232898/weather-history/internal/archive"
	"github.com/i474232898/weather-history/internal/config"
	"github.com/i474232898/weather-history/internal/ingest"
	"github.com/i474232898/weather-history/internal/report"
	"github.com/i474232898/weather-history/internal/store"
	"github.com/i474232898/weather-history/internal/weather"
	"github.com/i474232898/weather-history/pkg/logger"
)

func runReport(ctx context.Context, cfg *config.AppConfig, l *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	dir := fs.String("dir", cfg.DataDir, "directory of station CSV files")
	region := fs.String("region", cfg.RegionName, "name of the region")
	out := fs.String("out", cfg.ReportPath, "path of the markdown report")
	strict := fs.Bool("strict", cfg.StrictRows, "skip rows that fail range and ordering checks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	loader := ingest.NewLoader(cfg.Workers, *strict, l)
	service := weather.NewService(store.NewMemoryStore(), loader, l)

	if _, err := service.Reload(ctx, weather.Source{Region: *region, Dir: *dir}); err != nil {
		return err
	}

	summaries, err := service.Summaries(*region)
	if err != nil {
		return err
	}

	if err := report.WriteFile(*out, summaries); err != nil {
		return err
	}
	l.Info("report written", map[string]any{"path": *out, "locations": len(summaries)})

	fmt.Println(report.Table(summaries))

	best, ok, err := service.Snowiest(*region)
	switch {
	case err != nil:
		l.Warning("snowiest location unavailable", map[string]any{"reason": err.Error()})
	case ok:
		fmt.Printf("Snowiest location: %s (%.0f%% of precipitation as snow)\n", best.Name, best.Value*100)
	}

	if !cfg.ArchiveEnabled() {
		return nil
	}
	repo, err := openArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	run, err := repo.SaveRun(ctx, *region, summaries)
	if err != nil {
		return err
	}
	l.Info("report archived", map[string]any{"run_id": run.ID, "region": run.Region})
	return nil
}

func openArchive(ctx context.Context, cfg *config.AppConfig) (*archive.Repository, error) {
	repo, err := archive.Open(ctx, cfg.ArchiveDriver, cfg.ArchiveDSN)
	if err != nil {
		return nil, err
	}
	if err := repo.Migrate(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	return repo, nil
}
