package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-history/internal/weather"
)

const defaultConfigFile = "config/config.yaml"

type AppConfig struct {
	AppName  string `envconfig:"APP_NAME" default:"weather-history" validate:"required"`
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`

	// Primary region: every file in DataDir is one station.
	RegionName string `envconfig:"REGION_NAME" default:"Canada" validate:"required"`
	DataDir    string `envconfig:"DATA_DIR" default:"data" validate:"required"`
	ReportPath string `envconfig:"REPORT_PATH" default:"report.md"`

	// Loader settings.
	Workers    int  `envconfig:"WORKERS" default:"4" validate:"gte=1"`
	StrictRows bool `envconfig:"STRICT_ROWS" default:"false"`

	// ReloadInterval controls how often regions are reloaded from disk (0 = never).
	ReloadInterval time.Duration `envconfig:"RELOAD_INTERVAL" default:"0s" validate:"gte=0"`

	// Summary archive. Disabled when ArchiveDSN is empty.
	ArchiveDriver string `envconfig:"ARCHIVE_DRIVER" default:"sqlite" validate:"oneof=sqlite postgres"`
	ArchiveDSN    string `envconfig:"ARCHIVE_DSN"`

	// Extra regions, read from the YAML file only.
	Regions []weather.Source `yaml:"regions" ignored:"true" validate:"dive"`
}

// Load reads configuration from .env, the YAML file named by CONFIG_FILE and
// the environment, in that order, then validates it.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = defaultConfigFile
	}
	return load(path)
}

func load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadFile fills cfg from a YAML file. A missing file is not an error.
func loadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Sources returns the primary region followed by the YAML regions. A YAML
// region sharing the primary region's name is dropped.
func (c *AppConfig) Sources() []weather.Source {
	out := []weather.Source{{Region: c.RegionName, Dir: c.DataDir}}
	for _, src := range c.Regions {
		if src.Region == c.RegionName {
			continue
		}
		out = append(out, src)
	}
	return out
}

// ArchiveEnabled reports whether summaries should be written to the archive.
func (c *AppConfig) ArchiveEnabled() bool {
	return c.ArchiveDSN != ""
}
