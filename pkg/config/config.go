// Package config provides configuration management for bookdim.
//
// This package has no I/O dependencies: loading from files, flags and
// environment happens in internal/io/config. The default config from
// Defaults() is always valid; Validate() guards configs assembled from
// external sources.
//
// Precedence (highest to lowest): CLI flags > env vars (BOOKDIM_*) >
// bookdim.yaml > defaults.
package config

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/bookdim/bookdim/pkg/quality"
)

// AppName is used in generating file system paths and the env prefix.
const AppName = "bookdim"

// Config represents the complete bookdim configuration.
type Config struct {
	// Landing locates raw per-source files produced by the collectors.
	Landing LandingConfig `mapstructure:"landing" yaml:"landing"`

	// Standard locates the curated outputs of an integration run.
	Standard StandardConfig `mapstructure:"standard" yaml:"standard"`

	// Database holds PostgreSQL settings for the warehouse load.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Quality holds the blocking assertion thresholds.
	Quality quality.Thresholds `mapstructure:"quality" yaml:"quality"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for the
	// normalization and merge phases. Defaults to the number of
	// available CPU threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`
}

// LandingConfig locates the landing zone.
type LandingConfig struct {
	// Dir is the directory holding raw landing files.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// SourcesFile is the sources.yaml registry describing which landing
	// files exist and how to read them.
	SourcesFile string `mapstructure:"sources_file" yaml:"sources_file"`
}

// StandardConfig locates the standard zone and generated documentation.
type StandardConfig struct {
	// Dir receives dim_book.parquet, book_source_detail.parquet and the
	// optional SQLite export.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// DocsDir receives quality_metrics.json and schema.md.
	DocsDir string `mapstructure:"docs_dir" yaml:"docs_dir"`
}

// DatabaseConfig contains PostgreSQL connection parameters for the
// warehouse load command.
type DatabaseConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode is one of "disable", "require", "verify-ca",
	// "verify-full".
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of rows per bulk insert.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	MaxConnections int `mapstructure:"max_connections" yaml:"max_connections"`
	MinConnections int `mapstructure:"min_connections" yaml:"min_connections"`
}

// LogConfig provides settings for application logs.
type LogConfig struct {
	// Format is "text" or "json".
	Format string `mapstructure:"format" yaml:"format"`
	// Level is "debug", "info", "warn" or "error".
	Level string `mapstructure:"level" yaml:"level"`
}

// Defaults returns a Config with sensible default values. The returned
// config is always valid and ready to use.
func Defaults() *Config {
	return &Config{
		Landing: LandingConfig{
			Dir:         "landing",
			SourcesFile: "sources.yaml",
		},
		Standard: StandardConfig{
			Dir:     "standard",
			DocsDir: "docs",
		},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			Password:       "postgres",
			Database:       "bookdim",
			SSLMode:        "disable",
			BatchSize:      10_000,
			MaxConnections: 10,
			MinConnections: 2,
		},
		Quality: quality.Thresholds{
			MinTitleCompleteness: 0.9,
			MaxPrice:             1000,
			MinBooks:             10,
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		JobsNumber: runtime.NumCPU(),
	}
}

var sslModes = map[string]struct{}{
	"disable": {}, "require": {}, "verify-ca": {}, "verify-full": {},
}

// Validate checks a config assembled from external sources. It reports
// the first offending field with enough context to fix the file.
func (c *Config) Validate() error {
	if c.Landing.Dir == "" {
		return fmt.Errorf("landing.dir must not be empty")
	}
	if c.Standard.Dir == "" {
		return fmt.Errorf("standard.dir must not be empty")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port %d out of range", c.Database.Port)
	}
	if _, ok := sslModes[c.Database.SSLMode]; !ok {
		return fmt.Errorf("database.ssl_mode %q is not a valid mode", c.Database.SSLMode)
	}
	if c.Database.BatchSize < 1 {
		return fmt.Errorf("database.batch_size must be positive, got %d", c.Database.BatchSize)
	}
	if c.Quality.MinTitleCompleteness < 0 || c.Quality.MinTitleCompleteness > 1 {
		return fmt.Errorf(
			"quality.min_title_completeness must be a fraction in [0,1], got %g",
			c.Quality.MinTitleCompleteness,
		)
	}
	if c.Quality.MaxPrice <= 0 {
		return fmt.Errorf("quality.max_price must be positive, got %g", c.Quality.MaxPrice)
	}
	if c.Quality.MinBooks < 0 {
		return fmt.Errorf("quality.min_books must not be negative, got %d", c.Quality.MinBooks)
	}
	if c.JobsNumber < 1 {
		return fmt.Errorf("jobs_number must be at least 1, got %d", c.JobsNumber)
	}
	return nil
}

// SourcesPath resolves the sources.yaml location relative to the
// landing directory unless an absolute path was configured.
func (c *Config) SourcesPath() string {
	if filepath.IsAbs(c.Landing.SourcesFile) {
		return c.Landing.SourcesFile
	}
	return filepath.Join(c.Landing.Dir, c.Landing.SourcesFile)
}
