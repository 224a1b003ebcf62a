package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bookdim/bookdim/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := config.Defaults()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "landing", cfg.Landing.Dir)
		assert.Equal(t, "sources.yaml", cfg.Landing.SourcesFile)
		assert.Equal(t, "standard", cfg.Standard.Dir)
		assert.Equal(t, "docs", cfg.Standard.DocsDir)

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "bookdim", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 10_000, cfg.Database.BatchSize)

		assert.Equal(t, 0.9, cfg.Quality.MinTitleCompleteness)
		assert.Equal(t, float64(1000), cfg.Quality.MaxPrice)

		assert.Equal(t, "text", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)

		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})

	t.Run("defaults pass validation", func(t *testing.T) {
		assert.NoError(t, cfg.Validate())
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		msg    string
		mutate func(c *config.Config)
		want   string
	}{
		{
			msg:    "empty landing dir",
			mutate: func(c *config.Config) { c.Landing.Dir = "" },
			want:   "landing.dir",
		},
		{
			msg:    "empty standard dir",
			mutate: func(c *config.Config) { c.Standard.Dir = "" },
			want:   "standard.dir",
		},
		{
			msg:    "port out of range",
			mutate: func(c *config.Config) { c.Database.Port = 70000 },
			want:   "out of range",
		},
		{
			msg:    "bad ssl mode",
			mutate: func(c *config.Config) { c.Database.SSLMode = "maybe" },
			want:   "ssl_mode",
		},
		{
			msg:    "zero batch size",
			mutate: func(c *config.Config) { c.Database.BatchSize = 0 },
			want:   "batch_size",
		},
		{
			msg:    "completeness above one",
			mutate: func(c *config.Config) { c.Quality.MinTitleCompleteness = 1.5 },
			want:   "min_title_completeness",
		},
		{
			msg:    "negative max price",
			mutate: func(c *config.Config) { c.Quality.MaxPrice = -5 },
			want:   "max_price",
		},
		{
			msg:    "zero jobs",
			mutate: func(c *config.Config) { c.JobsNumber = 0 },
			want:   "jobs_number",
		},
	}

	for _, v := range tests {
		cfg := config.Defaults()
		v.mutate(cfg)
		err := cfg.Validate()
		require.Error(t, err, v.msg)
		assert.Contains(t, err.Error(), v.want, v.msg)
	}
}

func TestSourcesPath(t *testing.T) {
	cfg := config.Defaults()
	assert.Equal(t, filepath.Join("landing", "sources.yaml"), cfg.SourcesPath())

	abs := filepath.Join(string(filepath.Separator), "etc", "bookdim", "sources.yaml")
	cfg.Landing.SourcesFile = abs
	assert.Equal(t, abs, cfg.SourcesPath())
}
