// Package landing implements the Ingestor interface for reading raw
// landing-zone files. This is an impure I/O package: it loads the
// sources registry, reads per-source files (JSON envelope or CSV) and
// translates source sentinels to nil before records reach the core.
package landing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/bookdim/bookdim/pkg/config"
	"github.com/bookdim/bookdim/pkg/lifecycle"
	"github.com/bookdim/bookdim/pkg/sources"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

type ingestorImpl struct {
	cfg *config.Config
}

// NewIngestor creates an Ingestor reading from the configured landing
// directory.
func NewIngestor(cfg *config.Config) lifecycle.Ingestor {
	return &ingestorImpl{cfg: cfg}
}

// Read loads every enabled source from the registry and returns the
// combined raw records, each tagged with its source name. A source
// whose file cannot be read aborts the run; partial input would
// silently skew survivorship.
func (ing *ingestorImpl) Read(ctx context.Context) ([]book.RawRecord, error) {
	reg, err := LoadRegistry(ing.cfg.SourcesPath())
	if err != nil {
		return nil, err
	}

	var res []book.RawRecord
	for _, src := range reg.Enabled() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		path := src.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(ing.cfg.Landing.Dir, path)
		}

		var recs []book.RawRecord
		switch src.Format {
		case sources.FormatJSON:
			recs, err = readJSON(path, src.Name)
		case sources.FormatCSV:
			recs, err = readCSV(path, src.Name)
		default:
			err = fmt.Errorf("unknown format %q", src.Format)
		}
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Name, err)
		}

		slog.Info("Read landing source",
			"source", src.Name,
			"file", path,
			"records", humanize.Comma(int64(len(recs))),
		)
		res = append(res, recs...)
	}

	if len(res) == 0 {
		return nil, fmt.Errorf("no records found in any enabled source")
	}
	return res, nil
}

// LoadRegistry reads and validates the sources.yaml registry.
func LoadRegistry(path string) (*sources.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources registry: %w", err)
	}

	var reg sources.Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("malformed sources registry %s: %w", path, err)
	}

	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sources registry %s: %w", path, err)
	}
	return &reg, nil
}
