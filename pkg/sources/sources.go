// Package sources defines the schema for sources.yaml, the registry of
// landing files the integrate command reads. Each entry names a source,
// its file format and its location inside the landing directory.
package sources

import (
	"fmt"
	"strings"
)

// Format of a landing file.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Registry represents the complete sources.yaml configuration file.
type Registry struct {
	// Sources is the list of landing sources to ingest, in file order.
	Sources []Source `yaml:"sources"`
}

// Source describes one landing file.
type Source struct {
	// Name tags every raw record read from this file. It must be
	// unique within the registry; "goodreads" and "googlebooks"
	// additionally get survivorship priority in the core.
	Name string `yaml:"name"`

	// Format is "json" (Goodreads scrape envelope) or "csv"
	// (Google Books enrichment output).
	Format string `yaml:"format"`

	// File is the landing file path, relative to the landing directory
	// unless absolute.
	File string `yaml:"file"`

	// Enabled defaults to true; disabled sources stay listed but are
	// skipped during ingestion.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the source takes part in ingestion.
func (s *Source) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Validate checks the registry for structural problems: empty or
// duplicate names, unknown formats, missing file paths.
func (r *Registry) Validate() error {
	if len(r.Sources) == 0 {
		return fmt.Errorf("sources.yaml lists no sources")
	}

	seen := make(map[string]struct{}, len(r.Sources))
	for i, s := range r.Sources {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("source %d: name must not be empty", i)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("source %d: duplicate name %q", i, name)
		}
		seen[name] = struct{}{}

		switch s.Format {
		case FormatJSON, FormatCSV:
		default:
			return fmt.Errorf(
				"source %q: unknown format %q (want %q or %q)",
				name, s.Format, FormatJSON, FormatCSV,
			)
		}

		if strings.TrimSpace(s.File) == "" {
			return fmt.Errorf("source %q: file must not be empty", name)
		}
	}
	return nil
}

// Enabled returns the enabled sources in registry order.
func (r *Registry) Enabled() []Source {
	var out []Source
	for _, s := range r.Sources {
		if s.IsEnabled() {
			out = append(out, s)
		}
	}
	return out
}
