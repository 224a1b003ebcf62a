package warehouse

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/bookdim/bookdim/pkg/pipeline"
)

// insertMetrics appends the run's quality snapshot as flat
// (run_ts, metric, value) rows. Empty snapshots (a load from a standard
// zone without quality_metrics.json) are skipped.
func (l *loaderImpl) insertMetrics(ctx context.Context, res *pipeline.Result) error {
	m := &res.Metrics
	if m.Timestamp == "" {
		return nil
	}
	runTS, err := time.Parse(time.RFC3339, m.Timestamp)
	if err != nil {
		return fmt.Errorf("bad metrics timestamp %q: %w", m.Timestamp, err)
	}

	rows := map[string]string{
		"total_raw_records":       strconv.Itoa(m.RawRecords),
		"total_canonical_records": strconv.Itoa(m.CanonicalRecords),
		"duplicates_resolved":     strconv.Itoa(m.DuplicatesResolved),
		"trace_rows":              strconv.Itoa(m.TraceRows),
		"isbn_validity":           formatFraction(m.ISBNValidity),
	}
	for field, frac := range m.Completeness {
		rows["completeness."+field] = formatFraction(frac)
	}
	for field, n := range m.NormalizationFailures {
		rows["normalization_failures."+field] = strconv.Itoa(n)
	}
	for lang, n := range m.ByLanguage {
		rows["by_language."+lang] = strconv.Itoa(n)
	}
	for src, n := range m.BySource {
		rows["by_source."+src] = strconv.Itoa(n)
	}
	if m.PriceRange.HasData {
		rows["price_min"] = formatFraction(m.PriceRange.Min)
		rows["price_max"] = formatFraction(m.PriceRange.Max)
	}

	names := make([]string, 0, len(rows))
	for name := range rows {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		_, err := l.operator.Pool().Exec(ctx,
			"INSERT INTO quality_metrics (run_ts, metric, value) VALUES ($1, $2, $3)",
			runTS, name, rows[name],
		)
		if err != nil {
			return fmt.Errorf("failed to insert metric %s: %w", name, err)
		}
	}
	return nil
}

func formatFraction(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
