package standard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/bookdim/bookdim/pkg/config"
	"github.com/bookdim/bookdim/pkg/pipeline"
)

// ReadRun loads a previously persisted run back from the standard zone,
// so the warehouse load can happen on a different host or at a later
// time than the integration itself.
func ReadRun(cfg *config.Config) (*pipeline.Result, error) {
	canonical, err := readParquet[book.CanonicalRecord](
		filepath.Join(cfg.Standard.Dir, DimBookFile),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", DimBookFile, err)
	}

	trace, err := readParquet[book.TraceabilityRow](
		filepath.Join(cfg.Standard.Dir, TraceFile),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TraceFile, err)
	}

	res := &pipeline.Result{Canonical: canonical, Trace: trace}

	metricsPath := filepath.Join(cfg.Standard.DocsDir, MetricsFile)
	data, err := os.ReadFile(metricsPath)
	if err != nil {
		// The warehouse load works without the metrics snapshot; only
		// the quality_metrics table stays empty.
		if os.IsNotExist(err) {
			return res, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", MetricsFile, err)
	}
	if err := json.Unmarshal(data, &res.Metrics); err != nil {
		return nil, fmt.Errorf("malformed %s: %w", MetricsFile, err)
	}
	return res, nil
}
