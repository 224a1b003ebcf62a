package quality

import (
	"errors"
	"fmt"

	"github.com/bookdim/bookdim/pkg/book"
)

// Thresholds are the blocking assertions a run must satisfy before its
// outputs are published to the standard zone.
type Thresholds struct {
	// MinTitleCompleteness is the minimum fraction (0..1) of canonical
	// records with a non-null title.
	MinTitleCompleteness float64 `mapstructure:"min_title_completeness" yaml:"min_title_completeness"`

	// MaxPrice is the upper bound of the plausible price range.
	// Negative prices always fail.
	MaxPrice float64 `mapstructure:"max_price" yaml:"max_price"`

	// MinBooks is the minimum number of canonical records.
	MinBooks int `mapstructure:"min_books" yaml:"min_books"`
}

// Assert validates a run's outputs against the thresholds. All
// violations are collected before returning, so a failed run reports
// every problem at once.
func Assert(
	dim []book.CanonicalRecord, m book.QualityMetrics, t Thresholds,
) error {
	var errs []error

	if c := m.Completeness["titulo"]; c < t.MinTitleCompleteness {
		errs = append(errs, fmt.Errorf(
			"title completeness %.1f%% below minimum %.1f%%",
			c*100, t.MinTitleCompleteness*100,
		))
	}

	seen := make(map[string]int, len(dim))
	for i := range dim {
		id := dim[i].BookID
		if prev, ok := seen[id]; ok {
			errs = append(errs, fmt.Errorf(
				"duplicate book_id %q at records %d and %d", id, prev, i,
			))
		} else {
			seen[id] = i
		}
	}

	if m.PriceRange.HasData {
		if m.PriceRange.Min < 0 || m.PriceRange.Max > t.MaxPrice {
			errs = append(errs, fmt.Errorf(
				"price range [%.2f, %.2f] outside [0, %.2f]",
				m.PriceRange.Min, m.PriceRange.Max, t.MaxPrice,
			))
		}
	}

	if len(dim) < t.MinBooks {
		errs = append(errs, fmt.Errorf(
			"only %d canonical records, minimum is %d", len(dim), t.MinBooks,
		))
	}

	return errors.Join(errs...)
}
