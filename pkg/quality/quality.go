// Package quality computes data-quality metrics over the canonical
// record set and enforces the blocking assertions of a pipeline run.
//
// Metrics computation is read-only: it never modifies the canonical
// set and may be re-run idempotently against the same inputs.
package quality

import (
	"time"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/bookdim/bookdim/pkg/normalize"
)

// fieldAccessors maps canonical field names to presence checks. Adding
// a field to dim_book means adding it here so completeness stays in
// sync with the schema.
var fieldAccessors = map[string]func(*book.CanonicalRecord) bool{
	"titulo":            func(r *book.CanonicalRecord) bool { return r.Title != nil },
	"subtitulo":         func(r *book.CanonicalRecord) bool { return r.Subtitle != nil },
	"autor_principal":   func(r *book.CanonicalRecord) bool { return r.MainAuthor != nil },
	"autores":           func(r *book.CanonicalRecord) bool { return len(r.Authors) > 0 },
	"editorial":         func(r *book.CanonicalRecord) bool { return r.Publisher != nil },
	"anio_publicacion":  func(r *book.CanonicalRecord) bool { return r.PubYear != nil },
	"fecha_publicacion": func(r *book.CanonicalRecord) bool { return r.PubDate != nil },
	"idioma":            func(r *book.CanonicalRecord) bool { return r.Language != nil },
	"isbn10":            func(r *book.CanonicalRecord) bool { return r.ISBN10 != nil },
	"isbn13":            func(r *book.CanonicalRecord) bool { return r.ISBN13 != nil },
	"paginas":           func(r *book.CanonicalRecord) bool { return r.Pages != nil },
	"categorias":        func(r *book.CanonicalRecord) bool { return len(r.Categories) > 0 },
	"precio":            func(r *book.CanonicalRecord) bool { return r.Price != nil },
	"moneda":            func(r *book.CanonicalRecord) bool { return r.Currency != nil },
	"rating":            func(r *book.CanonicalRecord) bool { return r.Rating != nil },
	"ratings_count":     func(r *book.CanonicalRecord) bool { return r.RatingsCount != nil },
}

// Audit computes the quality snapshot for one pipeline run.
// rawCount is the size of the input collection, failures the per-field
// normalization failure tallies collected during the normalize phase.
func Audit(
	rawCount int,
	dim []book.CanonicalRecord,
	trace []book.TraceabilityRow,
	failures map[string]int,
	ts time.Time,
) book.QualityMetrics {
	m := book.QualityMetrics{
		Timestamp:             ts.Format(time.RFC3339),
		RawRecords:            rawCount,
		CanonicalRecords:      len(dim),
		DuplicatesResolved:    rawCount - len(dim),
		TraceRows:             len(trace),
		Completeness:          make(map[string]float64, len(fieldAccessors)),
		NormalizationFailures: failures,
		ByLanguage:            make(map[string]int),
		BySource:              make(map[string]int),
	}
	if m.NormalizationFailures == nil {
		m.NormalizationFailures = map[string]int{}
	}

	if len(dim) == 0 {
		for field := range fieldAccessors {
			m.Completeness[field] = 0
		}
		return m
	}

	total := float64(len(dim))

	for field, present := range fieldAccessors {
		var n int
		for i := range dim {
			if present(&dim[i]) {
				n++
			}
		}
		m.Completeness[field] = float64(n) / total
	}

	var validISBN int
	for i := range dim {
		rec := &dim[i]

		if rec.ISBN13 != nil && normalize.ValidateISBN13(*rec.ISBN13) {
			validISBN++
		}
		if rec.Language != nil {
			m.ByLanguage[*rec.Language]++
		}
		if rec.WinningSource != "" {
			m.BySource[rec.WinningSource]++
		}
		if rec.Price != nil {
			p := *rec.Price
			if !m.PriceRange.HasData {
				m.PriceRange = book.NumericRange{HasData: true, Min: p, Max: p}
			} else {
				if p < m.PriceRange.Min {
					m.PriceRange.Min = p
				}
				if p > m.PriceRange.Max {
					m.PriceRange.Max = p
				}
			}
		}
	}
	m.ISBNValidity = float64(validISBN) / total

	return m
}
