package book

// NumericRange summarizes a numeric field over its non-null values.
// HasData is false when every value was null; Min/Max are then
// meaningless and omitted from serialized output.
type NumericRange struct {
	HasData bool    `json:"has_data"`
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
}

// QualityMetrics is a snapshot of aggregate statistics computed once per
// pipeline run over the full canonical record set. It has no identity;
// recomputing it from the same inputs yields the same snapshot (modulo
// the timestamp).
type QualityMetrics struct {
	// Timestamp of the metrics computation, RFC 3339.
	Timestamp string `json:"timestamp"`

	// RawRecords is the size of the input collection.
	RawRecords int `json:"total_raw_records"`

	// CanonicalRecords is the size of dim_book.
	CanonicalRecords int `json:"total_canonical_records"`

	// DuplicatesResolved = RawRecords - CanonicalRecords.
	DuplicatesResolved int `json:"duplicates_resolved"`

	// TraceRows is the size of book_source_detail.
	TraceRows int `json:"trace_rows"`

	// Completeness maps canonical field name to the fraction (0..1) of
	// canonical records with a non-null value.
	Completeness map[string]float64 `json:"completeness"`

	// ISBNValidity is the fraction of canonical records carrying a
	// checksum-valid ISBN-13.
	ISBNValidity float64 `json:"isbn13_validity"`

	// NormalizationFailures counts field-level normalization failures
	// by field name across all raw records.
	NormalizationFailures map[string]int `json:"normalization_failures"`

	// PriceRange covers precio over non-null values.
	PriceRange NumericRange `json:"price_range"`

	// ByLanguage counts canonical records per idioma value.
	ByLanguage map[string]int `json:"by_language"`

	// BySource counts canonical records per winning source.
	BySource map[string]int `json:"by_source"`
}
