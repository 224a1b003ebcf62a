// Package book defines the data model shared by all pipeline phases:
// raw source records, normalized records, entity keys, clusters, the
// canonical dim_book row, traceability rows and quality metrics.
//
// This package is pure data - it has no I/O dependencies. Serialization
// tags follow the standard-zone schema (Spanish column names inherited
// from the warehouse model).
package book

import (
	"encoding/json"
	"strings"
)

// Source identifiers used by the ingestion boundary. The pipeline itself
// accepts any non-empty source tag; these two get survivorship priority.
const (
	SourceGoodreads   = "goodreads"
	SourceGoogleBooks = "googlebooks"
)

// ListDelimiter separates multi-value fields in landing files
// ("autor1|autor2") and in traceability row values.
const ListDelimiter = "|"

// StringList is a list field that tolerates the shapes landing sources
// produce: a JSON array, a single scalar string, or a delimited string
// ("History|Naval|War"). It always unmarshals into a flat list.
type StringList []string

// UnmarshalJSON accepts an array of strings or a single (possibly
// delimited) string.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = SplitList(s)
	return nil
}

// SplitList splits a delimited string into trimmed non-empty elements.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ListDelimiter)
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

// RawRecord is one attribute bag as produced by a single source. All
// domain fields are optional; absent fields are nil, never placeholder
// strings (the ingestion boundary translates source sentinels before
// records reach the core). The core treats RawRecord as read-only input.
type RawRecord struct {
	// Source tags the record with its origin ("goodreads", "googlebooks").
	// Required; records without it are rejected before normalization.
	Source string `json:"source_name"`

	// RowNumber is the record's position in its landing file, kept for
	// traceability and deterministic ordering.
	RowNumber int `json:"row_number"`

	Title        *string    `json:"title"`
	Subtitle     *string    `json:"subtitle"`
	Author       *string    `json:"author"`
	Authors      StringList `json:"authors"`
	Publisher    *string    `json:"publisher"`
	PublishedAt  *string    `json:"published_date"`
	Language     *string    `json:"language"`
	ISBN10       *string    `json:"isbn10"`
	ISBN13       *string    `json:"isbn13"`
	Pages        *int       `json:"page_count"`
	Categories   StringList `json:"categories"`
	Price        *float64   `json:"price_amount"`
	Currency     *string    `json:"price_currency"`
	Rating       *float64   `json:"rating"`
	RatingsCount *int       `json:"ratings_count"`
	BookURL      *string    `json:"book_url"`
}

// DatePrecision records how much of a publication date the source
// actually supplied. Normalization pads dates to full ISO-8601 form, so
// the precision survives only here; it drives the "most precise wins"
// survivorship rule and is not part of the canonical output.
type DatePrecision int

const (
	PrecisionNone DatePrecision = iota
	PrecisionYear
	PrecisionMonth
	PrecisionDay
)

// NormalizedRecord is a RawRecord after normalization. Every non-nil
// field is in canonical form; fields that failed normalization are nil
// and listed in Failures. Display strings keep original casing, the
// *Norm forms are lower-cased/folded and used only for matching and key
// derivation.
type NormalizedRecord struct {
	Source    string
	RowNumber int

	Title         *string
	TitleNorm     *string
	Subtitle      *string
	MainAuthor    *string
	AuthorNorm    *string
	Authors       []string
	Publisher     *string
	PublisherNorm *string

	// PubDate is full ISO-8601 (YYYY-MM-DD); DatePrec records the
	// original granularity, PubYear its year component.
	PubDate  *string
	DatePrec DatePrecision
	PubYear  *int

	Language     *string
	ISBN10       *string
	ISBN13       *string
	Pages        *int
	Categories   []string
	Price        *float64
	Currency     *string
	Rating       *float64
	RatingsCount *int
	BookURL      *string

	// Failures lists fields that were present in the raw record but did
	// not survive normalization. Field-level, never fatal.
	Failures []string

	// Key is assigned by the identifier resolver after normalization.
	Key EntityKey
}

// FieldCount returns the number of populated domain fields. It decides
// the winning source during survivorship.
func (r *NormalizedRecord) FieldCount() int {
	var n int
	for _, present := range []bool{
		r.Title != nil,
		r.Subtitle != nil,
		r.MainAuthor != nil,
		len(r.Authors) > 0,
		r.Publisher != nil,
		r.PubDate != nil,
		r.PubYear != nil,
		r.Language != nil,
		r.ISBN10 != nil,
		r.ISBN13 != nil,
		r.Pages != nil,
		len(r.Categories) > 0,
		r.Price != nil,
		r.Currency != nil,
		r.Rating != nil,
		r.RatingsCount != nil,
	} {
		if present {
			n++
		}
	}
	return n
}
