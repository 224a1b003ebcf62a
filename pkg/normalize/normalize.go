// Package normalize converts loosely typed raw source records into the
// fixed-shape normalized form the rest of the pipeline operates on.
//
// The contract is total: normalization never fails for malformed input.
// A field that cannot be parsed into its canonical representation
// becomes nil and is recorded as a field-level failure on the record;
// the record itself always survives.
//
// This is a pure package - parsing is computation, not I/O.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bookdim/bookdim/pkg/book"
)

// Field names used in failure tallies and traceability rows. They match
// the standard-zone column names.
const (
	FieldDate     = "fecha_publicacion"
	FieldLanguage = "idioma"
	FieldCurrency = "moneda"
	FieldISBN10   = "isbn10"
	FieldISBN13   = "isbn13"
)

var (
	reYear      = regexp.MustCompile(`^\d{4}$`)
	reYearMonth = regexp.MustCompile(`^\d{4}-\d{2}$`)
	reFullDate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reLanguage  = regexp.MustCompile(`^[a-z]{2,3}(-[a-z0-9]{2,8})*$`)
	reCurrency  = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Free-text date layouts tried after the ISO shapes fail.
var textualDateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"January 2006",
}

// Record normalizes one raw record. Every field that normalizes
// successfully is non-nil and in canonical form; fields that fail are
// nil and listed in Failures. The raw record is not modified.
func Record(raw book.RawRecord) book.NormalizedRecord {
	rec := book.NormalizedRecord{
		Source:    raw.Source,
		RowNumber: raw.RowNumber,
	}

	rec.Title = Display(raw.Title)
	rec.TitleNorm = foldPtr(rec.Title, FoldTitle)
	rec.Subtitle = Display(raw.Subtitle)
	rec.Publisher = Display(raw.Publisher)
	rec.PublisherNorm = foldPtr(rec.Publisher, Fold)

	rec.Authors = List(raw.Authors)
	rec.MainAuthor = Display(raw.Author)
	if rec.MainAuthor == nil && len(rec.Authors) > 0 {
		rec.MainAuthor = &rec.Authors[0]
	}
	rec.AuthorNorm = foldPtr(rec.MainAuthor, Fold)

	rec.Categories = List(raw.Categories)

	if raw.PublishedAt != nil {
		iso, prec, ok := Date(*raw.PublishedAt)
		if ok {
			year := mustYear(iso)
			rec.PubDate = &iso
			rec.DatePrec = prec
			rec.PubYear = &year
		} else {
			rec.Failures = append(rec.Failures, FieldDate)
		}
	}

	if raw.Language != nil {
		if lang, ok := Language(*raw.Language); ok {
			rec.Language = &lang
		} else {
			rec.Failures = append(rec.Failures, FieldLanguage)
		}
	}

	if raw.Currency != nil {
		if cur, ok := Currency(*raw.Currency); ok {
			rec.Currency = &cur
		} else {
			rec.Failures = append(rec.Failures, FieldCurrency)
		}
	}

	normalizeISBNs(raw, &rec)

	rec.Pages = raw.Pages
	rec.Price = raw.Price
	rec.Rating = raw.Rating
	rec.RatingsCount = raw.RatingsCount
	rec.BookURL = Display(raw.BookURL)

	return rec
}

// normalizeISBNs validates both ISBN fields and derives ISBN-13 from a
// valid ISBN-10 when the source supplied no valid ISBN-13 of its own.
func normalizeISBNs(raw book.RawRecord, rec *book.NormalizedRecord) {
	if raw.ISBN10 != nil {
		cleaned := CleanISBN(*raw.ISBN10)
		if ValidateISBN10(cleaned) {
			rec.ISBN10 = &cleaned
		} else {
			rec.Failures = append(rec.Failures, FieldISBN10)
		}
	}

	if raw.ISBN13 != nil {
		cleaned := CleanISBN(*raw.ISBN13)
		if ValidateISBN13(cleaned) {
			rec.ISBN13 = &cleaned
		} else {
			rec.Failures = append(rec.Failures, FieldISBN13)
		}
	}

	if rec.ISBN13 == nil && rec.ISBN10 != nil {
		if conv, ok := ISBN10To13(*rec.ISBN10); ok {
			rec.ISBN13 = &conv
		}
	}
}

// Date parses a flexible date input into full ISO-8601 (YYYY-MM-DD).
// Year-only input gets month and day defaulted to 01, year-month input
// gets day defaulted to 01. The returned precision records the original
// granularity; the padded output itself does not flag it.
func Date(s string) (string, book.DatePrecision, bool) {
	s = strings.TrimSpace(s)

	switch {
	case reYear.MatchString(s):
		if _, err := time.Parse("2006", s); err != nil {
			return "", book.PrecisionNone, false
		}
		return s + "-01-01", book.PrecisionYear, true
	case reYearMonth.MatchString(s):
		if _, err := time.Parse("2006-01", s); err != nil {
			return "", book.PrecisionNone, false
		}
		return s + "-01", book.PrecisionMonth, true
	case reFullDate.MatchString(s):
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return "", book.PrecisionNone, false
		}
		return s, book.PrecisionDay, true
	}

	for _, layout := range textualDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		prec := book.PrecisionDay
		if !strings.Contains(layout, "2,") && !strings.Contains(layout, "2 ") {
			prec = book.PrecisionMonth
		}
		return t.Format("2006-01-02"), prec, true
	}

	return "", book.PrecisionNone, false
}

// Language validates a language tag against the BCP-47 shape: a 2-3
// letter primary subtag with optional region/script subtags. The result
// is lower-cased. Unrecognized input fails.
func Language(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !reLanguage.MatchString(s) {
		return "", false
	}
	return s, true
}

// iso4217 lists currency codes the sources are known to emit. Codes
// outside the set still pass on shape alone; the set catches common
// lower-case and symbol variants early.
var iso4217 = map[string]struct{}{
	"USD": {}, "EUR": {}, "GBP": {}, "JPY": {}, "AUD": {}, "CAD": {},
	"CHF": {}, "CNY": {}, "SEK": {}, "NZD": {}, "MXN": {}, "BRL": {},
	"ARS": {}, "CLP": {},
}

// Currency validates a currency code against ISO-4217: upper-cased,
// three letters. Unrecognized input fails.
func Currency(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if _, ok := iso4217[s]; ok {
		return s, true
	}
	if reCurrency.MatchString(s) {
		return s, true
	}
	return "", false
}

func mustYear(iso string) int {
	var y int
	fmt.Sscanf(iso, "%4d", &y)
	return y
}

func foldPtr(s *string, fold func(string) string) *string {
	if s == nil {
		return nil
	}
	folded := fold(*s)
	if folded == "" {
		return nil
	}
	return &folded
}
