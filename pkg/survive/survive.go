// Package survive reduces each entity cluster to one canonical record
// plus its field-level provenance.
//
// Survivorship rules are applied independently per field - no single
// source wins the whole record. Source priority for tie-breaks is
// googlebooks > goodreads > anything else; rating fields invert it
// because only Goodreads observes ratings. A rule never assumes a field
// exists on a given member: absence means "no contribution from this
// source", never an error.
package survive

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/bookdim/bookdim/pkg/normalize"
)

// Traceability field names, matching standard-zone column names.
const (
	fieldTitle      = "titulo"
	fieldSubtitle   = "subtitulo"
	fieldMainAuthor = "autor_principal"
	fieldAuthors    = "autores"
	fieldPublisher  = "editorial"
	fieldPubDate    = "fecha_publicacion"
	fieldLanguage   = "idioma"
	fieldISBN10     = "isbn10"
	fieldISBN13     = "isbn13"
	fieldPages      = "paginas"
	fieldCategories = "categorias"
	fieldPrice      = "precio"
	fieldCurrency   = "moneda"
	fieldRating     = "rating"
	fieldRatings    = "ratings_count"
)

// sourceRank orders sources for tie-breaking: Google Books carries the
// richer bibliographic detail, Goodreads comes second, unknown sources
// last (among themselves in lexical order via the sort below).
func sourceRank(source string) int {
	switch source {
	case book.SourceGoogleBooks:
		return 0
	case book.SourceGoodreads:
		return 1
	default:
		return 2
	}
}

// ratingRank inverts the priority for rating fields, where Goodreads is
// the authoritative source.
func ratingRank(source string) int {
	switch source {
	case book.SourceGoodreads:
		return 0
	case book.SourceGoogleBooks:
		return 1
	default:
		return 2
	}
}

// Merge collapses one cluster into its canonical record and the
// traceability rows recording which source supplied each surviving
// value. An empty cluster is a programmer error: clusters are built
// only from non-empty groups, so this path must stay unreachable.
func Merge(
	c book.Cluster, runTS time.Time,
) (book.CanonicalRecord, []book.TraceabilityRow, error) {
	if len(c.Members) == 0 {
		return book.CanonicalRecord{}, nil,
			fmt.Errorf("cluster %q has no members", c.Key.Value)
	}

	byPriority := orderBy(c.Members, sourceRank)
	byRating := orderBy(c.Members, ratingRank)

	rec := book.CanonicalRecord{
		BookID:    c.Key.String(),
		UpdatedAt: runTS.Format(time.RFC3339),
	}
	var trace []book.TraceabilityRow
	emit := func(m *book.NormalizedRecord, field, value string) {
		trace = append(trace, book.TraceabilityRow{
			BookID:    rec.BookID,
			Source:    m.Source,
			RowNumber: m.RowNumber,
			Field:     field,
			Value:     value,
		})
	}

	// Title: longest display string, ties broken by source priority
	// (byPriority iteration order plus strictly-greater comparison).
	if m := longestTitle(byPriority); m != nil {
		rec.Title = m.Title
		rec.TitleNorm = m.TitleNorm
		emit(m, fieldTitle, *m.Title)
	}

	if m := first(byPriority, func(r *book.NormalizedRecord) bool { return r.Subtitle != nil }); m != nil {
		rec.Subtitle = m.Subtitle
		emit(m, fieldSubtitle, *m.Subtitle)
	}

	if m := first(byPriority, func(r *book.NormalizedRecord) bool { return r.MainAuthor != nil }); m != nil {
		rec.MainAuthor = m.MainAuthor
		rec.AuthorNorm = m.AuthorNorm
		emit(m, fieldMainAuthor, *m.MainAuthor)
	}

	// Authors and categories merge as unions: every distinct folded
	// value from any member survives, first-seen casing preserved.
	rec.Authors = unionField(byPriority, fieldAuthors, emit,
		func(r *book.NormalizedRecord) []string { return r.Authors })
	rec.Categories = unionField(byPriority, fieldCategories, emit,
		func(r *book.NormalizedRecord) []string { return r.Categories })

	if m := first(byPriority, func(r *book.NormalizedRecord) bool { return r.Publisher != nil }); m != nil {
		rec.Publisher = m.Publisher
		emit(m, fieldPublisher, *m.Publisher)
	}

	// Publication date: most precise available wins, priority breaks
	// ties between equally precise dates.
	if m := mostPreciseDate(byPriority); m != nil {
		rec.PubDate = m.PubDate
		rec.PubYear = m.PubYear
		emit(m, fieldPubDate, *m.PubDate)
	}

	if m := first(byPriority, func(r *book.NormalizedRecord) bool { return r.Language != nil }); m != nil {
		rec.Language = m.Language
		emit(m, fieldLanguage, *m.Language)
	}

	// ISBNs: first valid non-null value in cluster order. Members with
	// ISBNs already agree by construction (a shared valid ISBN-13 is
	// the cluster key); disagreement is an input-quality issue outside
	// this component's remit.
	if m := first(c.Members, func(r *book.NormalizedRecord) bool { return r.ISBN10 != nil }); m != nil {
		rec.ISBN10 = m.ISBN10
		emit(m, fieldISBN10, *m.ISBN10)
	}
	if m := first(c.Members, func(r *book.NormalizedRecord) bool { return r.ISBN13 != nil }); m != nil {
		rec.ISBN13 = m.ISBN13
		emit(m, fieldISBN13, *m.ISBN13)
	}

	if m := first(byPriority, func(r *book.NormalizedRecord) bool { return r.Pages != nil }); m != nil {
		rec.Pages = m.Pages
		emit(m, fieldPages, strconv.Itoa(*m.Pages))
	}

	// Price and currency travel together: the member that supplies the
	// price also supplies the currency when it has one.
	if m := first(byPriority, func(r *book.NormalizedRecord) bool { return r.Price != nil }); m != nil {
		rec.Price = m.Price
		emit(m, fieldPrice, formatFloat(*m.Price))
		if m.Currency != nil {
			rec.Currency = m.Currency
			emit(m, fieldCurrency, *m.Currency)
		}
	}
	if rec.Currency == nil {
		if m := first(byPriority, func(r *book.NormalizedRecord) bool { return r.Currency != nil }); m != nil {
			rec.Currency = m.Currency
			emit(m, fieldCurrency, *m.Currency)
		}
	}

	if m := first(byRating, func(r *book.NormalizedRecord) bool { return r.Rating != nil }); m != nil {
		rec.Rating = m.Rating
		emit(m, fieldRating, formatFloat(*m.Rating))
	}
	if m := first(byRating, func(r *book.NormalizedRecord) bool { return r.RatingsCount != nil }); m != nil {
		rec.RatingsCount = m.RatingsCount
		emit(m, fieldRatings, strconv.Itoa(*m.RatingsCount))
	}

	rec.WinningSource = winningSource(c.Members)

	return rec, trace, nil
}

// orderBy returns members sorted by the given source rank, then source
// name, then row number. The cluster's own member slice is not touched.
func orderBy(
	members []*book.NormalizedRecord, rank func(string) int,
) []*book.NormalizedRecord {
	out := make([]*book.NormalizedRecord, len(members))
	copy(out, members)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i].Source), rank(out[j].Source)
		if ri != rj {
			return ri < rj
		}
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].RowNumber < out[j].RowNumber
	})
	return out
}

func first(
	members []*book.NormalizedRecord, has func(*book.NormalizedRecord) bool,
) *book.NormalizedRecord {
	for _, m := range members {
		if has(m) {
			return m
		}
	}
	return nil
}

func longestTitle(byPriority []*book.NormalizedRecord) *book.NormalizedRecord {
	var best *book.NormalizedRecord
	for _, m := range byPriority {
		if m.Title == nil {
			continue
		}
		if best == nil || len(*m.Title) > len(*best.Title) {
			best = m
		}
	}
	return best
}

func mostPreciseDate(byPriority []*book.NormalizedRecord) *book.NormalizedRecord {
	var best *book.NormalizedRecord
	for _, m := range byPriority {
		if m.PubDate == nil {
			continue
		}
		if best == nil || m.DatePrec > best.DatePrec {
			best = m
		}
	}
	return best
}

func unionField(
	byPriority []*book.NormalizedRecord,
	field string,
	emit func(*book.NormalizedRecord, string, string),
	get func(*book.NormalizedRecord) []string,
) []string {
	lists := make([][]string, 0, len(byPriority))
	for _, m := range byPriority {
		vals := get(m)
		if len(vals) == 0 {
			continue
		}
		lists = append(lists, vals)
		emit(m, field, strings.Join(vals, book.ListDelimiter))
	}
	return normalize.UnionLists(lists...)
}

// winningSource picks the source whose best record populated the most
// fields before the merge. Equal counts fall back to lexical order of
// the source identifier to keep the choice deterministic.
func winningSource(members []*book.NormalizedRecord) string {
	counts := make(map[string]int)
	for _, m := range members {
		n := m.FieldCount()
		if cur, ok := counts[m.Source]; !ok || n > cur {
			counts[m.Source] = n
		}
	}

	var winner string
	best := -1
	for source, n := range counts {
		if n > best || (n == best && source < winner) {
			winner = source
			best = n
		}
	}
	return winner
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
