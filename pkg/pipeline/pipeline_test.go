package pipeline_test

import (
	"context"
	"testing"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/bookdim/bookdim/pkg/config"
	"github.com/bookdim/bookdim/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string     { return &s }
func intp(n int) *int           { return &n }
func floatp(f float64) *float64 { return &f }

// Two sources describing the same book through different ISBN forms:
// the goodreads record carries the ISBN-10, googlebooks the ISBN-13.
// Conversion makes them share a primary key and collapse to one record.
func TestIntegrateISBNJoin(t *testing.T) {
	raws := []book.RawRecord{
		{
			Source:       book.SourceGoodreads,
			RowNumber:    1,
			Title:        strp("Six Frigates: The Epic History of the Founding of the U.S. Navy"),
			Author:       strp("Ian W. Toll"),
			PublishedAt:  strp("2006"),
			ISBN10:       strp("0760392749"),
			Rating:       floatp(4.27),
			RatingsCount: intp(9876),
		},
		{
			Source:      book.SourceGoogleBooks,
			RowNumber:   1,
			Title:       strp("Six Frigates"),
			Subtitle:    strp("The Epic History of the Founding of the U.S. Navy"),
			Authors:     book.StringList{"Ian Toll"},
			Publisher:   strp("W. W. Norton"),
			PublishedAt: strp("2006-10-17"),
			Language:    strp("en"),
			Pages:       intp(560),
			ISBN13:      strp("9780760392744"),
			Price:       floatp(18.99),
			Currency:    strp("USD"),
		},
	}

	res, err := pipeline.Integrate(context.Background(), config.Defaults(), raws)
	require.NoError(t, err)

	require.Len(t, res.Canonical, 1)
	rec := res.Canonical[0]

	assert.Equal(t, "9780760392744", rec.BookID)
	// Longest title survives, from goodreads.
	assert.Equal(t, *raws[0].Title, *rec.Title)
	// googlebooks details survive by priority.
	assert.Equal(t, "W. W. Norton", *rec.Publisher)
	assert.Equal(t, "2006-10-17", *rec.PubDate)
	assert.Equal(t, 560, *rec.Pages)
	// goodreads owns ratings.
	assert.Equal(t, 4.27, *rec.Rating)
	// ISBN-10 from goodreads, ISBN-13 native from googlebooks.
	assert.Equal(t, "0760392749", *rec.ISBN10)
	assert.Equal(t, "9780760392744", *rec.ISBN13)

	assert.Equal(t, 2, res.Metrics.RawRecords)
	assert.Equal(t, 1, res.Metrics.CanonicalRecords)
	assert.Equal(t, 1, res.Metrics.DuplicatesResolved)
	assert.Equal(t, len(res.Trace), res.Metrics.TraceRows)

	// Every trace row points at the canonical record.
	for _, row := range res.Trace {
		assert.Equal(t, rec.BookID, row.BookID)
	}
}

// A record without any ISBN still joins an ISBN-bearing record when
// the normalized (title, author, publisher, year) tuples match; the
// merged record keeps the ISBN-13 as its id.
func TestIntegrateKeyPromotion(t *testing.T) {
	raws := []book.RawRecord{
		{
			Source:      book.SourceGoogleBooks,
			RowNumber:   1,
			Title:       strp("Six Frigates"),
			Authors:     book.StringList{"Ian W. Toll"},
			PublishedAt: strp("2006-10-17"),
			ISBN13:      strp("9780760392744"),
		},
		{
			Source:       book.SourceGoodreads,
			RowNumber:    1,
			Title:        strp("Six Frigates"),
			Author:       strp("Ian W. Toll"),
			PublishedAt:  strp("2006"),
			Rating:       floatp(4.27),
			RatingsCount: intp(9876),
		},
	}

	res, err := pipeline.Integrate(context.Background(), config.Defaults(), raws)
	require.NoError(t, err)

	require.Len(t, res.Canonical, 1)
	rec := res.Canonical[0]
	assert.Equal(t, "9780760392744", rec.BookID)
	assert.Equal(t, "9780760392744", *rec.ISBN13)
	assert.Equal(t, 4.27, *rec.Rating)
	assert.Equal(t, 1, res.Metrics.DuplicatesResolved)
}

// Records without ISBNs join only through equal normalized tuples.
func TestIntegrateSecondaryKeyJoin(t *testing.T) {
	raws := []book.RawRecord{
		{
			Source:    book.SourceGoodreads,
			RowNumber: 1,
			Title:     strp("Cien años de soledad"),
			Author:    strp("Gabriel García Márquez"),
		},
		{
			Source:    book.SourceGoogleBooks,
			RowNumber: 1,
			Title:     strp("CIEN AÑOS DE SOLEDAD"),
			Authors:   book.StringList{"Gabriel Garcia Marquez"},
		},
		{
			Source:    book.SourceGoogleBooks,
			RowNumber: 2,
			Title:     strp("El coronel no tiene quien le escriba"),
			Authors:   book.StringList{"Gabriel Garcia Marquez"},
		},
	}

	res, err := pipeline.Integrate(context.Background(), config.Defaults(), raws)
	require.NoError(t, err)

	require.Len(t, res.Canonical, 2)
	assert.Equal(t, 1, res.Metrics.DuplicatesResolved)
}

// Distinct books stay distinct even with identical titles, as long as
// their ISBNs differ.
func TestIntegrateDistinctISBNs(t *testing.T) {
	raws := []book.RawRecord{
		{
			Source: book.SourceGoodreads, RowNumber: 1,
			Title: strp("Collected Works"), ISBN13: strp("9780760392744"),
		},
		{
			Source: book.SourceGoogleBooks, RowNumber: 1,
			Title: strp("Collected Works"), ISBN13: strp("9780441478125"),
		},
	}

	res, err := pipeline.Integrate(context.Background(), config.Defaults(), raws)
	require.NoError(t, err)
	assert.Len(t, res.Canonical, 2)
}

// Output is deterministic across runs and worker counts.
func TestIntegrateDeterministic(t *testing.T) {
	raws := []book.RawRecord{
		{Source: book.SourceGoodreads, RowNumber: 1, Title: strp("A"), ISBN13: strp("9780760392744")},
		{Source: book.SourceGoodreads, RowNumber: 2, Title: strp("B"), ISBN13: strp("9780441478125")},
		{Source: book.SourceGoogleBooks, RowNumber: 1, Title: strp("A longer"), ISBN13: strp("9780760392744")},
	}

	cfg1 := config.Defaults()
	cfg1.JobsNumber = 1
	cfg8 := config.Defaults()
	cfg8.JobsNumber = 8

	r1, err := pipeline.Integrate(context.Background(), cfg1, raws)
	require.NoError(t, err)
	r8, err := pipeline.Integrate(context.Background(), cfg8, raws)
	require.NoError(t, err)

	require.Equal(t, len(r1.Canonical), len(r8.Canonical))
	for i := range r1.Canonical {
		assert.Equal(t, r1.Canonical[i].BookID, r8.Canonical[i].BookID)
		assert.Equal(t, r1.Canonical[i].Title, r8.Canonical[i].Title)
	}
	require.Equal(t, len(r1.Trace), len(r8.Trace))
	for i := range r1.Trace {
		a, b := r1.Trace[i], r8.Trace[i]
		assert.Equal(t, a.Field, b.Field)
		assert.Equal(t, a.Source, b.Source)
		assert.Equal(t, a.Value, b.Value)
	}
}

func TestIntegrateMissingSource(t *testing.T) {
	raws := []book.RawRecord{
		{Source: book.SourceGoodreads, RowNumber: 1, Title: strp("Fine")},
		{RowNumber: 2, Title: strp("No source tag")},
	}

	_, err := pipeline.Integrate(context.Background(), config.Defaults(), raws)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1: missing source tag")
}

// A normalization failure never drops the record; it lands in the
// failure tally instead.
func TestIntegrateFieldFailureKeepsRecord(t *testing.T) {
	raws := []book.RawRecord{
		{
			Source: book.SourceGoodreads, RowNumber: 1,
			Title:       strp("Bad Date"),
			Author:      strp("Somebody"),
			PublishedAt: strp("not a date"),
		},
	}

	res, err := pipeline.Integrate(context.Background(), config.Defaults(), raws)
	require.NoError(t, err)
	require.Len(t, res.Canonical, 1)
	assert.Nil(t, res.Canonical[0].PubDate)
	assert.Equal(t, 1, res.Metrics.NormalizationFailures["fecha_publicacion"])
}
