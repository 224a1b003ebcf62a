package normalize_test

import (
	"testing"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/bookdim/bookdim/pkg/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestDate(t *testing.T) {
	tests := []struct {
		msg  string
		in   string
		iso  string
		prec book.DatePrecision
		ok   bool
	}{
		{"year only", "2025", "2025-01-01", book.PrecisionYear, true},
		{"year-month", "2021-07", "2021-07-01", book.PrecisionMonth, true},
		{"full date", "2021-07-15", "2021-07-15", book.PrecisionDay, true},
		{"padded input", "  1999  ", "1999-01-01", book.PrecisionYear, true},
		{"textual full", "July 4, 1988", "1988-07-04", book.PrecisionDay, true},
		{"textual month", "July 1988", "1988-07-01", book.PrecisionMonth, true},
		{"impossible month", "2021-13", "", book.PrecisionNone, false},
		{"impossible day", "2021-02-30", "", book.PrecisionNone, false},
		{"garbage", "unknown", "", book.PrecisionNone, false},
		{"empty", "", "", book.PrecisionNone, false},
	}

	for _, v := range tests {
		iso, prec, ok := normalize.Date(v.in)
		assert.Equal(t, v.ok, ok, v.msg)
		assert.Equal(t, v.iso, iso, v.msg)
		assert.Equal(t, v.prec, prec, v.msg)
	}
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		msg string
		in  string
		out string
		ok  bool
	}{
		{"two letter", "en", "en", true},
		{"upper case", "EN", "en", true},
		{"three letter", "spa", "spa", true},
		{"with region", "pt-BR", "pt-br", true},
		{"full name rejected", "English", "", false},
		{"empty", "", "", false},
	}

	for _, v := range tests {
		out, ok := normalize.Language(v.in)
		assert.Equal(t, v.ok, ok, v.msg)
		assert.Equal(t, v.out, out, v.msg)
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		msg string
		in  string
		out string
		ok  bool
	}{
		{"known code", "USD", "USD", true},
		{"lower case", "eur", "EUR", true},
		{"unknown but shaped", "XTS", "XTS", true},
		{"symbol", "$", "", false},
		{"too long", "DOLLAR", "", false},
	}

	for _, v := range tests {
		out, ok := normalize.Currency(v.in)
		assert.Equal(t, v.ok, ok, v.msg)
		assert.Equal(t, v.out, out, v.msg)
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		msg string
		in  string
		out string
	}{
		{"diacritics", "Galdós", "galdos"},
		{"case and space", "  JANE   Austen ", "jane austen"},
		{"already folded", "war and peace", "war and peace"},
	}

	for _, v := range tests {
		assert.Equal(t, v.out, normalize.Fold(v.in), v.msg)
	}
}

func TestFoldTitle(t *testing.T) {
	tests := []struct {
		msg string
		in  string
		out string
	}{
		{"punctuation", "Moby-Dick; or, The Whale", "moby dick or the whale"},
		{"accents", "Cien Años de Soledad", "cien anos de soledad"},
		{"colon subtitle", "Dune: Messiah", "dune messiah"},
	}

	for _, v := range tests {
		assert.Equal(t, v.out, normalize.FoldTitle(v.in), v.msg)
	}
}

func TestFoldIdempotent(t *testing.T) {
	inputs := []string{"Galdós", "  MOBY-Dick ", "José María", "plain"}
	for _, s := range inputs {
		once := normalize.Fold(s)
		assert.Equal(t, once, normalize.Fold(once), s)

		onceT := normalize.FoldTitle(s)
		assert.Equal(t, onceT, normalize.FoldTitle(onceT), s)
	}
}

func TestList(t *testing.T) {
	got := normalize.List([]string{" J. R. R. Tolkien", "j. r. r. tolkien", "", "C. Tolkien"})
	assert.Equal(t, []string{"J. R. R. Tolkien", "C. Tolkien"}, got)

	assert.Nil(t, normalize.List(nil))
}

func TestUnionLists(t *testing.T) {
	got := normalize.UnionLists(
		[]string{"History", "Naval"},
		[]string{"naval", "War"},
	)
	assert.Equal(t, []string{"History", "Naval", "War"}, got)
}

func TestRecord(t *testing.T) {
	raw := book.RawRecord{
		Source:      book.SourceGoogleBooks,
		RowNumber:   7,
		Title:       strp("  The  Left Hand of Darkness "),
		Authors:     book.StringList{"Ursula K. Le Guin"},
		Publisher:   strp("Ace Books"),
		PublishedAt: strp("1969"),
		Language:    strp("EN"),
		ISBN10:      strp("0-441-47812-3"),
		Currency:    strp("usd"),
	}

	rec := normalize.Record(raw)

	require.NotNil(t, rec.Title)
	assert.Equal(t, "The Left Hand of Darkness", *rec.Title)
	require.NotNil(t, rec.TitleNorm)
	assert.Equal(t, "the left hand of darkness", *rec.TitleNorm)

	// Main author falls back to the first list element.
	require.NotNil(t, rec.MainAuthor)
	assert.Equal(t, "Ursula K. Le Guin", *rec.MainAuthor)
	require.NotNil(t, rec.AuthorNorm)
	assert.Equal(t, "ursula k. le guin", *rec.AuthorNorm)

	require.NotNil(t, rec.PubDate)
	assert.Equal(t, "1969-01-01", *rec.PubDate)
	assert.Equal(t, book.PrecisionYear, rec.DatePrec)
	require.NotNil(t, rec.PubYear)
	assert.Equal(t, 1969, *rec.PubYear)

	require.NotNil(t, rec.Language)
	assert.Equal(t, "en", *rec.Language)
	require.NotNil(t, rec.Currency)
	assert.Equal(t, "USD", *rec.Currency)

	require.NotNil(t, rec.ISBN10)
	assert.Equal(t, "0441478123", *rec.ISBN10)
	// ISBN-13 derived from the valid ISBN-10.
	require.NotNil(t, rec.ISBN13)
	assert.Equal(t, "9780441478125", *rec.ISBN13)

	assert.Empty(t, rec.Failures)
}

func TestRecordFailures(t *testing.T) {
	raw := book.RawRecord{
		Source:      book.SourceGoodreads,
		RowNumber:   1,
		Title:       strp("Broken Fields"),
		PublishedAt: strp("sometime"),
		Language:    strp("English"),
		Currency:    strp("$"),
		ISBN10:      strp("1234567890"),
		ISBN13:      strp("9999999999999"),
	}

	rec := normalize.Record(raw)

	assert.Nil(t, rec.PubDate)
	assert.Nil(t, rec.Language)
	assert.Nil(t, rec.Currency)
	assert.Nil(t, rec.ISBN10)
	assert.Nil(t, rec.ISBN13)

	assert.ElementsMatch(t, []string{
		normalize.FieldDate,
		normalize.FieldLanguage,
		normalize.FieldCurrency,
		normalize.FieldISBN10,
		normalize.FieldISBN13,
	}, rec.Failures)
}
