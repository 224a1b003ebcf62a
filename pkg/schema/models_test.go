package schema_test

import (
	"testing"
	"time"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/bookdim/bookdim/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestFromCanonical(t *testing.T) {
	year := 2006
	rec := book.CanonicalRecord{
		BookID:        "9780760392744",
		Title:         strp("Six Frigates"),
		Authors:       []string{"Ian Toll", "Ian W. Toll"},
		PubYear:       &year,
		Categories:    nil,
		WinningSource: book.SourceGoogleBooks,
		UpdatedAt:     "2026-08-28T12:00:00Z",
	}

	row, err := schema.FromCanonical(&rec)
	require.NoError(t, err)

	assert.Equal(t, "9780760392744", row.BookID)
	assert.Equal(t, "Six Frigates", *row.Titulo)
	require.NotNil(t, row.Autores)
	assert.Equal(t, "Ian Toll|Ian W. Toll", *row.Autores)
	assert.Nil(t, row.Categorias)
	assert.Equal(t, 2006, *row.Anio)
	assert.Equal(t, book.SourceGoogleBooks, row.FuenteGanadora)
	assert.Equal(t,
		time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		row.UpdatedAt.UTC(),
	)
}

func TestFromCanonicalBadTimestamp(t *testing.T) {
	rec := book.CanonicalRecord{BookID: "x", UpdatedAt: "yesterday"}
	_, err := schema.FromCanonical(&rec)
	require.Error(t, err)
}

func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	require.Len(t, models, 3)
	assert.IsType(t, &schema.DimBook{}, models[0])
	assert.IsType(t, &schema.BookSourceDetail{}, models[1])
	assert.IsType(t, &schema.QualityMetric{}, models[2])
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "dim_book", schema.DimBook{}.TableName())
	assert.Equal(t, "book_source_detail", schema.BookSourceDetail{}.TableName())
	assert.Equal(t, "quality_metrics", schema.QualityMetric{}.TableName())
}
