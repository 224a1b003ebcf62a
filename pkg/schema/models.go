// Package schema provides the warehouse table models for bookdim.
// The column names mirror the standard-zone parquet schema so analysts
// see one vocabulary whether they query files or the warehouse.
package schema

import (
	"strings"
	"time"

	"github.com/bookdim/bookdim/pkg/book"
)

// DimBook is one canonical book row in the warehouse. List fields are
// stored pipe-delimited, matching the landing convention.
type DimBook struct {
	// BookID is the entity key's string form: 13 ISBN digits or a
	// 36-character UUID digest.
	BookID string `gorm:"column:book_id;primaryKey;size:36"`

	Titulo       *string  `gorm:"column:titulo;type:text"`
	TituloNorm   *string  `gorm:"column:titulo_normalizado;type:text"`
	Subtitulo    *string  `gorm:"column:subtitulo;type:text"`
	AutorPrinc   *string  `gorm:"column:autor_principal;type:text"`
	AutorNorm    *string  `gorm:"column:autor_normalizado;type:text"`
	Autores      *string  `gorm:"column:autores;type:text"`
	Editorial    *string  `gorm:"column:editorial;type:text"`
	Anio         *int     `gorm:"column:anio_publicacion"`
	Fecha        *string  `gorm:"column:fecha_publicacion;size:10"`
	Idioma       *string  `gorm:"column:idioma;size:16"`
	ISBN10       *string  `gorm:"column:isbn10;size:10"`
	ISBN13       *string  `gorm:"column:isbn13;size:13"`
	Paginas      *int     `gorm:"column:paginas"`
	Categorias   *string  `gorm:"column:categorias;type:text"`
	Precio       *float64 `gorm:"column:precio"`
	Moneda       *string  `gorm:"column:moneda;size:3"`
	Rating       *float64 `gorm:"column:rating"`
	RatingsCount *int     `gorm:"column:ratings_count"`

	FuenteGanadora string    `gorm:"column:fuente_ganadora;size:32;index"`
	UpdatedAt      time.Time `gorm:"column:ts_ultima_actualizacion"`
}

// TableName overrides GORM's pluralized default.
func (DimBook) TableName() string { return "dim_book" }

// BookSourceDetail is one traceability row: which source supplied which
// field value that survived into the canonical record.
type BookSourceDetail struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement"`
	BookID     string `gorm:"column:book_id;size:36;index"`
	SourceName string `gorm:"column:source_name;size:32"`
	RowNumber  int    `gorm:"column:row_number"`
	Field      string `gorm:"column:field;size:32"`
	Value      string `gorm:"column:value;type:text"`
}

// TableName overrides GORM's pluralized default.
func (BookSourceDetail) TableName() string { return "book_source_detail" }

// QualityMetric is one metric of a run's quality snapshot, flattened to
// (run, metric, value) rows for SQL consumption.
type QualityMetric struct {
	ID     uint      `gorm:"column:id;primaryKey;autoIncrement"`
	RunTS  time.Time `gorm:"column:run_ts;index"`
	Metric string    `gorm:"column:metric;size:64"`
	Value  string    `gorm:"column:value;size:64"`
}

// TableName overrides GORM's pluralized default.
func (QualityMetric) TableName() string { return "quality_metrics" }

// FromCanonical converts a canonical record to its warehouse row.
func FromCanonical(rec *book.CanonicalRecord) (DimBook, error) {
	ts, err := time.Parse(time.RFC3339, rec.UpdatedAt)
	if err != nil {
		return DimBook{}, err
	}

	return DimBook{
		BookID:         rec.BookID,
		Titulo:         rec.Title,
		TituloNorm:     rec.TitleNorm,
		Subtitulo:      rec.Subtitle,
		AutorPrinc:     rec.MainAuthor,
		AutorNorm:      rec.AuthorNorm,
		Autores:        joinList(rec.Authors),
		Editorial:      rec.Publisher,
		Anio:           rec.PubYear,
		Fecha:          rec.PubDate,
		Idioma:         rec.Language,
		ISBN10:         rec.ISBN10,
		ISBN13:         rec.ISBN13,
		Paginas:        rec.Pages,
		Categorias:     joinList(rec.Categories),
		Precio:         rec.Price,
		Moneda:         rec.Currency,
		Rating:         rec.Rating,
		RatingsCount:   rec.RatingsCount,
		FuenteGanadora: rec.WinningSource,
		UpdatedAt:      ts,
	}, nil
}

func joinList(vals []string) *string {
	if len(vals) == 0 {
		return nil
	}
	s := strings.Join(vals, book.ListDelimiter)
	return &s
}
