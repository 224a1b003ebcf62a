package standard

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/bookdim/bookdim/pkg/pipeline"

	_ "modernc.org/sqlite"
)

const sqliteDDL = `
CREATE TABLE dim_book (
  book_id TEXT PRIMARY KEY,
  titulo TEXT,
  titulo_normalizado TEXT,
  subtitulo TEXT,
  autor_principal TEXT,
  autor_normalizado TEXT,
  autores TEXT,
  editorial TEXT,
  anio_publicacion INTEGER,
  fecha_publicacion TEXT,
  idioma TEXT,
  isbn10 TEXT,
  isbn13 TEXT,
  paginas INTEGER,
  categorias TEXT,
  precio REAL,
  moneda TEXT,
  rating REAL,
  ratings_count INTEGER,
  fuente_ganadora TEXT NOT NULL,
  ts_ultima_actualizacion TEXT NOT NULL
);

CREATE TABLE book_source_detail (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  book_id TEXT NOT NULL,
  source_name TEXT NOT NULL,
  row_number INTEGER NOT NULL,
  field TEXT NOT NULL,
  value TEXT NOT NULL
);

CREATE INDEX idx_detail_book_id ON book_source_detail (book_id);
`

// exportSQLite writes the run outputs to a single-file SQLite database
// for local ad hoc querying. A previous export at the path is replaced.
func exportSQLite(ctx context.Context, path string, res *pipeline.Result) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove previous export: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteDDL); err != nil {
		return fmt.Errorf("failed to create sqlite schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insBook, err := tx.PrepareContext(ctx, `INSERT INTO dim_book VALUES
  (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer insBook.Close()

	for i := range res.Canonical {
		rec := &res.Canonical[i]
		_, err = insBook.ExecContext(ctx,
			rec.BookID, rec.Title, rec.TitleNorm, rec.Subtitle,
			rec.MainAuthor, rec.AuthorNorm, joinOrNil(rec.Authors),
			rec.Publisher, rec.PubYear, rec.PubDate, rec.Language,
			rec.ISBN10, rec.ISBN13, rec.Pages, joinOrNil(rec.Categories),
			rec.Price, rec.Currency, rec.Rating, rec.RatingsCount,
			rec.WinningSource, rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert dim_book row %s: %w", rec.BookID, err)
		}
	}

	insTrace, err := tx.PrepareContext(ctx, `INSERT INTO book_source_detail
  (book_id, source_name, row_number, field, value) VALUES (?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer insTrace.Close()

	for _, row := range res.Trace {
		_, err = insTrace.ExecContext(ctx,
			row.BookID, row.Source, row.RowNumber, row.Field, row.Value,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trace row: %w", err)
		}
	}

	return tx.Commit()
}

func joinOrNil(vals []string) any {
	if len(vals) == 0 {
		return nil
	}
	return strings.Join(vals, book.ListDelimiter)
}
