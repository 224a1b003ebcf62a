package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/bookdim/bookdim/pkg/pipeline"
	"github.com/cheggaaa/pb/v3"
	"github.com/jackc/pgx/v5"
)

var dimBookColumns = []string{
	"book_id", "titulo", "titulo_normalizado", "subtitulo",
	"autor_principal", "autor_normalizado", "autores", "editorial",
	"anio_publicacion", "fecha_publicacion", "idioma", "isbn10",
	"isbn13", "paginas", "categorias", "precio", "moneda", "rating",
	"ratings_count", "fuente_ganadora", "ts_ultima_actualizacion",
}

var traceColumns = []string{
	"book_id", "source_name", "row_number", "field", "value",
}

// copyBooks bulk-inserts the canonical dimension using the PostgreSQL
// COPY protocol.
func (l *loaderImpl) copyBooks(ctx context.Context, res *pipeline.Result) error {
	bar := pb.Full.Start(len(res.Canonical))
	bar.Set("prefix", "Loading dim_book: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	src := pgx.CopyFromSlice(len(res.Canonical), func(i int) ([]any, error) {
		rec := &res.Canonical[i]
		ts, err := time.Parse(time.RFC3339, rec.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("record %s: bad timestamp: %w", rec.BookID, err)
		}
		bar.Increment()
		return []any{
			rec.BookID, rec.Title, rec.TitleNorm, rec.Subtitle,
			rec.MainAuthor, rec.AuthorNorm, joinOrNil(rec.Authors),
			rec.Publisher, rec.PubYear, rec.PubDate, rec.Language,
			rec.ISBN10, rec.ISBN13, rec.Pages, joinOrNil(rec.Categories),
			rec.Price, rec.Currency, rec.Rating, rec.RatingsCount,
			rec.WinningSource, ts,
		}, nil
	})

	_, err := l.operator.Pool().CopyFrom(
		ctx, pgx.Identifier{"dim_book"}, dimBookColumns, src,
	)
	if err != nil {
		return fmt.Errorf("failed to copy dim_book rows: %w", err)
	}
	return nil
}

// copyTrace bulk-inserts the traceability detail.
func (l *loaderImpl) copyTrace(ctx context.Context, res *pipeline.Result) error {
	bar := pb.Full.Start(len(res.Trace))
	bar.Set("prefix", "Loading book_source_detail: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	src := pgx.CopyFromSlice(len(res.Trace), func(i int) ([]any, error) {
		row := &res.Trace[i]
		bar.Increment()
		return []any{
			row.BookID, row.Source, row.RowNumber, row.Field, row.Value,
		}, nil
	})

	_, err := l.operator.Pool().CopyFrom(
		ctx, pgx.Identifier{"book_source_detail"}, traceColumns, src,
	)
	if err != nil {
		return fmt.Errorf("failed to copy book_source_detail rows: %w", err)
	}
	return nil
}

func joinOrNil(vals []string) any {
	if len(vals) == 0 {
		return nil
	}
	return strings.Join(vals, book.ListDelimiter)
}
