package landing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bookdim/bookdim/pkg/book"
)

// readCSV reads a header-mapped CSV landing file. Columns are located
// by header name, so column order and extra columns do not matter.
// List columns (authors, categories) are pipe-delimited.
func readCSV(path, source string) ([]book.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open landing file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header %s: %w", path, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["title"]; !ok {
		return nil, fmt.Errorf("CSV file %s has no title column", path)
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var res []book.RawRecord
	line := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row in %s: %w", path, err)
		}
		line++

		rowNum := line
		if n := intPtr(field(row, "row_number")); n != nil {
			rowNum = *n
		}

		rec := book.RawRecord{
			Source:       source,
			RowNumber:    rowNum,
			Title:        strPtr(field(row, "title")),
			Subtitle:     strPtr(field(row, "subtitle")),
			Publisher:    strPtr(field(row, "publisher")),
			PublishedAt:  strPtr(field(row, "published_date")),
			Language:     strPtr(field(row, "language")),
			Pages:        intPtr(field(row, "page_count")),
			ISBN10:       strPtr(field(row, "isbn10")),
			ISBN13:       strPtr(field(row, "isbn13")),
			Price:        floatPtr(field(row, "price_amount")),
			Currency:     strPtr(field(row, "price_currency")),
			Rating:       floatPtr(field(row, "rating")),
			RatingsCount: intPtr(field(row, "ratings_count")),
		}
		if s := strPtr(field(row, "authors")); s != nil {
			rec.Authors = book.SplitList(*s)
		}
		if s := strPtr(field(row, "categories")); s != nil {
			rec.Categories = book.SplitList(*s)
		}
		res = append(res, rec)
	}
	return res, nil
}
