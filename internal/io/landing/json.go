package landing

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bookdim/bookdim/pkg/book"
)

// looseString decodes a JSON string, number or null into its textual
// form. Scraped envelopes are inconsistent about quoting numerics.
type looseString string

func (l *looseString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = looseString(s)
		return nil
	}
	*l = looseString(data)
	return nil
}

// jsonEnvelope is the scrape output shape: a single "books" array.
type jsonEnvelope struct {
	Books []jsonRow `json:"books"`
}

type jsonRow struct {
	RowNumber     int         `json:"row_number"`
	Title         looseString `json:"title"`
	Author        looseString `json:"author"`
	Rating        looseString `json:"rating"`
	RatingsCount  looseString `json:"ratings_count"`
	PublishedYear looseString `json:"published_year"`
	ISBN10        looseString `json:"isbn10"`
	ISBN13        looseString `json:"isbn13"`
	BookURL       looseString `json:"book_url"`
}

// readJSON reads a JSON-envelope landing file and tags records with the
// source name. Row numbers from the file are preserved; missing ones
// fall back to the array position.
func readJSON(path, source string) ([]book.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read landing file: %w", err)
	}

	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed JSON envelope %s: %w", path, err)
	}

	res := make([]book.RawRecord, len(env.Books))
	for i, row := range env.Books {
		rowNum := row.RowNumber
		if rowNum == 0 {
			rowNum = i + 1
		}
		res[i] = book.RawRecord{
			Source:       source,
			RowNumber:    rowNum,
			Title:        strPtr(string(row.Title)),
			Author:       strPtr(string(row.Author)),
			Rating:       floatPtr(string(row.Rating)),
			RatingsCount: intPtr(string(row.RatingsCount)),
			PublishedAt:  strPtr(string(row.PublishedYear)),
			ISBN10:       strPtr(string(row.ISBN10)),
			ISBN13:       strPtr(string(row.ISBN13)),
			BookURL:      strPtr(string(row.BookURL)),
		}
	}
	return res, nil
}
