// Package lifecycle defines the interfaces between the CLI and the
// impure collaborators around the core pipeline: landing ingestion,
// standard-zone persistence and the warehouse load. Implementations
// live under internal/io.
package lifecycle

import (
	"context"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/bookdim/bookdim/pkg/pipeline"
)

// Ingestor reads raw records from the landing zone. It is responsible
// for translating source-specific sentinels ("N/A", empty strings) to
// null before the records reach the core.
type Ingestor interface {
	// Read loads all enabled landing sources and returns their records
	// in registry order with row numbers preserved.
	Read(ctx context.Context) ([]book.RawRecord, error)
}

// Persister writes the outputs of an integration run to the standard
// zone: the parquet tables, the quality metrics document and the
// generated schema documentation.
type Persister interface {
	Persist(ctx context.Context, res *pipeline.Result) error
}

// Loader copies standard-zone outputs into the PostgreSQL warehouse.
type Loader interface {
	// Load migrates the warehouse schema and bulk-inserts the run's
	// canonical and traceability rows, replacing previous content.
	Load(ctx context.Context, res *pipeline.Result) error
}
