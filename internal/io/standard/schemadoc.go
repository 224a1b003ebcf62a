package standard

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/bookdim/bookdim/pkg/pipeline"
	"github.com/bookdim/bookdim/pkg/templates"
)

type schemaDocData struct {
	Timestamp string
	Books     int
	TraceRows int
}

// writeSchemaDoc renders docs/schema.md from the embedded template so
// the documentation always matches the run that produced the files.
func (p *persisterImpl) writeSchemaDoc(res *pipeline.Result) error {
	tmpl, err := template.New("schema").Parse(templates.SchemaDoc)
	if err != nil {
		return fmt.Errorf("failed to parse schema template: %w", err)
	}

	path := filepath.Join(p.cfg.Standard.DocsDir, SchemaDocFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", SchemaDocFile, err)
	}
	defer f.Close()

	data := schemaDocData{
		Timestamp: res.Metrics.Timestamp,
		Books:     len(res.Canonical),
		TraceRows: len(res.Trace),
	}
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", SchemaDocFile, err)
	}

	slog.Info("Wrote schema documentation", "file", path)
	return nil
}
