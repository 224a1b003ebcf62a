// Package templates provides embedded file templates.
package templates

import _ "embed"

// SourcesYAML contains the default sources.yaml registry template for
// landing-zone sources.
//
//go:embed sources.yaml
var SourcesYAML string

// SchemaDoc contains the text/template source for the generated
// standard-zone schema documentation.
//
//go:embed schema.md.tmpl
var SchemaDoc string
