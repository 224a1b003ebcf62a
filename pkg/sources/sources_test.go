package sources_test

import (
	"testing"

	"github.com/bookdim/bookdim/pkg/sources"
	"github.com/bookdim/bookdim/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func boolp(b bool) *bool { return &b }

func validRegistry() sources.Registry {
	return sources.Registry{
		Sources: []sources.Source{
			{Name: "goodreads", Format: sources.FormatJSON, File: "goodreads_books.json"},
			{Name: "googlebooks", Format: sources.FormatCSV, File: "googlebooks_books.csv"},
		},
	}
}

func TestValidate(t *testing.T) {
	reg := validRegistry()
	assert.NoError(t, reg.Validate())
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		msg    string
		mutate func(r *sources.Registry)
		want   string
	}{
		{
			msg:    "no sources",
			mutate: func(r *sources.Registry) { r.Sources = nil },
			want:   "no sources",
		},
		{
			msg:    "empty name",
			mutate: func(r *sources.Registry) { r.Sources[0].Name = "  " },
			want:   "name must not be empty",
		},
		{
			msg:    "duplicate name",
			mutate: func(r *sources.Registry) { r.Sources[1].Name = "goodreads" },
			want:   `duplicate name "goodreads"`,
		},
		{
			msg:    "unknown format",
			mutate: func(r *sources.Registry) { r.Sources[0].Format = "xml" },
			want:   `unknown format "xml"`,
		},
		{
			msg:    "empty file",
			mutate: func(r *sources.Registry) { r.Sources[1].File = "" },
			want:   "file must not be empty",
		},
	}

	for _, v := range tests {
		reg := validRegistry()
		v.mutate(&reg)
		err := reg.Validate()
		require.Error(t, err, v.msg)
		assert.Contains(t, err.Error(), v.want, v.msg)
	}
}

func TestEnabled(t *testing.T) {
	reg := validRegistry()
	reg.Sources[0].Enabled = boolp(false)

	enabled := reg.Enabled()
	require.Len(t, enabled, 1)
	assert.Equal(t, "googlebooks", enabled[0].Name)

	// Unset means enabled.
	assert.True(t, reg.Sources[1].IsEnabled())
	assert.False(t, reg.Sources[0].IsEnabled())
}

// The embedded default registry template must parse and validate.
func TestDefaultTemplate(t *testing.T) {
	var reg sources.Registry
	require.NoError(t, yaml.Unmarshal([]byte(templates.SourcesYAML), &reg))
	require.NoError(t, reg.Validate())

	require.Len(t, reg.Sources, 2)
	assert.Equal(t, "goodreads", reg.Sources[0].Name)
	assert.Equal(t, sources.FormatJSON, reg.Sources[0].Format)
	assert.Equal(t, "googlebooks", reg.Sources[1].Name)
	assert.Equal(t, sources.FormatCSV, reg.Sources[1].Format)
}
