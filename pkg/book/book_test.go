package book_test

import (
	"encoding/json"
	"testing"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		msg string
		in  string
		out []string
	}{
		{"array", `["a","b"]`, []string{"a", "b"}},
		{"single string", `"History"`, []string{"History"}},
		{"delimited string", `"History|Naval|War"`, []string{"History", "Naval", "War"}},
		{"delimited with spaces", `" History | Naval "`, []string{"History", "Naval"}},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
	}

	for _, v := range tests {
		var l book.StringList
		err := json.Unmarshal([]byte(v.in), &l)
		require.NoError(t, err, v.msg)
		assert.Equal(t, book.StringList(v.out), l, v.msg)
	}

	var l book.StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &l))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, book.SplitList("a|b"))
	assert.Equal(t, []string{"a"}, book.SplitList(" a "))
	assert.Nil(t, book.SplitList("  "))
	assert.Equal(t, []string{"a"}, book.SplitList("a||"))
}

func TestFieldCount(t *testing.T) {
	var empty book.NormalizedRecord
	assert.Zero(t, empty.FieldCount())

	year := 2006
	rec := book.NormalizedRecord{
		Title:   strp("T"),
		Authors: []string{"A"},
		PubYear: &year,
	}
	assert.Equal(t, 3, rec.FieldCount())

	// Norm forms and failures do not count as domain fields.
	rec.TitleNorm = strp("t")
	rec.Failures = []string{"idioma"}
	assert.Equal(t, 3, rec.FieldCount())
}

func TestEntityKey(t *testing.T) {
	var zero book.EntityKey
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsPrimary())

	k := book.EntityKey{Kind: book.KeyPrimary, Value: "9780760392744"}
	assert.False(t, k.IsZero())
	assert.True(t, k.IsPrimary())
	assert.Equal(t, "9780760392744", k.String())
}
