package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes to NFD, removes combining marks and
// recomposes, so "Galdós" folds to "Galdos".
var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Display trims and whitespace-collapses a free-text field, preserving
// the original casing. Empty results become nil.
func Display(s *string) *string {
	if s == nil {
		return nil
	}
	out := CollapseSpace(*s)
	if out == "" {
		return nil
	}
	return &out
}

// CollapseSpace trims a string and collapses internal whitespace runs
// to single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold produces the matching form of a text field: diacritics stripped,
// lower-cased, whitespace collapsed. It is used for key derivation and
// duplicate detection, never shown to the end consumer.
func Fold(s string) string {
	folded, _, _ := transform.String(stripDiacritics, s)
	return CollapseSpace(strings.ToLower(folded))
}

// FoldTitle is Fold with punctuation reduced to spaces, so "Moby-Dick;
// or, The Whale" and "Moby Dick or the Whale" fold to the same key.
func FoldTitle(s string) string {
	folded, _, _ := transform.String(stripDiacritics, s)
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return CollapseSpace(b.String())
}

// List normalizes a list field into an ordered unique sequence:
// elements are trimmed, duplicates folded under case/whitespace
// insensitive equality, first-seen casing preserved.
func List(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	var res []string
	for _, v := range values {
		display := CollapseSpace(v)
		if display == "" {
			continue
		}
		key := Fold(display)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, display)
	}
	return res
}

// UnionLists merges list fields from several records into one ordered
// unique sequence under the same folded equality as List.
func UnionLists(lists ...[]string) []string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	return List(all)
}
