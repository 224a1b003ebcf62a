package landing

import (
	"strconv"
	"strings"
)

// sentinels are the placeholder strings landing sources use for missing
// values. They are translated to nil at the ingestion boundary so the
// core never sees them.
var sentinels = map[string]struct{}{
	"": {}, "n/a": {}, "na": {}, "null": {}, "none": {}, "-": {},
}

func isSentinel(s string) bool {
	_, ok := sentinels[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// strPtr returns the trimmed string or nil for sentinels.
func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if isSentinel(s) {
		return nil
	}
	return &s
}

// intPtr parses an integer field, tolerating thousands separators.
// Sentinels and garbage both yield nil; normalization never sees a
// value the source did not supply.
func intPtr(s string) *int {
	s = strings.TrimSpace(s)
	if isSentinel(s) {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// floatPtr parses a float field with the same tolerance as intPtr.
func floatPtr(s string) *float64 {
	s = strings.TrimSpace(s)
	if isSentinel(s) {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
