package normalize

import "strings"

// CleanISBN strips everything except digits and X/x from an ISBN and
// upper-cases the check character. The result is not validated.
func CleanISBN(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'X' || r == 'x':
			b.WriteRune('X')
		}
	}
	return b.String()
}

// ValidateISBN10 checks a cleaned ISBN-10 with the mod-11 weighted
// checksum. The last position may be 'X' (value 10).
func ValidateISBN10(isbn string) bool {
	if len(isbn) != 10 {
		return false
	}

	var total int
	for i := range 9 {
		d := isbn[i]
		if d < '0' || d > '9' {
			return false
		}
		total += int(d-'0') * (10 - i)
	}

	last := isbn[9]
	switch {
	case last == 'X':
		total += 10
	case last >= '0' && last <= '9':
		total += int(last - '0')
	default:
		return false
	}

	return total%11 == 0
}

// ValidateISBN13 checks a cleaned ISBN-13 with the alternating 1/3
// weighted checksum.
func ValidateISBN13(isbn string) bool {
	if len(isbn) != 13 {
		return false
	}
	for i := range 13 {
		if isbn[i] < '0' || isbn[i] > '9' {
			return false
		}
	}
	return isbn13CheckDigit(isbn[:12]) == int(isbn[12]-'0')
}

// ISBN10To13 converts a valid ISBN-10 to its ISBN-13 equivalent: drop
// the ISBN-10 check digit, prefix "978", recompute the check digit.
// Returns false when the input is not a valid ISBN-10.
func ISBN10To13(isbn10 string) (string, bool) {
	isbn10 = CleanISBN(isbn10)
	if !ValidateISBN10(isbn10) {
		return "", false
	}

	base := "978" + isbn10[:9]
	return base + string(rune('0'+isbn13CheckDigit(base))), true
}

// isbn13CheckDigit computes the check digit for the first 12 digits of
// an ISBN-13. The input must be 12 ASCII digits.
func isbn13CheckDigit(digits12 string) int {
	var sum int
	for i := range 12 {
		d := int(digits12[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}
