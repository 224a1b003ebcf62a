// Package entitykey derives the entity key that decides whether two
// normalized records denote the same book.
//
// A validated ISBN-13 always wins: records sharing one are the same
// entity regardless of any other field. Records without a valid ISBN
// fall back to a deterministic UUID v5 digest over the normalized
// (title, author, publisher, year) tuple, so resolution never fails -
// there is no "unkeyable" record by construction. A set-level pass then
// promotes fallback keys whose tuple matches an ISBN-bearing record.
package entitykey

import (
	"strconv"
	"strings"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/google/uuid"
)

// keyNamespace seeds UUID v5 generation for secondary keys. Fixed
// namespace + same input tuple = same key on every run and host.
var keyNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("bookdim.dev"))

// Resolve returns exactly one entity key for a normalized record.
func Resolve(rec *book.NormalizedRecord) book.EntityKey {
	if rec.ISBN13 != nil {
		return book.EntityKey{Kind: book.KeyPrimary, Value: *rec.ISBN13}
	}
	return book.EntityKey{Kind: book.KeySecondary, Value: secondaryDigest(rec)}
}

// Promote upgrades secondary keys in place once all records are keyed.
// A record without a valid ISBN whose key tuple matches the tuple of an
// ISBN-bearing record denotes the same entity and adopts that record's
// primary key. When several ISBN-bearing records share a tuple the
// first in input order wins, so promotion is deterministic.
func Promote(recs []*book.NormalizedRecord) {
	byTuple := make(map[string]string)
	for _, rec := range recs {
		if !rec.Key.IsPrimary() {
			continue
		}
		if rec.TitleNorm == nil && rec.AuthorNorm == nil {
			continue
		}
		digest := secondaryDigest(rec)
		if _, ok := byTuple[digest]; !ok {
			byTuple[digest] = rec.Key.Value
		}
	}

	for _, rec := range recs {
		if rec.Key.IsPrimary() {
			continue
		}
		if isbn, ok := byTuple[rec.Key.Value]; ok {
			rec.Key = book.EntityKey{Kind: book.KeyPrimary, Value: isbn}
		}
	}
}

// secondaryDigest hashes the key tuple into a fixed-width UUID string.
// Missing components participate as empty tokens: two records both
// missing a year with otherwise identical tuples still join.
func secondaryDigest(rec *book.NormalizedRecord) string {
	parts := []string{
		deref(rec.TitleNorm),
		deref(rec.AuthorNorm),
		deref(rec.PublisherNorm),
		yearToken(rec.PubYear),
	}
	content := strings.Join(parts, "|")
	return uuid.NewSHA1(keyNamespace, []byte(content)).String()
}

func yearToken(y *int) string {
	if y == nil {
		return ""
	}
	return strconv.Itoa(*y)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
