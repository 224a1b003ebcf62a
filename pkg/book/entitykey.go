package book

// KeyKind distinguishes ISBN-backed keys from content-hash keys.
type KeyKind int

const (
	// KeyNone marks a record whose key has not been resolved yet.
	KeyNone KeyKind = iota

	// KeyPrimary is a validated ISBN-13 (native or converted from
	// ISBN-10). Two records sharing a primary key are always the same
	// entity, regardless of any other field.
	KeyPrimary

	// KeySecondary is a stable content hash over the normalized
	// (title, author, publisher, year) tuple, used when no valid ISBN
	// exists. Records missing ISBNs join only via equal secondary keys.
	KeySecondary
)

// EntityKey decides whether two records denote the same book. Exactly
// one key is assigned per normalized record; keys are comparable with ==.
type EntityKey struct {
	Kind  KeyKind
	Value string
}

// String renders the key in its canonical form: the ISBN-13 digits for
// primary keys, a fixed-width UUID digest for secondary keys. This is
// the book_id of the resulting canonical record.
func (k EntityKey) String() string { return k.Value }

// IsPrimary reports whether the key is ISBN-13 based.
func (k EntityKey) IsPrimary() bool { return k.Kind == KeyPrimary }

// IsZero reports whether the key has not been resolved.
func (k EntityKey) IsZero() bool { return k.Kind == KeyNone }

// Cluster is a non-empty group of normalized records sharing one
// resolved entity key. Clusters partition the record set: every record
// belongs to exactly one cluster. Members are ordered by source, then
// by landing row number, so repeated runs produce identical clusters.
type Cluster struct {
	Key     EntityKey
	Members []*NormalizedRecord
}
