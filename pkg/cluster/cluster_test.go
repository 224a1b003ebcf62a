package cluster_test

import (
	"testing"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/bookdim/bookdim/pkg/cluster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(source string, row int, key book.EntityKey) *book.NormalizedRecord {
	return &book.NormalizedRecord{Source: source, RowNumber: row, Key: key}
}

func primary(isbn string) book.EntityKey {
	return book.EntityKey{Kind: book.KeyPrimary, Value: isbn}
}

func TestGroup(t *testing.T) {
	k1 := primary("9780760392744")
	k2 := primary("9780441478125")

	recs := []*book.NormalizedRecord{
		rec(book.SourceGoogleBooks, 3, k2),
		rec(book.SourceGoodreads, 1, k1),
		rec(book.SourceGoogleBooks, 2, k1),
		rec(book.SourceGoodreads, 9, k1),
	}

	clusters, err := cluster.Group(recs)
	require.NoError(t, err)
	require.Len(t, clusters, 2)

	// Clusters ordered by key value.
	assert.Equal(t, k2, clusters[0].Key)
	assert.Equal(t, k1, clusters[1].Key)

	// Members ordered by (source, row number).
	members := clusters[1].Members
	require.Len(t, members, 3)
	assert.Equal(t, book.SourceGoodreads, members[0].Source)
	assert.Equal(t, 1, members[0].RowNumber)
	assert.Equal(t, book.SourceGoodreads, members[1].Source)
	assert.Equal(t, 9, members[1].RowNumber)
	assert.Equal(t, book.SourceGoogleBooks, members[2].Source)
}

// Every input record lands in exactly one cluster; singletons are
// clusters too.
func TestGroupPartition(t *testing.T) {
	recs := []*book.NormalizedRecord{
		rec(book.SourceGoodreads, 1, primary("9780760392744")),
		rec(book.SourceGoodreads, 2, primary("9780441478125")),
		rec(book.SourceGoogleBooks, 1, primary("9780760392744")),
		rec(book.SourceGoogleBooks, 2, book.EntityKey{Kind: book.KeySecondary, Value: "uuid-a"}),
	}

	clusters, err := cluster.Group(recs)
	require.NoError(t, err)

	var total int
	seen := make(map[*book.NormalizedRecord]bool)
	for _, c := range clusters {
		total += len(c.Members)
		for _, m := range c.Members {
			assert.False(t, seen[m], "record assigned twice")
			seen[m] = true
			assert.Equal(t, c.Key, m.Key)
		}
	}
	assert.Equal(t, len(recs), total)
}

func TestGroupUnresolvedKey(t *testing.T) {
	recs := []*book.NormalizedRecord{
		rec(book.SourceGoodreads, 1, primary("9780760392744")),
		{Source: book.SourceGoogleBooks, RowNumber: 5},
	}

	_, err := cluster.Group(recs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entity key not resolved")
	assert.Contains(t, err.Error(), "googlebooks")
}

func TestGroupEmpty(t *testing.T) {
	clusters, err := cluster.Group(nil)
	require.NoError(t, err)
	assert.Empty(t, clusters)
}
