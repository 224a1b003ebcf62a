// Package cluster partitions keyed records into entity clusters.
//
// Grouping is by entity-key equality only - no approximate matching.
// The output is deterministic: clusters are ordered by key string and
// members within a cluster by (source, row number), so two runs over
// the same input produce identical groupings and row ordering.
package cluster

import (
	"fmt"
	"sort"

	"github.com/bookdim/bookdim/pkg/book"
)

// Group partitions the full record set into clusters. Every record must
// already carry its resolved entity key; a record with an unresolved
// key is a programmer error and is rejected.
//
// A group of size 1 is still a valid cluster and must pass through the
// survivorship merger like any other - singleton records are never
// dropped or exempted from merge logic.
func Group(recs []*book.NormalizedRecord) ([]book.Cluster, error) {
	groups := make(map[book.EntityKey][]*book.NormalizedRecord)

	for i, rec := range recs {
		if rec.Key.IsZero() {
			return nil, fmt.Errorf(
				"record %d (%s row %d): entity key not resolved",
				i, rec.Source, rec.RowNumber,
			)
		}
		groups[rec.Key] = append(groups[rec.Key], rec)
	}

	clusters := make([]book.Cluster, 0, len(groups))
	for key, members := range groups {
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].Source != members[j].Source {
				return members[i].Source < members[j].Source
			}
			return members[i].RowNumber < members[j].RowNumber
		})
		clusters = append(clusters, book.Cluster{Key: key, Members: members})
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Key.Value < clusters[j].Key.Value
	})

	return clusters, nil
}
