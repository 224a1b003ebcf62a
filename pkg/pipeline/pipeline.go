// Package pipeline wires the phases of the integration run into one
// pure function: raw records in, canonical records + traceability +
// quality metrics out. No hidden state survives between invocations.
//
// Phases and barriers:
//
//	raw -> normalize+key (parallel, no shared state)
//	    -> promote keys  (barrier: secondary keys adopt matching ISBNs)
//	    -> cluster       (needs all keys)
//	    -> merge         (parallel, clusters are disjoint)
//	    -> audit         (barrier: needs all canonical records)
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bookdim/bookdim/pkg/book"
	"github.com/bookdim/bookdim/pkg/cluster"
	"github.com/bookdim/bookdim/pkg/config"
	"github.com/bookdim/bookdim/pkg/entitykey"
	"github.com/bookdim/bookdim/pkg/normalize"
	"github.com/bookdim/bookdim/pkg/quality"
	"github.com/bookdim/bookdim/pkg/survive"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// Result holds the complete output of one integration run.
type Result struct {
	Canonical []book.CanonicalRecord
	Trace     []book.TraceabilityRow
	Metrics   book.QualityMetrics
}

// Integrate runs the full pipeline over the input collection. The
// input is read-only; output ordering is deterministic (canonical
// records sorted by book_id via cluster ordering, traceability rows in
// cluster order). Structurally malformed input - a record without its
// source tag - is rejected before normalization begins.
func Integrate(
	ctx context.Context, cfg *config.Config, raws []book.RawRecord,
) (*Result, error) {
	for i := range raws {
		if strings.TrimSpace(raws[i].Source) == "" {
			return nil, fmt.Errorf("record %d: missing source tag", i)
		}
	}

	runTS := time.Now().UTC()
	jobs := max(cfg.JobsNumber, 1)

	recs, err := normalizeAll(ctx, raws, jobs)
	if err != nil {
		return nil, err
	}
	entitykey.Promote(recs)

	failures := make(map[string]int)
	for _, rec := range recs {
		for _, f := range rec.Failures {
			failures[f]++
		}
	}
	slog.Info("normalization complete",
		"records", humanize.Comma(int64(len(recs))),
		"field_failures", len(failures),
	)

	clusters, err := cluster.Group(recs)
	if err != nil {
		return nil, err
	}
	slog.Info("clustering complete",
		"records", humanize.Comma(int64(len(recs))),
		"clusters", humanize.Comma(int64(len(clusters))),
	)

	dim, trace, err := mergeAll(ctx, clusters, runTS, jobs)
	if err != nil {
		return nil, err
	}

	metrics := quality.Audit(len(raws), dim, trace, failures, runTS)
	slog.Info("audit complete",
		"canonical", humanize.Comma(int64(len(dim))),
		"duplicates_resolved", metrics.DuplicatesResolved,
		"trace_rows", humanize.Comma(int64(len(trace))),
	)

	return &Result{Canonical: dim, Trace: trace, Metrics: metrics}, nil
}

// normalizeAll fans normalization and key resolution out over jobs
// workers. Each record is independent, so workers shard the input by
// index and write disjoint slots of the output slice.
func normalizeAll(
	ctx context.Context, raws []book.RawRecord, jobs int,
) ([]*book.NormalizedRecord, error) {
	recs := make([]*book.NormalizedRecord, len(raws))

	g, ctx := errgroup.WithContext(ctx)
	for w := range jobs {
		g.Go(func() error {
			for i := w; i < len(raws); i += jobs {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				rec := normalize.Record(raws[i])
				rec.Key = entitykey.Resolve(&rec)
				recs[i] = &rec
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return recs, nil
}

// mergeAll merges clusters concurrently. Clusters are disjoint by
// invariant, so merges share no mutable state; per-cluster outputs land
// in indexed slots and are flattened in cluster order afterwards.
func mergeAll(
	ctx context.Context,
	clusters []book.Cluster,
	runTS time.Time,
	jobs int,
) ([]book.CanonicalRecord, []book.TraceabilityRow, error) {
	dim := make([]book.CanonicalRecord, len(clusters))
	perCluster := make([][]book.TraceabilityRow, len(clusters))

	g, ctx := errgroup.WithContext(ctx)
	for w := range jobs {
		g.Go(func() error {
			for i := w; i < len(clusters); i += jobs {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				rec, rows, err := survive.Merge(clusters[i], runTS)
				if err != nil {
					return err
				}
				dim[i] = rec
				perCluster[i] = rows
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var trace []book.TraceabilityRow
	for _, rows := range perCluster {
		trace = append(trace, rows...)
	}
	return dim, trace, nil
}
