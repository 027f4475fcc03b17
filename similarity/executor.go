package similarity

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SegmentResult pairs a segment's matches with its name for the caller
// to attribute results back to a segment.
type SegmentResult struct {
	Segment string
	Matches []Match
}

// RunSegments runs filterFor(segment) across every segment concurrently
// and returns their matches once all complete. Multiple filter
// instances run in parallel over distinct segments — each
// goroutine gets its own Filter instance (single-threaded-per-filter
// execution), and nothing here shares mutable state across them except
// the read-only term iterators a caller's filterFor closes over.
func RunSegments(ctx context.Context, segments []string, filterFor func(segment string) (*Filter, error)) ([]SegmentResult, error) {
	results := make([]SegmentResult, len(segments))

	g, ctx := errgroup.WithContext(ctx)
	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			f, err := filterFor(seg)
			if err != nil {
				return err
			}
			results[i] = SegmentResult{Segment: seg, Matches: f.Matches()}
			log.Debug("segment ", seg, ": ", len(results[i].Matches), " matches")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
