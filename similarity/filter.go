package similarity

import (
	"math"

	"github.com/op/go-logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pombredanne/iresearch/postings"
)

var log = logging.MustGetLogger("similarity")

var segmentDocsScanned = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "iresearch",
	Subsystem: "similarity",
	Name:      "segment_docs_scanned_total",
	Help:      "Candidate documents scanned by the n-gram similarity filter per segment.",
}, []string{"segment"})

func init() {
	prometheus.MustRegister(segmentDocsScanned)
}

// Match is one document the filter accepted: len(LOS)/n as FilterBoost,
// and the disjoint-realization count as Frequency — both emitted as if
// they were an ordinary term occurrence for a downstream scorer.
type Match struct {
	DocID       uint32
	Frequency   int
	FilterBoost float64
}

// Filter is an n-gram similarity filter: given n query term slots
// (each backed by a posting iterator, slots may repeat the same term),
// it finds documents where at least ceil(threshold*n) of the slots
// appear in field order, ranked by how much of the query they recover.
//
// Adapted from strict conjunction matching (every child must align) to
// threshold-pruned matching (only m_min of n need align on a
// candidate document).
type Filter struct {
	threshold float64
	terms     []postings.Iterator
	segment   string
}

// NewFilter builds a filter over terms in query order. segment is a
// label for the per-segment scan counter; pass "" if unused.
func NewFilter(threshold float64, terms []postings.Iterator, segment string) *Filter {
	return &Filter{threshold: threshold, terms: terms, segment: segment}
}

// minMatches is m_min = ceil(threshold * n).
func (f *Filter) minMatches() int {
	n := len(f.terms)
	return int(math.Ceil(f.threshold * float64(n)))
}

// Matches scans every candidate document and returns the accepted
// matches in ascending document id order.
func (f *Filter) Matches() []Match {
	n := len(f.terms)
	if n == 0 {
		return nil
	}
	mMin := f.minMatches()

	present := 0
	for _, it := range f.terms {
		if it.Seek(0) != postings.Max {
			present++
		}
	}
	if present < mMin {
		log.Debug("segment ", f.segment, " has only ", present, " present terms, below m_min ", mMin, ": skipping")
		return nil
	}

	var out []Match
	for {
		minDoc := postings.Max
		for _, it := range f.terms {
			if v := it.Value(); v < minDoc {
				minDoc = v
			}
		}
		if minDoc == postings.Max {
			break
		}

		segmentDocsScanned.WithLabelValues(f.segment).Inc()

		count := 0
		for _, it := range f.terms {
			if it.Value() == minDoc {
				count++
			}
		}

		if count < mMin {
			f.advancePast(minDoc)
			continue
		}

		slots := make([][]int, n)
		for i, it := range f.terms {
			if it.Value() != minDoc {
				continue
			}
			p := it.Positions()
			for p.Next() {
				slots[i] = append(slots[i], int(p.Value()))
			}
		}

		length, frequency := losAndFrequency(slots)
		if length >= mMin {
			out = append(out, Match{
				DocID:       minDoc,
				Frequency:   frequency,
				FilterBoost: float64(length) / float64(n),
			})
		} else {
			log.Debug("doc ", minDoc, " had ", count, " aligned slots but LOS ", length, " fell below m_min ", mMin)
		}

		f.advancePast(minDoc)
	}
	return out
}

func (f *Filter) advancePast(doc uint32) {
	for _, it := range f.terms {
		if it.Value() == doc {
			it.Seek(doc + 1)
		}
	}
}
