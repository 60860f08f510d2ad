// Package spanstore implements the Span Store: the concurrent index over
// ingested spans described in spec.md §4.1. It maintains per-span,
// per-trace, and per-root-span lookups, two order-sensitive views for range
// iteration, cumulative-attribute propagation up the ancestor chain, and a
// streaming quantile sketch over root-span latencies.
package spanstore

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/sketches-go/ddsketch"

	"github.com/agentplexus/tracestore/spanmodel"
)

// DefaultRootLatencyAccuracy is the relative accuracy of the root-span
// latency sketch absent an explicit override — matches spec.md §4.1's
// "DDSketch-style, relative accuracy α ≈ 0.01".
const DefaultRootLatencyAccuracy = 0.01

// Store is the Span Store. The zero value is not usable; construct one with
// New. All exported methods are safe for concurrent use.
type Store struct {
	mu sync.Mutex

	bySpanID     map[spanmodel.SpanID]*spanmodel.Span
	parentOf     map[spanmodel.SpanID]spanmodel.SpanID
	childrenOf   map[spanmodel.SpanID]map[spanmodel.SpanID]*spanmodel.Span
	spansOfTrace map[spanmodel.TraceID]map[spanmodel.SpanID]*spanmodel.Span
	numDocuments map[spanmodel.SpanID]int

	byStartTime      *orderedIndex[int64]
	rootsByStartTime *orderedIndex[int64]
	rootsByLatency   *orderedIndex[float64]

	rootLatencySketch *ddsketch.DDSketch
	tokenCountTotal   int64

	lastUpdatedAt time.Time
	nextSeq       uint64

	timeRangeGranularity time.Duration
}

// Option configures a Store at construction time.
type Option func(*config)

type config struct {
	rootLatencyAccuracy float64
	timeRangeGranularity time.Duration
}

// WithRootLatencyAccuracy overrides the relative accuracy of the root-span
// latency quantile sketch. Default: DefaultRootLatencyAccuracy.
func WithRootLatencyAccuracy(accuracy float64) Option {
	return func(c *config) { c.rootLatencyAccuracy = accuracy }
}

// WithTimeRangeGranularity overrides ε in RightOpenTimeRange (spec.md §9
// Open Question 2). Default: spanmodel.TimeRangeGranularity.
func WithTimeRangeGranularity(d time.Duration) Option {
	return func(c *config) { c.timeRangeGranularity = d }
}

// New creates an empty Span Store.
func New(opts ...Option) (*Store, error) {
	cfg := config{
		rootLatencyAccuracy: DefaultRootLatencyAccuracy,
		timeRangeGranularity: spanmodel.TimeRangeGranularity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	sketch, err := ddsketch.NewDefaultDDSketch(cfg.rootLatencyAccuracy)
	if err != nil {
		return nil, fmt.Errorf("spanstore: creating root latency sketch: %w", err)
	}

	return &Store{
		bySpanID:             make(map[spanmodel.SpanID]*spanmodel.Span),
		parentOf:             make(map[spanmodel.SpanID]spanmodel.SpanID),
		childrenOf:           make(map[spanmodel.SpanID]map[spanmodel.SpanID]*spanmodel.Span),
		spansOfTrace:         make(map[spanmodel.TraceID]map[spanmodel.SpanID]*spanmodel.Span),
		numDocuments:         make(map[spanmodel.SpanID]int),
		byStartTime:          newOrderedIndex[int64](),
		rootsByStartTime:     newOrderedIndex[int64](),
		rootsByLatency:       newOrderedIndex[float64](),
		rootLatencySketch:    sketch,
		timeRangeGranularity: cfg.timeRangeGranularity,
	}, nil
}

// LastUpdatedAt returns the UTC instant of the most recently accepted
// ingest, or the zero time if none has happened yet.
func (s *Store) LastUpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdatedAt
}

// SpanCount returns the total number of distinct spans ingested.
func (s *Store) SpanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bySpanID)
}

// TraceCount returns the total number of distinct traces observed.
func (s *Store) TraceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.spansOfTrace)
}

// TokenCountTotal returns the running sum of ingested llm.token_count.total
// across all spans, with negative values clamped to zero (spec.md §9 Open
// Question 1).
func (s *Store) TokenCountTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenCountTotal
}

// GetNumDocuments returns the cumulative length of the retrieval-documents
// attribute observed for span_id, or 0 if the span is unknown or never
// carried that attribute.
func (s *Store) GetNumDocuments(spanID spanmodel.SpanID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numDocuments[spanID]
}

// RootSpanLatencyMSQuantile returns the p-quantile (0<=p<=1) of root-span
// latency in milliseconds observed so far, or false if no root span has
// been ingested.
func (s *Store) RootSpanLatencyMSQuantile(p float64) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rootLatencySketch.GetCount() == 0 {
		return 0, false
	}
	v, err := s.rootLatencySketch.GetValueAtQuantile(p)
	if err != nil {
		return 0, false
	}
	return v, true
}

// RightOpenTimeRange returns (min_start, max_start+ε), or the zero values
// and false when the store is empty.
func (s *Store) RightOpenTimeRange() (time.Time, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rightOpenTimeRangeLocked()
}

func (s *Store) rightOpenTimeRangeLocked() (time.Time, time.Time, bool) {
	minNanos, maxNanos, ok := s.byStartTime.minMaxKey()
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	minStart := time.Unix(0, minNanos).UTC()
	maxStart := time.Unix(0, maxNanos).UTC()
	lo, hi := spanmodel.RightOpenTimeRange(minStart, maxStart, s.timeRangeGranularity)
	return lo, hi, true
}
