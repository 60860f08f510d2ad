package spanstore

import (
	"time"

	"github.com/agentplexus/tracestore/spanmodel"
)

// SpanQuery parameters for GetSpans, matching spec.md §4.1.
//
// Start/Stop default to the store's current right-open time range when nil.
// If SpanIDs is non-nil, exactly those spans are considered (in input
// order) rather than a time-ordered sweep.
type SpanQuery struct {
	Start    *time.Time
	Stop     *time.Time
	RootOnly bool
	SpanIDs  []spanmodel.SpanID
}

// GetTrace returns every span sharing trace_id, in unspecified order. The
// snapshot is taken under the lock and returned after release.
func (s *Store) GetTrace(traceID spanmodel.TraceID) []*spanmodel.Span {
	s.mu.Lock()
	trace := s.spansOfTrace[traceID]
	if len(trace) == 0 {
		s.mu.Unlock()
		return nil
	}
	result := make([]*spanmodel.Span, 0, len(trace))
	for _, sp := range trace {
		result = append(result, sp)
	}
	s.mu.Unlock()
	return result
}

// GetSpans implements spec.md §4.1's get_spans read.
func (s *Store) GetSpans(q SpanQuery) []*spanmodel.Span {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.bySpanID) == 0 {
		return nil
	}
	lo, hi := s.resolveRangeLocked(q.Start, q.Stop)

	if q.SpanIDs != nil {
		return s.getBySpanIDsLocked(q.SpanIDs, lo, hi, q.RootOnly)
	}
	return s.getByTimeRangeLocked(lo, hi, q.RootOnly)
}

func (s *Store) resolveRangeLocked(start, stop *time.Time) (time.Time, time.Time) {
	lo, hi, ok := s.rightOpenTimeRangeLocked()
	if !ok {
		return time.Time{}, time.Time{}
	}
	if start != nil {
		lo = start.UTC()
	}
	if stop != nil {
		hi = stop.UTC()
	}
	return lo, hi
}

func (s *Store) getBySpanIDsLocked(ids []spanmodel.SpanID, lo, hi time.Time, rootOnly bool) []*spanmodel.Span {
	result := make([]*spanmodel.Span, 0, len(ids))
	for _, id := range ids {
		span, ok := s.bySpanID[id]
		if !ok {
			continue
		}
		if span.StartTime.Before(lo) || !span.StartTime.Before(hi) {
			continue
		}
		if rootOnly && !span.IsRoot {
			continue
		}
		result = append(result, span)
	}
	return result
}

// getByTimeRangeLocked sweeps [lo, hi) most-recent-first, the ordering
// get_spans specifies when no explicit span_ids are supplied.
func (s *Store) getByTimeRangeLocked(lo, hi time.Time, rootOnly bool) []*spanmodel.Span {
	idx := s.byStartTime
	if rootOnly {
		idx = s.rootsByStartTime
	}
	var result []*spanmodel.Span
	idx.rangeDescending(lo.UnixNano(), hi.UnixNano(), func(sp *spanmodel.Span) bool {
		result = append(result, sp)
		return true
	})
	return result
}

// GetDescendantSpans returns every descendant of span_id via depth-first
// traversal of children_of. Each span's children are snapshotted under the
// lock before recursing, so a concurrent ingest cannot invalidate the
// traversal; a child that arrives under a span whose children were already
// snapshotted is not included.
func (s *Store) GetDescendantSpans(spanID spanmodel.SpanID) []*spanmodel.Span {
	var result []*spanmodel.Span
	s.collectDescendants(spanID, &result)
	return result
}

func (s *Store) collectDescendants(spanID spanmodel.SpanID, out *[]*spanmodel.Span) {
	s.mu.Lock()
	children := s.childrenOf[spanID]
	level := make([]*spanmodel.Span, 0, len(children))
	for _, c := range children {
		level = append(level, c)
	}
	s.mu.Unlock()

	for _, child := range level {
		*out = append(*out, child)
		s.collectDescendants(child.SpanID, out)
	}
}
