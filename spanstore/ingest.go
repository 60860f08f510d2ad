package spanstore

import (
	"time"

	semspan "github.com/agentplexus/tracestore/semconv/span"
	"github.com/agentplexus/tracestore/spanmodel"
)

// AddSpan ingests a span per spec.md §4.1. A span_id already present is
// silently ignored (first write wins). A span whose parent chain would
// close a cycle is rejected with ErrCyclicAncestry before any state is
// touched.
func (s *Store) AddSpan(in spanmodel.IngestedSpan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addSpanLocked(in)
}

func (s *Store) addSpanLocked(in spanmodel.IngestedSpan) error {
	if _, exists := s.bySpanID[in.SpanID]; exists {
		return nil
	}
	if in.ParentID != "" && s.wouldCreateCycle(in.SpanID, in.ParentID) {
		return ErrCyclicAncestry
	}

	span := spanmodel.NewSpan(in, s.nextSeq)
	s.nextSeq++

	if !span.IsRoot {
		// Register parentage before publishing so propagation below sees
		// consistent parent/child edges regardless of arrival order.
		children := s.childrenOf[span.ParentID]
		if children == nil {
			children = make(map[spanmodel.SpanID]*spanmodel.Span)
			s.childrenOf[span.ParentID] = children
		}
		children[span.SpanID] = span
		s.parentOf[span.SpanID] = span.ParentID
	}

	latencyMS := span.EndTime.Sub(span.StartTime).Seconds() * 1000
	_ = span.Computed.Set(spanmodel.LatencyMS, latencyMS)
	errorCount := 0.0
	if span.StatusCode == spanmodel.StatusError {
		errorCount = 1
	}
	_ = span.Computed.Set(spanmodel.ErrorCount, errorCount)

	if span.IsRoot {
		_ = s.rootLatencySketch.Add(latencyMS)
	}

	s.bySpanID[span.SpanID] = span
	trace := s.spansOfTrace[span.TraceID]
	if trace == nil {
		trace = make(map[spanmodel.SpanID]*spanmodel.Span)
		s.spansOfTrace[span.TraceID] = trace
	}
	trace[span.SpanID] = span

	startNanos := span.StartTime.UnixNano()
	s.byStartTime.insert(startNanos, span.Seq(), span)
	if span.IsRoot {
		s.rootsByStartTime.insert(startNanos, span.Seq(), span)
		s.rootsByLatency.insert(latencyMS, span.Seq(), span)
	}

	s.propagateCumulative(span)
	s.updateCachedStatistics(span)

	s.lastUpdatedAt = time.Now().UTC()
	return nil
}

// wouldCreateCycle reports whether declaring parent as span's parent would
// close a cycle, by walking parent's existing ancestor chain looking for
// span itself. The bound on iterations defends against any already-corrupt
// state rather than looping forever; under the invariants this spec
// enforces the chain always terminates well before that bound.
func (s *Store) wouldCreateCycle(span, parent spanmodel.SpanID) bool {
	cur := parent
	limit := len(s.bySpanID) + 1
	for i := 0; i < limit; i++ {
		if cur == span {
			return true
		}
		next, ok := s.parentOf[cur]
		if !ok {
			return false
		}
		cur = next
	}
	return true
}

// updateCachedStatistics folds a newly ingested span into the running
// token-count total and per-span document counts (spec.md §4.1 step 6).
func (s *Store) updateCachedStatistics(span *spanmodel.Span) {
	if raw, ok := span.Attributes[semspan.LLMTokenCountTotal]; ok {
		s.tokenCountTotal += int64(nonNegativeNumber(raw))
	}
	if raw, ok := span.Attributes[semspan.RetrievalDocuments]; ok {
		if n := sequenceLen(raw); n > 0 {
			s.numDocuments[span.SpanID] += n
		}
	}
}
