package spanstore

import (
	semspan "github.com/agentplexus/tracestore/semconv/span"
	"github.com/agentplexus/tracestore/spanmodel"
)

// cumulativeRule describes one cumulative computed attribute: the key it is
// stored under, and how to read a span's own (non-descendant) contribution
// to it. This is the Go shape of spec.md §3.4 invariant 5 and the
// _CUMULATIVE_ATTRIBUTES table in the reference implementation.
type cumulativeRule struct {
	key  spanmodel.ComputedKey
	base func(*spanmodel.Span) float64
}

var cumulativeRules = []cumulativeRule{
	{spanmodel.CumulativeLLMTokenCountTotal, attributeBase(semspan.LLMTokenCountTotal)},
	{spanmodel.CumulativeLLMTokenCountPrompt, attributeBase(semspan.LLMTokenCountPrompt)},
	{spanmodel.CumulativeLLMTokenCountCompletion, attributeBase(semspan.LLMTokenCountCompletion)},
	{spanmodel.CumulativeErrorCount, func(s *spanmodel.Span) float64 { return s.Computed.ErrorCount }},
}

func attributeBase(attrKey string) func(*spanmodel.Span) float64 {
	return func(s *spanmodel.Span) float64 {
		v, ok := s.Attributes[attrKey]
		if !ok {
			return 0
		}
		return nonNegativeNumber(v)
	}
}

// propagateCumulative implements spec.md §4.1 step 5: first gather each
// cumulative value from the span's own base contribution plus whatever
// children are already known (step 5a, handling children that arrived
// first), then push the result up through the ancestor chain (step 5b,
// handling a parent that arrived first).
func (s *Store) propagateCumulative(span *spanmodel.Span) {
	children := s.childrenOf[span.SpanID]
	for _, rule := range cumulativeRules {
		total := rule.base(span)
		for _, child := range children {
			total += child.Computed.Get(rule.key)
		}
		_ = span.Computed.Set(rule.key, total)
	}
	s.updateAncestors(span)
}

func (s *Store) updateAncestors(span *spanmodel.Span) {
	for _, rule := range cumulativeRules {
		s.addValueToAncestors(span.SpanID, rule.key, span.Computed.Get(rule.key))
	}
}

// addValueToAncestors adds value to the named cumulative attribute of every
// ancestor of spanID currently present in the store. It stops at the root,
// or at the first ancestor not yet ingested — that ancestor's own step 5a
// will sweep in this subtree's total once it arrives.
func (s *Store) addValueToAncestors(spanID spanmodel.SpanID, key spanmodel.ComputedKey, value float64) {
	cur := spanID
	for {
		parentID, ok := s.parentOf[cur]
		if !ok {
			return
		}
		parent, ok := s.bySpanID[parentID]
		if !ok {
			return
		}
		parent.Computed.Add(key, value)
		cur = parentID
	}
}

func nonNegativeNumber(v any) float64 {
	n, ok := toFloat64(v)
	if !ok || n < 0 {
		return 0
	}
	return n
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func sequenceLen(v any) int {
	switch seq := v.(type) {
	case []any:
		return len(seq)
	case []string:
		return len(seq)
	case []float64:
		return len(seq)
	case []int:
		return len(seq)
	default:
		return 0
	}
}
