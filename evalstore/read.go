package evalstore

import "github.com/agentplexus/tracestore/spanmodel"

// GetSpanEvaluation returns the named evaluation attached to span_id, or
// false if none was recorded.
func (s *Store) GetSpanEvaluation(spanID spanmodel.SpanID, name string) (Evaluation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.spanByID[spanID][name]
	return e, ok
}

// GetEvaluationsBySpanID returns every evaluation attached to span_id,
// one per evaluation name, in unspecified order.
func (s *Store) GetEvaluationsBySpanID(spanID spanmodel.SpanID) []Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	byName := s.spanByID[spanID]
	result := make([]Evaluation, 0, len(byName))
	for _, e := range byName {
		result = append(result, e)
	}
	return result
}

// GetSpanEvaluationNames returns the distinct evaluation names recorded
// against any span, in unspecified order.
func (s *Store) GetSpanEvaluationNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.bySpanName))
	for name := range s.bySpanName {
		names = append(names, name)
	}
	return names
}

// GetSpanEvaluationSpanIDs returns every span_id that has a recorded
// evaluation named name, in unspecified order.
func (s *Store) GetSpanEvaluationSpanIDs(name string) []spanmodel.SpanID {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID := s.bySpanName[name]
	ids := make([]spanmodel.SpanID, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	return ids
}

// GetSpanEvaluationLabels returns the distinct labels ever recorded for
// evaluation name, in unspecified order. Evaluations with no label do not
// contribute.
func (s *Store) GetSpanEvaluationLabels(name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.labelsByName[name]
	labels := make([]string, 0, len(set))
	for label := range set {
		labels = append(labels, label)
	}
	return labels
}

// GetTraceEvaluation returns the named evaluation attached to trace_id, or
// false if none was recorded.
func (s *Store) GetTraceEvaluation(traceID spanmodel.TraceID, name string) (Evaluation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.traceByID[traceID][name]
	return e, ok
}

// GetDocumentEvaluationNames returns the distinct document-evaluation names
// recorded against spanID, in unspecified order. If spanID is nil, it
// instead returns the distinct document-evaluation names recorded against
// any span.
func (s *Store) GetDocumentEvaluationNames(spanID *spanmodel.SpanID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if spanID == nil {
		names := make([]string, 0, len(s.docByNameSpan))
		for name := range s.docByNameSpan {
			names = append(names, name)
		}
		return names
	}

	byName := s.docBySpanID[*spanID]
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}

// GetDocumentEvaluationsBySpanID returns every document evaluation recorded
// against spanID, flattened across names and document positions, in
// unspecified order.
func (s *Store) GetDocumentEvaluationsBySpanID(spanID spanmodel.SpanID) []Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	byName := s.docBySpanID[spanID]
	result := make([]Evaluation, 0, len(byName))
	for _, byPosition := range byName {
		for _, e := range byPosition {
			result = append(result, e)
		}
	}
	return result
}

// GetDocumentEvaluationsBySpanIDAndName returns every document evaluation
// named name recorded against spanID, keyed by document position.
func (s *Store) GetDocumentEvaluationsBySpanIDAndName(spanID spanmodel.SpanID, name string) map[int]Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	byPosition := s.docBySpanID[spanID][name]
	result := make(map[int]Evaluation, len(byPosition))
	for pos, e := range byPosition {
		result[pos] = e
	}
	return result
}

// GetDocumentEvaluationScores returns, for evaluation name against span_id,
// one score per document position from 0 to numDocuments-1. Positions with
// no recorded evaluation, or whose Result carries no score, report false.
func (s *Store) GetDocumentEvaluationScores(spanID spanmodel.SpanID, name string, numDocuments int) ([]float64, []bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores := make([]float64, numDocuments)
	present := make([]bool, numDocuments)
	byPosition := s.docBySpanID[spanID][name]
	for pos, e := range byPosition {
		if pos < 0 || pos >= numDocuments || e.Result.Score == nil {
			continue
		}
		scores[pos] = *e.Result.Score
		present[pos] = true
	}
	return scores, present
}

// GetDocumentEvaluationSpanIDs returns every span_id that has a recorded
// document evaluation named name, in unspecified order.
func (s *Store) GetDocumentEvaluationSpanIDs(name string) []spanmodel.SpanID {
	s.mu.Lock()
	defer s.mu.Unlock()
	bySpan := s.docByNameSpan[name]
	ids := make([]spanmodel.SpanID, 0, len(bySpan))
	for id := range bySpan {
		ids = append(ids, id)
	}
	return ids
}
