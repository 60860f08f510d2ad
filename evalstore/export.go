package evalstore

import "sort"

// EvaluationRow is one row of an exported evaluations frame: a subject plus
// its result, detached from any store state.
type EvaluationRow struct {
	Subject Subject
	Result  Result
}

// EvaluationsFrame is the tabular artifact for one evaluation name, the
// shape a caller would hand to a dataframe or columnar writer.
type EvaluationsFrame struct {
	Name string
	Rows []EvaluationRow
}

// ExportEvaluations snapshots every recorded span and document evaluation
// into one frame per span-evaluation name plus one frame per
// document-evaluation name, per spec.md §4.2. Trace evaluations are not
// part of the export (the source's export_evaluations calls only
// _export_span_evaluations and _export_document_evaluations). Every frame
// is built under a single lock acquisition, so ingestion waits until the
// whole snapshot is built; the lock is released before the frames are
// returned, so the caller iterates a copy that later ingestion cannot change.
func (s *Store) ExportEvaluations() []EvaluationsFrame {
	s.mu.Lock()

	frames := make([]EvaluationsFrame, 0, len(s.bySpanName)+len(s.docByNameSpan))

	for name, bySpan := range s.bySpanName {
		rows := make([]EvaluationRow, 0, len(bySpan))
		for _, e := range bySpan {
			rows = append(rows, EvaluationRow{Subject: e.Subject, Result: e.Result})
		}
		frames = append(frames, EvaluationsFrame{Name: name, Rows: rows})
	}

	for name, bySpan := range s.docByNameSpan {
		var rows []EvaluationRow
		for _, byPosition := range bySpan {
			for _, e := range byPosition {
				rows = append(rows, EvaluationRow{Subject: e.Subject, Result: e.Result})
			}
		}
		// Rows are indexed by (span_id, document_position): order ascending
		// by position within each span, per spec.md §4.2.
		sort.Slice(rows, func(i, j int) bool {
			a, b := rows[i].Subject, rows[j].Subject
			if a.SpanID != b.SpanID {
				return a.SpanID < b.SpanID
			}
			return a.DocumentPosition < b.DocumentPosition
		})
		frames = append(frames, EvaluationsFrame{Name: name, Rows: rows})
	}

	s.mu.Unlock()
	return frames
}
