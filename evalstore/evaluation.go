package evalstore

import "github.com/agentplexus/tracestore/spanmodel"

// SubjectKind identifies which of the three subject shapes an Evaluation
// carries. The zero value, SubjectUnknown, marks a missing subject.
type SubjectKind int

const (
	SubjectUnknown SubjectKind = iota
	SubjectSpan
	SubjectTrace
	SubjectDocument
)

// Subject is exactly one of {span_id}, {trace_id}, or {span_id,
// document_position}, per spec.md §3.3. Which fields are meaningful is
// determined by Kind; this is Go's stand-in for the source's tagged union.
type Subject struct {
	Kind             SubjectKind
	SpanID           spanmodel.SpanID
	TraceID          spanmodel.TraceID
	DocumentPosition int
}

// SpanSubject builds a span-level evaluation subject.
func SpanSubject(id spanmodel.SpanID) Subject {
	return Subject{Kind: SubjectSpan, SpanID: id}
}

// TraceSubject builds a trace-level evaluation subject.
func TraceSubject(id spanmodel.TraceID) Subject {
	return Subject{Kind: SubjectTrace, TraceID: id}
}

// DocumentSubject builds a document-level evaluation subject: a span plus
// the zero-based position of one of its retrieved documents.
func DocumentSubject(spanID spanmodel.SpanID, position int) Subject {
	return Subject{Kind: SubjectDocument, SpanID: spanID, DocumentPosition: position}
}

// Result carries any non-empty subset of score/label/explanation, per
// spec.md §3.3. A nil Score means "not present", matching the source's
// optional-field semantics more directly than a sentinel float.
type Result struct {
	Score       *float64
	Label       string
	HasLabel    bool
	Explanation string
}

// Evaluation is a structured judgement attached to a span, trace, or
// retrieved document.
type Evaluation struct {
	Name    string
	Subject Subject
	Result  Result
}
