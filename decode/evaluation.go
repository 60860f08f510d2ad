package decode

import (
	"fmt"

	"github.com/agentplexus/tracestore/evalstore"
	"github.com/agentplexus/tracestore/spanmodel"
)

// WireEvaluation is the shape a higher layer hands over for one judgement,
// already subject-tagged per spec.md §3.3. Exactly one of SpanID, TraceID,
// or (SpanID, DocumentPosition) identifies the subject; IsDocument, not
// DocumentPosition, distinguishes a document subject from a span subject
// (position zero is valid), so a document evaluation must set IsDocument.
type WireEvaluation struct {
	Name             string
	SpanID           string
	TraceID          string
	IsDocument       bool
	DocumentPosition int

	Score       *float64
	Label       string
	HasLabel    bool
	Explanation string
}

// ErrAmbiguousSubject is returned by DecodeEvaluation when a WireEvaluation
// names neither a span, a trace, nor a document subject.
var ErrAmbiguousSubject = fmt.Errorf("decode: evaluation names no subject")

// DecodeEvaluation translates a WireEvaluation into the Evaluation shape
// evalstore's AddEvaluation accepts.
func DecodeEvaluation(w WireEvaluation) (evalstore.Evaluation, error) {
	result := evalstore.Result{
		Score:       w.Score,
		Label:       w.Label,
		HasLabel:    w.HasLabel,
		Explanation: w.Explanation,
	}

	var subject evalstore.Subject
	switch {
	case w.IsDocument && w.SpanID != "":
		subject = evalstore.DocumentSubject(spanmodel.SpanID(w.SpanID), w.DocumentPosition)
	case w.SpanID != "":
		subject = evalstore.SpanSubject(spanmodel.SpanID(w.SpanID))
	case w.TraceID != "":
		subject = evalstore.TraceSubject(spanmodel.TraceID(w.TraceID))
	default:
		return evalstore.Evaluation{}, fmt.Errorf("%w: %q", ErrAmbiguousSubject, w.Name)
	}

	return evalstore.Evaluation{Name: w.Name, Subject: subject, Result: result}, nil
}
