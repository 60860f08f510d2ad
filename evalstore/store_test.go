package evalstore

import (
	"testing"

	"github.com/agentplexus/tracestore/spanmodel"
)

func floatPtr(v float64) *float64 { return &v }

// Scenario 5: span and document evaluations.
func TestAddEvaluation_SpanAndDocument(t *testing.T) {
	s := New()

	err := s.AddEvaluation(Evaluation{
		Name:    "relevance",
		Subject: SpanSubject("A"),
		Result:  Result{Label: "yes", HasLabel: true, Score: floatPtr(0.9)},
	})
	if err != nil {
		t.Fatalf("AddEvaluation(span): %v", err)
	}

	eval, ok := s.GetSpanEvaluation("A", "relevance")
	if !ok {
		t.Fatal("GetSpanEvaluation: not found")
	}
	if eval.Result.Score == nil || *eval.Result.Score != 0.9 {
		t.Errorf("score = %v, want 0.9", eval.Result.Score)
	}

	labels := s.GetSpanEvaluationLabels("relevance")
	if len(labels) != 1 || labels[0] != "yes" {
		t.Errorf("labels = %v, want [yes]", labels)
	}

	err = s.AddEvaluation(Evaluation{
		Name:    "doc_rel",
		Subject: DocumentSubject("A", 2),
		Result:  Result{Score: floatPtr(0.4)},
	})
	if err != nil {
		t.Fatalf("AddEvaluation(document): %v", err)
	}

	scores, present := s.GetDocumentEvaluationScores("A", "doc_rel", 4)
	if len(scores) != 4 || len(present) != 4 {
		t.Fatalf("scores/present length = %d/%d, want 4/4", len(scores), len(present))
	}
	for pos := range scores {
		want := pos == 2
		if present[pos] != want {
			t.Errorf("present[%d] = %v, want %v", pos, present[pos], want)
		}
	}
	if scores[2] != 0.4 {
		t.Errorf("scores[2] = %v, want 0.4", scores[2])
	}

	if names := s.GetDocumentEvaluationNames(nil); len(names) != 1 || names[0] != "doc_rel" {
		t.Errorf("GetDocumentEvaluationNames(nil) = %v, want [doc_rel]", names)
	}
	spanA := spanmodel.SpanID("A")
	if names := s.GetDocumentEvaluationNames(&spanA); len(names) != 1 || names[0] != "doc_rel" {
		t.Errorf("GetDocumentEvaluationNames(&A) = %v, want [doc_rel]", names)
	}
	spanZ := spanmodel.SpanID("Z")
	if names := s.GetDocumentEvaluationNames(&spanZ); len(names) != 0 {
		t.Errorf("GetDocumentEvaluationNames(&Z) = %v, want empty", names)
	}

	flattened := s.GetDocumentEvaluationsBySpanID("A")
	if len(flattened) != 1 || flattened[0].Name != "doc_rel" {
		t.Errorf("GetDocumentEvaluationsBySpanID(A) = %v, want one doc_rel evaluation", flattened)
	}

	byPosition := s.GetDocumentEvaluationsBySpanIDAndName("A", "doc_rel")
	if len(byPosition) != 1 {
		t.Fatalf("GetDocumentEvaluationsBySpanIDAndName = %v, want one entry", byPosition)
	}
	if eval, ok := byPosition[2]; !ok || eval.Result.Score == nil || *eval.Result.Score != 0.4 {
		t.Errorf("byPosition[2] = %+v, %v, want score 0.4", eval, ok)
	}
}

func TestAddEvaluation_TraceSubject(t *testing.T) {
	s := New()
	err := s.AddEvaluation(Evaluation{
		Name:    "toxicity",
		Subject: TraceSubject("T1"),
		Result:  Result{Score: floatPtr(0.1)},
	})
	if err != nil {
		t.Fatalf("AddEvaluation(trace): %v", err)
	}
	eval, ok := s.GetTraceEvaluation("T1", "toxicity")
	if !ok {
		t.Fatal("GetTraceEvaluation: not found")
	}
	if eval.Result.Score == nil || *eval.Result.Score != 0.1 {
		t.Errorf("score = %v, want 0.1", eval.Result.Score)
	}
}

func TestAddEvaluation_MissingSubjectDiscarded(t *testing.T) {
	s := New()
	err := s.AddEvaluation(Evaluation{Name: "orphan"})
	if err != nil {
		t.Fatalf("AddEvaluation(missing subject) should not error, got %v", err)
	}
	if names := s.GetSpanEvaluationNames(); len(names) != 0 {
		t.Errorf("expected no span evaluations recorded, got %v", names)
	}
}

func TestAddEvaluation_UnknownSubjectKind(t *testing.T) {
	s := New()
	err := s.AddEvaluation(Evaluation{Name: "bad", Subject: Subject{Kind: SubjectKind(99)}})
	if err == nil {
		t.Fatal("expected an error for an unknown subject kind")
	}
}

func TestExportEvaluations(t *testing.T) {
	s := New()
	if err := s.AddEvaluation(Evaluation{
		Name:    "relevance",
		Subject: SpanSubject(spanmodel.SpanID("A")),
		Result:  Result{Score: floatPtr(0.9)},
	}); err != nil {
		t.Fatalf("AddEvaluation: %v", err)
	}
	if err := s.AddEvaluation(Evaluation{
		Name:    "relevance",
		Subject: SpanSubject(spanmodel.SpanID("B")),
		Result:  Result{Score: floatPtr(0.2)},
	}); err != nil {
		t.Fatalf("AddEvaluation: %v", err)
	}

	frames := s.ExportEvaluations()
	if len(frames) != 1 {
		t.Fatalf("ExportEvaluations = %d frames, want 1", len(frames))
	}
	if frames[0].Name != "relevance" || len(frames[0].Rows) != 2 {
		t.Fatalf("frame = %+v, want name relevance with 2 rows", frames[0])
	}
}

// ExportEvaluations must keep span-evaluation and document-evaluation frames
// separate even when they share a name, and must never include trace
// evaluations.
func TestExportEvaluations_SpanAndDocumentNameCollision(t *testing.T) {
	s := New()
	if err := s.AddEvaluation(Evaluation{
		Name:    "relevance",
		Subject: SpanSubject(spanmodel.SpanID("A")),
		Result:  Result{Score: floatPtr(0.9)},
	}); err != nil {
		t.Fatalf("AddEvaluation(span): %v", err)
	}
	if err := s.AddEvaluation(Evaluation{
		Name:    "relevance",
		Subject: DocumentSubject(spanmodel.SpanID("A"), 1),
		Result:  Result{Score: floatPtr(0.4)},
	}); err != nil {
		t.Fatalf("AddEvaluation(document): %v", err)
	}
	if err := s.AddEvaluation(Evaluation{
		Name:    "relevance",
		Subject: TraceSubject(spanmodel.TraceID("T1")),
		Result:  Result{Score: floatPtr(0.1)},
	}); err != nil {
		t.Fatalf("AddEvaluation(trace): %v", err)
	}

	frames := s.ExportEvaluations()
	if len(frames) != 2 {
		t.Fatalf("ExportEvaluations = %d frames, want 2 (span + document, no trace)", len(frames))
	}
	for _, f := range frames {
		if f.Name != "relevance" {
			t.Fatalf("unexpected frame name %q", f.Name)
		}
		if len(f.Rows) != 1 {
			t.Errorf("frame %+v has %d rows, want 1 (span and document rows must not merge)", f, len(f.Rows))
		}
		if f.Rows[0].Subject.Kind != SubjectSpan && f.Rows[0].Subject.Kind != SubjectDocument {
			t.Errorf("frame %+v contains a non-span/document subject", f)
		}
	}
}
