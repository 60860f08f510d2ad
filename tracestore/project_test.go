package tracestore

import (
	"testing"
	"time"

	"github.com/agentplexus/tracestore/evalstore"
	"github.com/agentplexus/tracestore/spanmodel"
)

func TestProject_ComposesBothStores(t *testing.T) {
	p, err := NewProject("default")
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	err = p.AddSpan(spanmodel.IngestedSpan{
		SpanID:     "A",
		TraceID:    "T1",
		StatusCode: spanmodel.StatusOK,
		StartTime:  start,
		EndTime:    start.Add(50 * time.Millisecond),
	})
	if err != nil {
		t.Fatalf("AddSpan: %v", err)
	}
	if got := p.SpanCount(); got != 1 {
		t.Errorf("SpanCount = %d, want 1", got)
	}

	err = p.AddEvaluation(evalstore.Evaluation{
		Name:    "relevance",
		Subject: evalstore.SpanSubject("A"),
		Result:  evalstore.Result{HasLabel: true, Label: "yes"},
	})
	if err != nil {
		t.Fatalf("AddEvaluation: %v", err)
	}

	eval, ok := p.Evals().GetSpanEvaluation("A", "relevance")
	if !ok || eval.Result.Label != "yes" {
		t.Errorf("GetSpanEvaluation = %v, %v", eval, ok)
	}
}

func TestProject_LastUpdatedAtTracksMostRecentStore(t *testing.T) {
	p, err := NewProject("default")
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}
	if !p.LastUpdatedAt().IsZero() {
		t.Fatal("expected zero LastUpdatedAt before any ingest")
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := p.AddSpan(spanmodel.IngestedSpan{
		SpanID: "A", TraceID: "T1", StartTime: start, EndTime: start.Add(time.Millisecond),
	}); err != nil {
		t.Fatalf("AddSpan: %v", err)
	}
	afterSpan := p.LastUpdatedAt()
	if afterSpan.IsZero() {
		t.Fatal("expected non-zero LastUpdatedAt after ingest")
	}

	if err := p.AddEvaluation(evalstore.Evaluation{
		Name: "relevance", Subject: evalstore.SpanSubject("A"),
	}); err != nil {
		t.Fatalf("AddEvaluation: %v", err)
	}
	afterEval := p.LastUpdatedAt()
	if afterEval.Before(afterSpan) {
		t.Errorf("LastUpdatedAt went backwards: %v then %v", afterSpan, afterEval)
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry()

	p1, err := r.Project("team-a")
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	p2, err := r.Project("team-a")
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if p1 != p2 {
		t.Error("expected the same Project instance for the same name")
	}

	if _, err := r.Project(""); err != nil {
		t.Fatalf("Project(\"\"): %v", err)
	}
	names := r.Names()
	if len(names) != 2 {
		t.Errorf("Names() = %v, want 2 entries", names)
	}
}

func TestRegistry_ProjectsAreIndependent(t *testing.T) {
	r := NewRegistry()
	a, err := r.Project("a")
	if err != nil {
		t.Fatalf("Project(a): %v", err)
	}
	b, err := r.Project("b")
	if err != nil {
		t.Fatalf("Project(b): %v", err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := a.AddSpan(spanmodel.IngestedSpan{SpanID: "X", TraceID: "T", StartTime: start, EndTime: start}); err != nil {
		t.Fatalf("AddSpan: %v", err)
	}
	if got := b.SpanCount(); got != 0 {
		t.Errorf("project b SpanCount = %d, want 0 (projects must not share data)", got)
	}
}
