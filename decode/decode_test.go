package decode

import (
	"testing"
	"time"

	"github.com/agentplexus/tracestore/evalstore"
	"github.com/agentplexus/tracestore/semconv/span"
	"github.com/agentplexus/tracestore/spanmodel"
)

func TestDecodeSpan(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w := WireSpan{
		SpanID:     "A",
		TraceID:    "T1",
		Name:       "call-llm",
		Kind:       "LLM",
		StatusCode: "OK",
		StartTime:  start,
		EndTime:    start.Add(50 * time.Millisecond),
		Attributes: WithUsage(nil, Usage{PromptTokens: 3, CompletionTokens: 7, TotalTokens: 10}),
	}

	got := DecodeSpan(w)
	if got.SpanID != "A" || got.Kind != spanmodel.SpanKindLLM || got.StatusCode != spanmodel.StatusOK {
		t.Fatalf("DecodeSpan = %+v", got)
	}
	if got.Attributes[span.LLMTokenCountTotal] != 10 {
		t.Errorf("token total = %v, want 10", got.Attributes[span.LLMTokenCountTotal])
	}
}

func TestDecodeSpan_StripsLegacyComputedViaNewSpan(t *testing.T) {
	w := WireSpan{
		SpanID: "A",
		Attributes: map[string]any{
			spanmodel.ComputedPrefix + "latency_ms": 123.0,
			"safe_key":                              "kept",
		},
	}
	ingested := DecodeSpan(w)
	built := spanmodel.NewSpan(ingested, 0)
	if _, ok := built.Attribute(spanmodel.ComputedPrefix + "latency_ms"); ok {
		t.Error("legacy computed attribute should have been stripped")
	}
	if v, ok := built.Attribute("safe_key"); !ok || v != "kept" {
		t.Errorf("safe_key = %v, %v, want kept, true", v, ok)
	}
}

func TestDecodeEvaluation_Subjects(t *testing.T) {
	spanEval, err := DecodeEvaluation(WireEvaluation{Name: "relevance", SpanID: "A"})
	if err != nil || spanEval.Subject.Kind != evalstore.SubjectSpan {
		t.Fatalf("DecodeEvaluation(span subject) = %+v, %v", spanEval, err)
	}

	doc, err := DecodeEvaluation(WireEvaluation{Name: "doc_rel", SpanID: "A", IsDocument: true, DocumentPosition: 2})
	if err != nil || doc.Subject.DocumentPosition != 2 {
		t.Fatalf("DecodeEvaluation(document subject) = %+v, %v", doc, err)
	}

	trace, err := DecodeEvaluation(WireEvaluation{Name: "toxicity", TraceID: "T1"})
	if err != nil || trace.Subject.TraceID != "T1" {
		t.Fatalf("DecodeEvaluation(trace subject) = %+v, %v", trace, err)
	}

	if _, err := DecodeEvaluation(WireEvaluation{Name: "orphan"}); err == nil {
		t.Fatal("expected ErrAmbiguousSubject for an evaluation with no subject")
	}
}
