package decode

import (
	"time"

	"github.com/agentplexus/tracestore/semconv/span"
	"github.com/agentplexus/tracestore/spanmodel"
)

// WireSpan is the shape a decoder yields for one OpenTelemetry span,
// mirroring spec.md §3.2. Attributes carries whatever the wire payload
// happened to include, OpenInference keys and anything else; DecodeSpan
// does not validate it beyond what NewSpan already does.
type WireSpan struct {
	SpanID     string
	TraceID    string
	ParentID   string
	Name       string
	Kind       string
	StatusCode string
	StartTime  time.Time
	EndTime    time.Time
	Attributes map[string]any
}

// Usage is the token-accounting shape most LLM wire formats attach to a
// span; WithUsage folds it into the decoded attributes under the
// OpenInference keys the core reads.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// WithUsage copies usage into attrs under the OpenInference token-count
// keys, overwriting any value already present under those keys.
func WithUsage(attrs map[string]any, usage Usage) map[string]any {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs[span.LLMTokenCountPrompt] = usage.PromptTokens
	attrs[span.LLMTokenCountCompletion] = usage.CompletionTokens
	attrs[span.LLMTokenCountTotal] = usage.TotalTokens
	return attrs
}

// WithDocuments copies documents into attrs under the OpenInference
// retrieval-documents key, overwriting any value already present there.
func WithDocuments(attrs map[string]any, documents []any) map[string]any {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs[span.RetrievalDocuments] = documents
	return attrs
}

var spanKindAliases = map[string]spanmodel.SpanKind{
	"LLM":       spanmodel.SpanKindLLM,
	"CHAIN":     spanmodel.SpanKindChain,
	"TOOL":      spanmodel.SpanKindTool,
	"AGENT":     spanmodel.SpanKindAgent,
	"RETRIEVER": spanmodel.SpanKindRetriever,
	"EMBEDDING": spanmodel.SpanKindEmbedding,
	"RERANKER":  spanmodel.SpanKindReranker,
	"GUARDRAIL": spanmodel.SpanKindGuardrail,
	"EVALUATOR": spanmodel.SpanKindEvaluator,
}

func decodeSpanKind(raw string) spanmodel.SpanKind {
	if kind, ok := spanKindAliases[raw]; ok {
		return kind
	}
	return spanmodel.SpanKindUnknown
}

var statusCodeAliases = map[string]spanmodel.StatusCode{
	"OK":    spanmodel.StatusOK,
	"ERROR": spanmodel.StatusError,
}

func decodeStatusCode(raw string) spanmodel.StatusCode {
	if code, ok := statusCodeAliases[raw]; ok {
		return code
	}
	return spanmodel.StatusUnset
}

// DecodeSpan translates a WireSpan into the IngestedSpan shape spanstore's
// AddSpan accepts.
func DecodeSpan(w WireSpan) spanmodel.IngestedSpan {
	return spanmodel.IngestedSpan{
		SpanID:     spanmodel.SpanID(w.SpanID),
		TraceID:    spanmodel.TraceID(w.TraceID),
		ParentID:   spanmodel.SpanID(w.ParentID),
		Name:       w.Name,
		Kind:       decodeSpanKind(w.Kind),
		StatusCode: decodeStatusCode(w.StatusCode),
		StartTime:  w.StartTime,
		EndTime:    w.EndTime,
		Attributes: w.Attributes,
	}
}
