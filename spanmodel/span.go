package spanmodel

import (
	"strings"
	"time"
)

// IngestedSpan is the shape the out-of-scope wire decoder is expected to
// produce: the ingest-time fields of a span, before the store has assigned
// any computed attribute. spanstore.Store.AddSpan takes this shape.
type IngestedSpan struct {
	SpanID   SpanID
	TraceID  TraceID
	ParentID SpanID // empty means root

	Name       string
	Kind       SpanKind
	StatusCode StatusCode
	StartTime  time.Time
	EndTime    time.Time

	// Attributes holds ingested payload, keyed by OpenInference-style
	// attribute names (see semconv/span). Keys prefixed with
	// spanmodel.ComputedPrefix are legacy and must not reach the store's
	// index; StripLegacyComputed removes them.
	Attributes map[string]any
}

// StripLegacyComputed returns a copy of attrs with any key carrying the
// reserved computed-attribute prefix removed. Legacy ingest payloads may
// carry stale `__computed__.*` attributes from a previous store version;
// those must never shadow values the store itself derives.
func StripLegacyComputed(attrs map[string]any) map[string]any {
	if len(attrs) == 0 {
		return attrs
	}
	clean := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if strings.HasPrefix(k, ComputedPrefix) {
			continue
		}
		clean[k] = v
	}
	return clean
}

// Span is the store's internal, indexed representation: the fields of
// IngestedSpan plus the Computed record the store owns. IsRoot reports
// whether the span is a root span (no recorded parent) — it is derived
// once at construction from whether ParentID is empty and never
// recomputed, since a span's root-ness cannot change after ingest.
type Span struct {
	SpanID   SpanID
	TraceID  TraceID
	ParentID SpanID
	IsRoot   bool

	Name       string
	Kind       SpanKind
	StatusCode StatusCode
	StartTime  time.Time
	EndTime    time.Time

	Attributes map[string]any
	Computed   Computed

	// seq is the insertion sequence assigned by the store; it breaks ties
	// between spans that share a sort key (start time or latency) so
	// ordered reads have a stable, deterministic order.
	seq uint64
}

// NewSpan builds the store's indexed Span from a decoded IngestedSpan and
// the insertion sequence the store has assigned it. Timestamps are
// normalised to UTC per spec.md §3.1.
func NewSpan(in IngestedSpan, seq uint64) *Span {
	return &Span{
		SpanID:     in.SpanID,
		TraceID:    in.TraceID,
		ParentID:   in.ParentID,
		IsRoot:     in.ParentID == "",
		Name:       in.Name,
		Kind:       in.Kind,
		StatusCode: in.StatusCode,
		StartTime:  in.StartTime.UTC(),
		EndTime:    in.EndTime.UTC(),
		Attributes: StripLegacyComputed(in.Attributes),
		seq:        seq,
	}
}

// Seq returns the insertion sequence assigned at ingest time.
func (s *Span) Seq() uint64 { return s.seq }

// Attribute reads an ingested attribute by key, returning (nil, false) when
// absent — callers never get a panic for an unknown key.
func (s *Span) Attribute(key string) (any, bool) {
	v, ok := s.Attributes[key]
	return v, ok
}
