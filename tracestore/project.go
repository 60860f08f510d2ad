package tracestore

import (
	"time"

	"github.com/agentplexus/tracestore/evalstore"
	"github.com/agentplexus/tracestore/spanmodel"
	"github.com/agentplexus/tracestore/spanstore"
)

// Project is a thin composition of a Span Store and an Evaluation Store,
// per spec.md §4.3. It adds no invariants of its own and never holds both
// sub-store locks at once: every method here calls its sub-store methods one
// after another, so at most one sub-store lock is held at a time.
type Project struct {
	Name string

	spans *spanstore.Store
	evals *evalstore.Store
}

// ProjectOption configures a Project at construction time.
type ProjectOption func(*projectConfig)

type projectConfig struct {
	spanOpts []spanstore.Option
	evalOpts []evalstore.Option
}

// WithSpanStoreOptions forwards options to the Project's Span Store.
func WithSpanStoreOptions(opts ...spanstore.Option) ProjectOption {
	return func(c *projectConfig) { c.spanOpts = append(c.spanOpts, opts...) }
}

// WithEvalStoreOptions forwards options to the Project's Evaluation Store.
func WithEvalStoreOptions(opts ...evalstore.Option) ProjectOption {
	return func(c *projectConfig) { c.evalOpts = append(c.evalOpts, opts...) }
}

// NewProject creates an empty Project named name.
func NewProject(name string, opts ...ProjectOption) (*Project, error) {
	cfg := projectConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	spans, err := spanstore.New(cfg.spanOpts...)
	if err != nil {
		return nil, err
	}

	return &Project{
		Name:  name,
		spans: spans,
		evals: evalstore.New(cfg.evalOpts...),
	}, nil
}

// Spans returns the Project's Span Store.
func (p *Project) Spans() *spanstore.Store { return p.spans }

// Evals returns the Project's Evaluation Store.
func (p *Project) Evals() *evalstore.Store { return p.evals }

// AddSpan ingests span into the Project's Span Store.
func (p *Project) AddSpan(span spanmodel.IngestedSpan) error {
	return p.spans.AddSpan(span)
}

// AddEvaluation ingests eval into the Project's Evaluation Store.
func (p *Project) AddEvaluation(eval evalstore.Evaluation) error {
	return p.evals.AddEvaluation(eval)
}

// SpanCount returns the total number of distinct spans ingested.
func (p *Project) SpanCount() int { return p.spans.SpanCount() }

// TraceCount returns the total number of distinct traces observed.
func (p *Project) TraceCount() int { return p.spans.TraceCount() }

// TokenCountTotal returns the running sum of ingested LLM token counts.
func (p *Project) TokenCountTotal() int64 { return p.spans.TokenCountTotal() }

// RightOpenTimeRange returns the Span Store's current [min_start, max_start+ε).
func (p *Project) RightOpenTimeRange() (time.Time, time.Time, bool) {
	return p.spans.RightOpenTimeRange()
}

// LastUpdatedAt returns the more recent of the two sub-stores' clocks.
func (p *Project) LastUpdatedAt() time.Time {
	spanClock := p.spans.LastUpdatedAt()
	evalClock := p.evals.LastUpdatedAt()
	if evalClock.After(spanClock) {
		return evalClock
	}
	return spanClock
}
