package evalstore

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/agentplexus/tracestore/spanmodel"
)

// ErrUnknownSubjectKind is returned by AddEvaluation when a Subject carries
// a Kind outside the closed set spec.md §3.3 defines. Per spec.md §7 item
// 3 this is a programmer/decoder-contract error, not a normal runtime
// condition.
var ErrUnknownSubjectKind = errors.New("evalstore: unknown evaluation subject kind")

// Store is the Evaluation Store. The zero value is not usable; construct
// one with New. All exported methods are safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	logger *slog.Logger

	spanByID   map[spanmodel.SpanID]map[string]Evaluation // by_span[span_id][name]
	bySpanName map[string]map[spanmodel.SpanID]Evaluation // span_by_name[name][span_id]

	traceByID   map[spanmodel.TraceID]map[string]Evaluation
	byTraceName map[string]map[spanmodel.TraceID]Evaluation

	docBySpanID   map[spanmodel.SpanID]map[string]map[int]Evaluation // by_document[span_id][name][position]
	docByNameSpan map[string]map[spanmodel.SpanID]map[int]Evaluation // doc_by_name[name][span_id][position]

	labelsByName map[string]map[string]struct{}

	lastUpdatedAt time.Time
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithLogger overrides the logger used for discarded-evaluation warnings.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates an empty Evaluation Store.
func New(opts ...Option) *Store {
	s := &Store{
		spanByID:      make(map[spanmodel.SpanID]map[string]Evaluation),
		bySpanName:    make(map[string]map[spanmodel.SpanID]Evaluation),
		traceByID:     make(map[spanmodel.TraceID]map[string]Evaluation),
		byTraceName:   make(map[string]map[spanmodel.TraceID]Evaluation),
		docBySpanID:   make(map[spanmodel.SpanID]map[string]map[int]Evaluation),
		docByNameSpan: make(map[string]map[spanmodel.SpanID]map[int]Evaluation),
		labelsByName:  make(map[string]map[string]struct{}),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LastUpdatedAt returns the UTC instant of the most recently accepted
// evaluation, or the zero time if none has arrived yet.
func (s *Store) LastUpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdatedAt
}

// AddEvaluation ingests an evaluation per spec.md §4.2. Any existing entry
// keyed the same way is overwritten (last-writer-wins).
func (s *Store) AddEvaluation(e Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Subject.Kind {
	case SubjectSpan:
		s.addSpanEvaluationLocked(e)
	case SubjectTrace:
		s.addTraceEvaluationLocked(e)
	case SubjectDocument:
		s.addDocumentEvaluationLocked(e)
	case SubjectUnknown:
		s.logger.Warn("discarding evaluation with missing subject", "evaluation_name", e.Name)
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownSubjectKind, e.Subject.Kind)
	}

	s.lastUpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) addSpanEvaluationLocked(e Evaluation) {
	byName := s.spanByID[e.Subject.SpanID]
	if byName == nil {
		byName = make(map[string]Evaluation)
		s.spanByID[e.Subject.SpanID] = byName
	}
	byName[e.Name] = e

	bySpan := s.bySpanName[e.Name]
	if bySpan == nil {
		bySpan = make(map[spanmodel.SpanID]Evaluation)
		s.bySpanName[e.Name] = bySpan
	}
	bySpan[e.Subject.SpanID] = e

	if e.Result.HasLabel {
		labels := s.labelsByName[e.Name]
		if labels == nil {
			labels = make(map[string]struct{})
			s.labelsByName[e.Name] = labels
		}
		labels[e.Result.Label] = struct{}{}
	}
}

func (s *Store) addTraceEvaluationLocked(e Evaluation) {
	byName := s.traceByID[e.Subject.TraceID]
	if byName == nil {
		byName = make(map[string]Evaluation)
		s.traceByID[e.Subject.TraceID] = byName
	}
	byName[e.Name] = e

	byTrace := s.byTraceName[e.Name]
	if byTrace == nil {
		byTrace = make(map[spanmodel.TraceID]Evaluation)
		s.byTraceName[e.Name] = byTrace
	}
	byTrace[e.Subject.TraceID] = e
}

func (s *Store) addDocumentEvaluationLocked(e Evaluation) {
	byName := s.docBySpanID[e.Subject.SpanID]
	if byName == nil {
		byName = make(map[string]map[int]Evaluation)
		s.docBySpanID[e.Subject.SpanID] = byName
	}
	byPosition := byName[e.Name]
	if byPosition == nil {
		byPosition = make(map[int]Evaluation)
		byName[e.Name] = byPosition
	}
	byPosition[e.Subject.DocumentPosition] = e

	bySpan := s.docByNameSpan[e.Name]
	if bySpan == nil {
		bySpan = make(map[spanmodel.SpanID]map[int]Evaluation)
		s.docByNameSpan[e.Name] = bySpan
	}
	byPosition2 := bySpan[e.Subject.SpanID]
	if byPosition2 == nil {
		byPosition2 = make(map[int]Evaluation)
		bySpan[e.Subject.SpanID] = byPosition2
	}
	byPosition2[e.Subject.DocumentPosition] = e
}
