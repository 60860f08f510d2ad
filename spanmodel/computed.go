package spanmodel

import "fmt"

// ComputedKey is one of the closed set of attribute names the store derives
// for a span rather than accepts from ingest. The set is reserved so these
// names can never collide with an ingested attribute.
type ComputedKey string

const (
	// ComputedPrefix distinguishes a computed key from an ingested
	// attribute key when both are addressed through a single string (for
	// example a dashboard query field). Legacy ingest payloads may still
	// carry attributes under this prefix; those are stripped before
	// insertion (see spanmodel.StripLegacyComputed).
	ComputedPrefix = "__computed__."

	LatencyMS                         ComputedKey = "latency_ms"
	ErrorCount                        ComputedKey = "error_count"
	CumulativeLLMTokenCountTotal      ComputedKey = "cumulative_llm_token_count_total"
	CumulativeLLMTokenCountPrompt     ComputedKey = "cumulative_llm_token_count_prompt"
	CumulativeLLMTokenCountCompletion ComputedKey = "cumulative_llm_token_count_completion"
	CumulativeErrorCount              ComputedKey = "cumulative_error_count"
)

// ErrNotComputedKey is returned when a caller attempts to write a key that
// is not part of the closed ComputedKey set.
type ErrNotComputedKey struct {
	Key string
}

func (e *ErrNotComputedKey) Error() string {
	return fmt.Sprintf("spanmodel: %q is not a computed key", e.Key)
}

// Computed holds the numeric attributes a store derives for a span. All
// fields are written only by spanstore during ingest/propagation.
type Computed struct {
	LatencyMS                         float64
	ErrorCount                        float64
	CumulativeLLMTokenCountTotal      float64
	CumulativeLLMTokenCountPrompt     float64
	CumulativeLLMTokenCountCompletion float64
	CumulativeErrorCount              float64
}

// Get reads a computed attribute by key.
func (c *Computed) Get(key ComputedKey) float64 {
	switch key {
	case LatencyMS:
		return c.LatencyMS
	case ErrorCount:
		return c.ErrorCount
	case CumulativeLLMTokenCountTotal:
		return c.CumulativeLLMTokenCountTotal
	case CumulativeLLMTokenCountPrompt:
		return c.CumulativeLLMTokenCountPrompt
	case CumulativeLLMTokenCountCompletion:
		return c.CumulativeLLMTokenCountCompletion
	case CumulativeErrorCount:
		return c.CumulativeErrorCount
	default:
		return 0
	}
}

// Set writes a computed attribute by key. It rejects any key outside the
// closed ComputedKey set, enforcing that callers cannot smuggle arbitrary
// values into the computed record (spec.md §7 item 4).
func (c *Computed) Set(key ComputedKey, value float64) error {
	switch key {
	case LatencyMS:
		c.LatencyMS = value
	case ErrorCount:
		c.ErrorCount = value
	case CumulativeLLMTokenCountTotal:
		c.CumulativeLLMTokenCountTotal = value
	case CumulativeLLMTokenCountPrompt:
		c.CumulativeLLMTokenCountPrompt = value
	case CumulativeLLMTokenCountCompletion:
		c.CumulativeLLMTokenCountCompletion = value
	case CumulativeErrorCount:
		c.CumulativeErrorCount = value
	default:
		return &ErrNotComputedKey{Key: string(key)}
	}
	return nil
}

// Add increments a computed attribute by a delta, used by ancestor
// propagation. Panics on an invalid key since propagation only ever passes
// keys it controls itself.
func (c *Computed) Add(key ComputedKey, delta float64) {
	if err := c.Set(key, c.Get(key)+delta); err != nil {
		panic(err)
	}
}
