package spanstore

import "errors"

// ErrCyclicAncestry is returned by AddSpan when accepting a span would close
// a cycle in the parent relation, which spec.md §9 treats as corrupt input:
// the parent relation is logically a forest, and the offending span's
// ingest is aborted rather than corrupting the index.
var ErrCyclicAncestry = errors.New("spanstore: span's parent chain would form a cycle")
