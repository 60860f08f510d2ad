package spanstore

import (
	"cmp"

	"github.com/tidwall/btree"

	"github.com/agentplexus/tracestore/spanmodel"
)

// orderedIndex is a sorted multiset of spans keyed by K (start time in Unix
// nanoseconds, or latency in milliseconds), with ties broken by insertion
// sequence. It backs by_start_time, roots_by_start_time, and
// roots_by_latency from spec.md §4.1.
//
// github.com/tidwall/btree (a real dependency of DataDog-dd-trace-go) gives
// O(log n) insert and ordered ascend/descend, the same guarantee spec.md §9
// asks of "a balanced ordered multiset... a skiplist is equally acceptable".
type orderedIndex[K cmp.Ordered] struct {
	tree *btree.BTreeG[orderedEntry[K]]
}

type orderedEntry[K cmp.Ordered] struct {
	key  K
	seq  uint64
	span *spanmodel.Span
}

func newOrderedIndex[K cmp.Ordered]() *orderedIndex[K] {
	less := func(a, b orderedEntry[K]) bool {
		if a.key != b.key {
			return a.key < b.key
		}
		return a.seq < b.seq
	}
	return &orderedIndex[K]{tree: btree.NewBTreeG(less)}
}

func (idx *orderedIndex[K]) insert(key K, seq uint64, s *spanmodel.Span) {
	idx.tree.Set(orderedEntry[K]{key: key, seq: seq, span: s})
}

func (idx *orderedIndex[K]) Len() int {
	return idx.tree.Len()
}

// minMaxKey returns the smallest and largest keys currently stored, and
// whether the index is non-empty.
func (idx *orderedIndex[K]) minMaxKey() (min, max K, ok bool) {
	first, ok1 := idx.tree.Min()
	last, ok2 := idx.tree.Max()
	if !ok1 || !ok2 {
		return min, max, false
	}
	return first.key, last.key, true
}

// rangeDescending visits every span with key in the half-open interval
// [lo, hi), most recent (largest key) first, until visit returns false.
//
// tidwall/btree's Descend/Ascend are pivot-inclusive, which doesn't map
// cleanly onto an exclusive upper bound when ties are broken by a second
// field (seq) — rather than reach for fragile pivot arithmetic, this walks
// down from the true maximum and filters in the callback, which is exactly
// as correct and only costs the (already-ordered) entries above hi.
func (idx *orderedIndex[K]) rangeDescending(lo, hi K, visit func(s *spanmodel.Span) bool) {
	last, ok := idx.tree.Max()
	if !ok {
		return
	}
	idx.tree.Descend(last, func(e orderedEntry[K]) bool {
		if e.key >= hi {
			return true // above the window, keep scanning down
		}
		if e.key < lo {
			return false // past the window, stop
		}
		return visit(e.span)
	})
}
