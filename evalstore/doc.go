// Package evalstore implements the Evaluation Store: the index that joins
// evaluations to their subjects (span, trace, or retrieved document) and
// exports them as tabular artifacts, per spec.md §4.2.
package evalstore
