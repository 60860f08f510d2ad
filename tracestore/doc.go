// Package tracestore composes a Span Store and an Evaluation Store into a
// single Project façade, and hosts multiple named projects behind a
// Registry, per spec.md §4.3.
package tracestore
