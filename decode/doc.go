// Package decode adapts wire-shaped span and evaluation payloads, as a
// decoder upstream of the core would hand them over, into the shapes
// spanstore and evalstore accept. It owns no state and never blocks: its
// functions are pure translation, per spec.md §6's decoder boundary.
package decode
