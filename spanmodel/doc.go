// Package spanmodel defines the identifiers and the Span representation
// shared by spanstore and evalstore.
//
// A Span overlays three things on top of what a decoder ingests: a small set
// of first-class fields (name, kind, status, timing), a generic attribute
// bag for everything else the wire format carried, and a typed record of
// computed attributes the store derives and owns. This mirrors the
// "composition over object-proxy" guidance for representing a span in a
// systems language: ingested data and derived data never share a namespace,
// so a span can't accidentally be mutated by the wrong caller.
package spanmodel
