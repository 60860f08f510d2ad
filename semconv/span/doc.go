// Package span provides the OpenInference semantic-convention attribute keys
// that the trace store treats specially when ingesting a span.
//
// These are the keys an upstream OTLP decoder is expected to populate on
// IngestedSpan.Attributes; the store reads them to derive computed
// attributes (token totals, document counts) but never writes them back.
//
// # References
//
//   - OpenInference semantic conventions: https://github.com/Arize-ai/openinference
package span
