// Package writers owns the byte destination of a conversion.
//
// Design:
//   • Sinks pick the destination (file or stdout) and the compression codec.
//   • Codecs come from a name → constructor registry; "auto" goes by extension.
//   • Line formatting stays in internal/output; writers only moves bytes.
package writers
