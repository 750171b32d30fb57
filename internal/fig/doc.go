// Package fig implements the container layer of figlift: recognizing the
// two magic-header variants of the design-file format, unwrapping the ZIP
// packaging when present, splitting the body into length-framed chunks, and
// decompressing individual chunk bodies.
//
// No decoding happens here. The package turns raw bytes into a validated
// *Container whose chunks are still compressed; callers decompress the
// chunks they need and hand them to the kiwi decoder.
//
// Every failure is a *FormatError carrying a code and the numeric context
// (offsets, sizes) needed to diagnose truncated or corrupt input. Nothing in
// this package panics on malformed bytes, and nothing retries: bad container
// bytes are a permanent condition.
package fig
