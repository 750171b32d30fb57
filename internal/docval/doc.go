// Package docval provides the JSON-like value tree figlift produces: null,
// bool, number, string, array, and an insertion-ordered object.
//
// Two serializations exist. Marshal preserves object insertion order so
// converted documents diff cleanly between runs. MarshalCanonical sorts keys
// and NFC-normalizes strings; it exists solely for content digests and must
// never be fed back to users as the document itself.
//
// Projection from the decoder's tagged values lives here too (Project). It
// is total: every tagged variant has a defined projection and there is no
// error case.
package docval
