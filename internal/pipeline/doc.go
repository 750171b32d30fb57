// Package pipeline runs one full conversion: container bytes in, JSON-like
// document envelope out.
//
// Stages run strictly forward (archive resolution, chunk framing, per-chunk
// decompression, kiwi decode, value projection, tree reconstruction) and no
// stage reaches backward. Everything is synchronous and single-threaded over
// one in-memory buffer; a conversion either runs to completion or fails
// deterministically on the bytes given. There is no state between runs, so
// converting the same bytes twice produces byte-identical output.
package pipeline
