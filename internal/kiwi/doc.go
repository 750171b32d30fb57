// Package kiwi defines the contract between figlift and the binary
// schema/value decoder that turns a schema chunk plus a data chunk into a
// tagged value tree.
//
// The decoder itself is an external collaborator: this package contains no
// binary decoding. It defines the TaggedValue variant set the decoder
// produces, the Schema/Definition views the root-type discovery rule needs,
// and a database/sql-style registration seam so a concrete decoder can be
// linked in by the final binary.
//
// All other internal packages that touch decoded values import kiwi; kiwi
// imports nothing internal.
package kiwi
