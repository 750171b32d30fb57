// Package tree reconstructs the rooted document tree from the flat
// nodeChanges list.
//
// The flat list is effectively an op-log keyed by stable identifiers: each
// record names itself with a {sessionID, localID} GUID and names its parent
// through parentIndex. Reconstruction builds a GUID-to-record index and a
// separate GUID-to-ordered-children index, then materializes recursively
// from the root. No record ever holds a reference to another record, so
// reference cycles are impossible at the type level.
//
// Sibling order comes from parentIndex.position, an opaque string compared
// byte-wise. That comparison is the entire ordering contract; no fractional
// index arithmetic happens here.
//
// A build either produces the complete tree or fails with a *BuildError.
// Partial trees are not a supported output: a dangling parent reference or a
// missing root aborts the whole build instead of dropping the subtree.
package tree
