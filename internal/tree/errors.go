package tree

import (
	"errors"
	"fmt"
)

// BuildError represents a data-integrity failure during tree
// reconstruction. Every build failure is one of these; the input bytes were
// well-formed enough to decode, but the record list does not describe a
// single rooted tree.
type BuildError struct {
	// Code identifies the failure category.
	Code BuildErrorCode

	// Message is a human-readable description.
	Message string

	// GUID identifies the offending record, where known.
	GUID string

	// Parent identifies the unresolved parent reference, for
	// ErrCodeUnresolvedParent.
	Parent string
}

// BuildErrorCode categorizes reconstruction failures.
type BuildErrorCode string

const (
	// ErrCodeMissingRoot indicates no record carries the root identifier.
	ErrCodeMissingRoot BuildErrorCode = "MISSING_ROOT"

	// ErrCodeUnresolvedParent indicates a record whose parentIndex.guid
	// matches no indexed record.
	ErrCodeUnresolvedParent BuildErrorCode = "UNRESOLVED_PARENT"

	// ErrCodeDuplicateGUID indicates two records sharing a GUID, reported
	// only in strict mode.
	ErrCodeDuplicateGUID BuildErrorCode = "DUPLICATE_GUID"

	// ErrCodeMissingGUID indicates a record with no usable guid field.
	ErrCodeMissingGUID BuildErrorCode = "MISSING_GUID"

	// ErrCodeInvalidRecord indicates a nodeChanges entry that is not an
	// object.
	ErrCodeInvalidRecord BuildErrorCode = "INVALID_RECORD"

	// ErrCodeUnreachableRecords indicates records that resolve their parents
	// but are not reachable from the root (a parent cycle detached from the
	// tree).
	ErrCodeUnreachableRecords BuildErrorCode = "UNREACHABLE_RECORDS"
)

// Error implements the error interface.
func (e *BuildError) Error() string {
	switch {
	case e.GUID != "" && e.Parent != "":
		return fmt.Sprintf("%s: %s (node=%s, parent=%s)", e.Code, e.Message, e.GUID, e.Parent)
	case e.GUID != "":
		return fmt.Sprintf("%s: %s (node=%s)", e.Code, e.Message, e.GUID)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsUnresolvedParent returns true for dangling parent references. Uses
// errors.As to handle wrapped errors.
func IsUnresolvedParent(err error) bool {
	var be *BuildError
	return errors.As(err, &be) && be.Code == ErrCodeUnresolvedParent
}

// IsMissingRoot returns true when the record list has no root record.
func IsMissingRoot(err error) bool {
	var be *BuildError
	return errors.As(err, &be) && be.Code == ErrCodeMissingRoot
}
