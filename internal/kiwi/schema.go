package kiwi

import (
	"fmt"
	"sync"
)

// Schema is the decoder's parsed view of a binary schema chunk. figlift only
// needs to enumerate its message definitions for root-type discovery; the
// rest of the schema stays opaque to this module.
type Schema interface {
	// Definitions lists the message definitions in schema declaration order.
	Definitions() []Definition
}

// Definition is one message definition inside a Schema.
type Definition interface {
	// Name is the declared definition name.
	Name() string

	// FieldNames lists the definition's field names in declaration order.
	FieldNames() []string
}

// Decoder turns binary schema and data chunks into a tagged value tree.
// Implementations live outside this module; see Register.
type Decoder interface {
	// ParseSchema parses the decompressed schema chunk.
	ParseSchema(schema []byte) (Schema, error)

	// Decode decodes the decompressed data chunk against the schema, using
	// the definition named root as the top-level message type.
	Decode(schema Schema, root string, data []byte) (TaggedValue, error)
}

// DecodeError wraps a failure from the external decoder. The decoder's
// internal error taxonomy is opaque to figlift, so everything it returns is
// surfaced under this one type with the message preserved.
type DecodeError struct {
	Stage string // "schema" or "data"
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("kiwi %s decode failed: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var (
	registerMu sync.Mutex
	registered Decoder
)

// Register installs the process-wide decoder implementation. It follows the
// database/sql driver convention: the concrete decoder package calls
// Register from an init function and the final binary links it in with a
// blank import. Registering twice panics.
func Register(d Decoder) {
	registerMu.Lock()
	defer registerMu.Unlock()
	if d == nil {
		panic("kiwi: Register called with nil Decoder")
	}
	if registered != nil {
		panic("kiwi: Register called twice")
	}
	registered = d
}

// Registered returns the installed decoder, or an error if the binary was
// built without one.
func Registered() (Decoder, error) {
	registerMu.Lock()
	defer registerMu.Unlock()
	if registered == nil {
		return nil, fmt.Errorf("no kiwi decoder linked into this binary")
	}
	return registered, nil
}
