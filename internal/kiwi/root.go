package kiwi

import "fmt"

// Root-type discovery. The container's schema does not mark its own decode
// root, so figlift selects it by a named rule over the definition list. The
// rule is deliberately a standalone, testable function: if the producer's
// schema evolves, this file is the only thing that changes.

// rootDefinitionName is the definition name the decode root must carry.
const rootDefinitionName = "Message"

// rootRequiredFields are the fields the decode root must declare. A
// definition merely named "Message" without them is not the root.
var rootRequiredFields = []string{"nodeChanges", "blobs"}

// ErrNoRootMessage reports a schema with no usable decode root. This is a
// hard failure: decoding against a guessed root would produce garbage, so
// there is no best-effort fallback.
type ErrNoRootMessage struct {
	// Definitions holds the names that were present, for diagnostics.
	Definitions []string
}

func (e *ErrNoRootMessage) Error() string {
	return fmt.Sprintf("schema has no %q definition with fields %v (found definitions: %v)",
		rootDefinitionName, rootRequiredFields, e.Definitions)
}

// RootMessage finds the decode root in a parsed schema: the definition named
// exactly "Message" that declares at least the nodeChanges and blobs fields.
func RootMessage(s Schema) (Definition, error) {
	defs := s.Definitions()
	for _, def := range defs {
		if def.Name() != rootDefinitionName {
			continue
		}
		if hasFields(def, rootRequiredFields) {
			return def, nil
		}
	}
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name())
	}
	return nil, &ErrNoRootMessage{Definitions: names}
}

func hasFields(def Definition, required []string) bool {
	declared := make(map[string]bool, len(def.FieldNames()))
	for _, name := range def.FieldNames() {
		declared[name] = true
	}
	for _, name := range required {
		if !declared[name] {
			return false
		}
	}
	return true
}
