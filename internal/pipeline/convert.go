package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/figlift/figlift/internal/docval"
	"github.com/figlift/figlift/internal/fig"
	"github.com/figlift/figlift/internal/kiwi"
	"github.com/figlift/figlift/internal/tree"
)

// Options configures a conversion run.
type Options struct {
	// StrictGUIDs makes duplicated node GUIDs a hard error instead of
	// last-write-wins.
	StrictGUIDs bool
}

// Convert runs the full pipeline over raw container bytes and returns the
// document envelope: {version, fileType, document}.
//
// Every failure is permanent for the given bytes: callers should not retry.
func Convert(data []byte, dec kiwi.Decoder, opts Options) (*docval.Object, error) {
	if fig.IsArchive(data) {
		inner, err := fig.ResolveCanvas(data)
		if err != nil {
			return nil, err
		}
		data = inner
	}

	container, err := fig.Frame(data)
	if err != nil {
		return nil, err
	}

	schemaBytes, err := fig.Decompress(0, container.SchemaChunk().Body)
	if err != nil {
		return nil, err
	}
	dataBytes, err := fig.Decompress(1, container.DataChunk().Body)
	if err != nil {
		return nil, err
	}

	msg, err := decode(dec, schemaBytes, dataBytes)
	if err != nil {
		return nil, err
	}

	changes, ok := nodeChanges(msg)
	if !ok {
		return nil, fmt.Errorf("decoded message has no nodeChanges array")
	}

	document, err := tree.Build(changes, tree.Options{StrictGUIDs: opts.StrictGUIDs})
	if err != nil {
		return nil, err
	}

	env := docval.NewObject()
	env.Set("version", versionOf(msg))
	env.Set("fileType", docval.String(container.Type))
	env.Set("document", document)
	return env, nil
}

// decode runs root-type discovery and the external decoder, then projects
// the result. The decoder's own errors are opaque; they surface wrapped as
// kiwi.DecodeError with the message preserved.
func decode(dec kiwi.Decoder, schemaBytes, dataBytes []byte) (*docval.Object, error) {
	schema, err := dec.ParseSchema(schemaBytes)
	if err != nil {
		return nil, &kiwi.DecodeError{Stage: "schema", Err: err}
	}

	root, err := kiwi.RootMessage(schema)
	if err != nil {
		return nil, fmt.Errorf("root type discovery: %w", err)
	}

	tagged, err := dec.Decode(schema, root.Name(), dataBytes)
	if err != nil {
		return nil, &kiwi.DecodeError{Stage: "data", Err: err}
	}

	msg, ok := docval.Project(tagged).(*docval.Object)
	if !ok {
		return nil, fmt.Errorf("decoded root is not an object")
	}
	return msg, nil
}

func nodeChanges(msg *docval.Object) (docval.Array, bool) {
	v, ok := msg.Get("nodeChanges")
	if !ok {
		return nil, false
	}
	arr, ok := v.(docval.Array)
	return arr, ok
}

// versionOf reads the message's numeric version field; 0 when absent.
func versionOf(msg *docval.Object) docval.Number {
	if v, ok := msg.Get("version"); ok {
		if n, ok := v.(docval.Number); ok {
			return n
		}
	}
	return docval.Number(0)
}

// DigestBytes returns the hex sha256 of already-serialized output.
func DigestBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// CanonicalDigest returns the hex sha256 of a value's canonical JSON. The
// same logical document digests identically regardless of field insertion
// order.
func CanonicalDigest(v docval.Value) (string, error) {
	canonical, err := docval.MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("canonicalizing for digest: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
