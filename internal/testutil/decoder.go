package testutil

import (
	"fmt"

	"github.com/figlift/figlift/internal/kiwi"
)

// FakeDefinition implements kiwi.Definition.
type FakeDefinition struct {
	DefName string
	Fields  []string
}

func (d FakeDefinition) Name() string         { return d.DefName }
func (d FakeDefinition) FieldNames() []string { return d.Fields }

// FakeSchema implements kiwi.Schema over a fixed definition list.
type FakeSchema struct {
	Defs []FakeDefinition
}

func (s FakeSchema) Definitions() []kiwi.Definition {
	defs := make([]kiwi.Definition, len(s.Defs))
	for i, d := range s.Defs {
		defs[i] = d
	}
	return defs
}

// MessageSchema returns a schema whose root-type discovery succeeds.
func MessageSchema() FakeSchema {
	return FakeSchema{Defs: []FakeDefinition{
		{DefName: "GUID", Fields: []string{"sessionID", "localID"}},
		{DefName: "NodeChange", Fields: []string{"guid", "parentIndex", "name", "type"}},
		{DefName: "Message", Fields: []string{"type", "sessionID", "ackID", "nodeChanges", "blobs"}},
	}}
}

// FakeDecoder implements kiwi.Decoder without touching binary formats. It
// hands back canned results and records what it was called with.
type FakeDecoder struct {
	Schema    kiwi.Schema
	Value     kiwi.TaggedValue
	SchemaErr error
	DecodeErr error

	// Call records, for assertions.
	GotSchemaBytes []byte
	GotRoot        string
	GotDataBytes   []byte
}

func (d *FakeDecoder) ParseSchema(schema []byte) (kiwi.Schema, error) {
	d.GotSchemaBytes = append([]byte(nil), schema...)
	if d.SchemaErr != nil {
		return nil, d.SchemaErr
	}
	if d.Schema == nil {
		return MessageSchema(), nil
	}
	return d.Schema, nil
}

func (d *FakeDecoder) Decode(schema kiwi.Schema, root string, data []byte) (kiwi.TaggedValue, error) {
	d.GotRoot = root
	d.GotDataBytes = append([]byte(nil), data...)
	if d.DecodeErr != nil {
		return nil, d.DecodeErr
	}
	if d.Value == nil {
		return nil, fmt.Errorf("FakeDecoder has no canned value")
	}
	return d.Value, nil
}

// GUIDValue builds a tagged {sessionID, localID} object.
func GUIDValue(session, local uint64) kiwi.Object {
	return kiwi.Object{Type: "GUID", Fields: []kiwi.Field{
		{Name: "sessionID", Value: kiwi.Uint64(session)},
		{Name: "localID", Value: kiwi.Uint64(local)},
	}}
}

// NodeChange builds a tagged node record. parent == nil omits parentIndex
// (the root record); extra fields are appended after the structural ones.
func NodeChange(session, local uint64, parent *kiwi.Object, position string, extra ...kiwi.Field) kiwi.Object {
	fields := []kiwi.Field{{Name: "guid", Value: GUIDValue(session, local)}}
	if parent != nil {
		fields = append(fields, kiwi.Field{Name: "parentIndex", Value: kiwi.Object{
			Type: "ParentIndex",
			Fields: []kiwi.Field{
				{Name: "guid", Value: *parent},
				{Name: "position", Value: kiwi.String(position)},
			},
		}})
	}
	fields = append(fields, extra...)
	return kiwi.Object{Type: "NodeChange", Fields: fields}
}

// SampleMessage builds a small but representative decoded Message: a root
// document, one canvas page, and two shapes whose positions sort against
// insertion order. Exercises enums, floats, and nested objects.
func SampleMessage() kiwi.Object {
	rootGUID := GUIDValue(0, 0)
	pageGUID := GUIDValue(1, 2)

	page := NodeChange(1, 2, &rootGUID, "!",
		kiwi.Field{Name: "type", Value: kiwi.Enum{Type: "NodeType", Variant: "CANVAS"}},
		kiwi.Field{Name: "name", Value: kiwi.String("Page 1")},
	)
	rect := NodeChange(1, 3, &pageGUID, "b",
		kiwi.Field{Name: "type", Value: kiwi.Enum{Type: "NodeType", Variant: "RECTANGLE"}},
		kiwi.Field{Name: "name", Value: kiwi.String("Rect")},
		kiwi.Field{Name: "opacity", Value: kiwi.Float(0.5)},
		kiwi.Field{Name: "blendMode", Value: kiwi.Enum{Type: "BlendMode", Variant: "NORMAL"}},
	)
	text := NodeChange(2, 1, &pageGUID, "a",
		kiwi.Field{Name: "type", Value: kiwi.Enum{Type: "NodeType", Variant: "TEXT"}},
		kiwi.Field{Name: "name", Value: kiwi.String("Label <em>")}, // HTML stays unescaped in output
		kiwi.Field{Name: "visible", Value: kiwi.Bool(true)},
	)
	doc := NodeChange(0, 0, nil, "",
		kiwi.Field{Name: "type", Value: kiwi.Enum{Type: "NodeType", Variant: "DOCUMENT"}},
		kiwi.Field{Name: "name", Value: kiwi.String("Document")},
	)

	return kiwi.Object{Type: "Message", Fields: []kiwi.Field{
		{Name: "type", Value: kiwi.Enum{Type: "MessageType", Variant: "NODE_CHANGES"}},
		{Name: "sessionID", Value: kiwi.Uint(7)},
		{Name: "version", Value: kiwi.Uint(20)},
		{Name: "nodeChanges", Value: kiwi.Array{doc, page, rect, text}},
		{Name: "blobs", Value: kiwi.Array{}},
	}}
}
