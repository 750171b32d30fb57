package kiwi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDef struct {
	name   string
	fields []string
}

func (d fakeDef) Name() string         { return d.name }
func (d fakeDef) FieldNames() []string { return d.fields }

type fakeSchema []fakeDef

func (s fakeSchema) Definitions() []Definition {
	defs := make([]Definition, len(s))
	for i, d := range s {
		defs[i] = d
	}
	return defs
}

func TestRootMessageFound(t *testing.T) {
	schema := fakeSchema{
		{name: "GUID", fields: []string{"sessionID", "localID"}},
		{name: "Message", fields: []string{"type", "sessionID", "nodeChanges", "blobs"}},
	}

	def, err := RootMessage(schema)
	require.NoError(t, err)
	assert.Equal(t, "Message", def.Name())
}

func TestRootMessageSkipsImposter(t *testing.T) {
	// A definition named Message without the required fields is not the root,
	// but a later qualifying one is.
	schema := fakeSchema{
		{name: "Message", fields: []string{"payload"}},
		{name: "Message", fields: []string{"nodeChanges", "blobs"}},
	}

	def, err := RootMessage(schema)
	require.NoError(t, err)
	assert.Contains(t, def.FieldNames(), "nodeChanges")
}

func TestRootMessageMissing(t *testing.T) {
	tests := []struct {
		name   string
		schema fakeSchema
	}{
		{
			name:   "empty schema",
			schema: fakeSchema{},
		},
		{
			name: "no Message definition",
			schema: fakeSchema{
				{name: "NodeChange", fields: []string{"guid", "parentIndex"}},
			},
		},
		{
			name: "Message lacks blobs",
			schema: fakeSchema{
				{name: "Message", fields: []string{"nodeChanges"}},
			},
		},
		{
			name: "field names are case sensitive",
			schema: fakeSchema{
				{name: "Message", fields: []string{"NodeChanges", "Blobs"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RootMessage(tt.schema)
			require.Error(t, err)

			var noRoot *ErrNoRootMessage
			assert.True(t, errors.As(err, &noRoot))
		})
	}
}

func TestRootMessageErrorListsDefinitions(t *testing.T) {
	schema := fakeSchema{
		{name: "NodeChange"},
		{name: "Paint"},
	}

	_, err := RootMessage(schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NodeChange")
	assert.Contains(t, err.Error(), "Paint")
}

func TestObjectGet(t *testing.T) {
	obj := Object{
		Type: "NodeChange",
		Fields: []Field{
			{Name: "name", Value: String("Frame 1")},
			{Name: "visible", Value: Bool(true)},
		},
	}

	v, ok := obj.Get("visible")
	require.True(t, ok)
	assert.Equal(t, Bool(true), v)

	_, ok = obj.Get("opacity")
	assert.False(t, ok)
}
