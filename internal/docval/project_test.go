package docval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figlift/figlift/internal/kiwi"
)

func TestProjectScalars(t *testing.T) {
	tests := []struct {
		name string
		in   kiwi.TaggedValue
		want Value
	}{
		{"bool", kiwi.Bool(true), Bool(true)},
		{"byte", kiwi.Byte(255), Number(255)},
		{"int", kiwi.Int(-7), Number(-7)},
		{"uint", kiwi.Uint(7), Number(7)},
		{"float", kiwi.Float(1.5), Number(1.5)},
		{"string", kiwi.String("hello"), String("hello")},
		{"int64", kiwi.Int64(-1 << 40), Number(-1 << 40)},
		{"uint64", kiwi.Uint64(1 << 40), Number(1 << 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Project(tt.in))
		})
	}
}

func TestProjectNonFiniteFloatsBecomeNull(t *testing.T) {
	tests := []struct {
		name string
		in   kiwi.Float
	}{
		{"NaN", kiwi.Float(float32(math.NaN()))},
		{"+Inf", kiwi.Float(float32(math.Inf(1)))},
		{"-Inf", kiwi.Float(float32(math.Inf(-1)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Null{}, Project(tt.in))
		})
	}
}

func TestProjectFiniteFloatsRoundTrip(t *testing.T) {
	for _, f := range []float32{0.0, float32(math.Copysign(0, -1)), 1.5} {
		got := Project(kiwi.Float(f))
		num, ok := got.(Number)
		require.True(t, ok)
		assert.Equal(t, float64(f), float64(num))
	}
}

func TestProjectEnum(t *testing.T) {
	got := Project(kiwi.Enum{Type: "BlendMode", Variant: "NORMAL"})

	out, err := Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, `{"__enum__":"BlendMode","value":"NORMAL"}`, string(out))
}

func TestProjectArrayPreservesOrder(t *testing.T) {
	got := Project(kiwi.Array{kiwi.Int(3), kiwi.Int(1), kiwi.Int(2)})

	assert.Equal(t, Array{Number(3), Number(1), Number(2)}, got)
}

func TestProjectObjectDropsTypeName(t *testing.T) {
	in := kiwi.Object{
		Type: "NodeChange",
		Fields: []kiwi.Field{
			{Name: "name", Value: kiwi.String("Page 1")},
			{Name: "opacity", Value: kiwi.Float(0.5)},
		},
	}

	got := Project(in)
	obj, ok := got.(*Object)
	require.True(t, ok)

	// The declared type name is metadata, not a field.
	assert.False(t, obj.Has("NodeChange"))
	assert.False(t, obj.Has("__type__"))
	assert.Equal(t, []string{"name", "opacity"}, obj.Keys())
}

func TestProjectNestedObject(t *testing.T) {
	in := kiwi.Object{
		Type: "NodeChange",
		Fields: []kiwi.Field{
			{Name: "guid", Value: kiwi.Object{
				Type: "GUID",
				Fields: []kiwi.Field{
					{Name: "sessionID", Value: kiwi.Uint64(4)},
					{Name: "localID", Value: kiwi.Uint64(25)},
				},
			}},
		},
	}

	out, err := Marshal(Project(in))
	require.NoError(t, err)
	assert.Equal(t, `{"guid":{"sessionID":4,"localID":25}}`, string(out))
}
