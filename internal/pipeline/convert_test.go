package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figlift/figlift/internal/docval"
	"github.com/figlift/figlift/internal/fig"
	"github.com/figlift/figlift/internal/kiwi"
	"github.com/figlift/figlift/internal/testutil"
)

func sampleContainer(t *testing.T) []byte {
	t.Helper()
	return testutil.DesignContainer(t, []byte("schema-bytes"), []byte("data-bytes"))
}

func TestConvertEnvelope(t *testing.T) {
	dec := &testutil.FakeDecoder{Value: testutil.SampleMessage()}

	env, err := Convert(sampleContainer(t), dec, Options{})
	require.NoError(t, err)

	v, _ := env.Get("version")
	assert.Equal(t, docval.Number(20), v)
	ft, _ := env.Get("fileType")
	assert.Equal(t, docval.String("design"), ft)
	assert.True(t, env.Has("document"))

	// The decoder saw the decompressed chunks and the discovered root.
	assert.Equal(t, []byte("schema-bytes"), dec.GotSchemaBytes)
	assert.Equal(t, []byte("data-bytes"), dec.GotDataBytes)
	assert.Equal(t, "Message", dec.GotRoot)
}

func TestConvertGolden(t *testing.T) {
	dec := &testutil.FakeDecoder{Value: testutil.SampleMessage()}

	env, err := Convert(sampleContainer(t), dec, Options{})
	require.NoError(t, err)

	out, err := docval.Marshal(env)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "convert_sample", out)
}

func TestConvertIdempotent(t *testing.T) {
	data := sampleContainer(t)

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		dec := &testutil.FakeDecoder{Value: testutil.SampleMessage()}
		env, err := Convert(data, dec, Options{})
		require.NoError(t, err)
		out, err := docval.Marshal(env)
		require.NoError(t, err)
		outputs = append(outputs, out)
	}

	assert.Equal(t, outputs[0], outputs[1])
}

func TestConvertZipWrapped(t *testing.T) {
	inner := sampleContainer(t)
	wrapped := testutil.ZipContainer(t, inner, map[string][]byte{
		"thumbnail.png": []byte("not a real png"),
	})

	dec := &testutil.FakeDecoder{Value: testutil.SampleMessage()}
	env, err := Convert(wrapped, dec, Options{})
	require.NoError(t, err)

	ft, _ := env.Get("fileType")
	assert.Equal(t, docval.String("design"), ft)
}

func TestConvertBoardFileType(t *testing.T) {
	data := testutil.Container(t, "fig-jam.", []byte("s"), []byte("d"))

	dec := &testutil.FakeDecoder{Value: testutil.SampleMessage()}
	env, err := Convert(data, dec, Options{})
	require.NoError(t, err)

	ft, _ := env.Get("fileType")
	assert.Equal(t, docval.String("board"), ft)
}

func TestConvertFramingErrorPropagates(t *testing.T) {
	dec := &testutil.FakeDecoder{Value: testutil.SampleMessage()}

	_, err := Convert([]byte("way too short"), dec, Options{})
	assert.Equal(t, fig.ErrCodeFileTooSmall, fig.CodeOf(err))
}

func TestConvertSchemaErrorWrapped(t *testing.T) {
	dec := &testutil.FakeDecoder{SchemaErr: fmt.Errorf("bad varint at 12")}

	_, err := Convert(sampleContainer(t), dec, Options{})
	var de *kiwi.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "schema", de.Stage)
	// The bridge's message survives wrapping.
	assert.Contains(t, err.Error(), "bad varint at 12")
}

func TestConvertDecodeErrorWrapped(t *testing.T) {
	dec := &testutil.FakeDecoder{DecodeErr: fmt.Errorf("field 9: truncated")}

	_, err := Convert(sampleContainer(t), dec, Options{})
	var de *kiwi.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "data", de.Stage)
}

func TestConvertNoRootMessage(t *testing.T) {
	dec := &testutil.FakeDecoder{
		Schema: testutil.FakeSchema{Defs: []testutil.FakeDefinition{
			{DefName: "NodeChange", Fields: []string{"guid"}},
		}},
		Value: testutil.SampleMessage(),
	}

	_, err := Convert(sampleContainer(t), dec, Options{})
	var noRoot *kiwi.ErrNoRootMessage
	assert.True(t, errors.As(err, &noRoot))
}

func TestConvertMissingNodeChanges(t *testing.T) {
	dec := &testutil.FakeDecoder{Value: kiwi.Object{
		Type: "Message",
		Fields: []kiwi.Field{
			{Name: "blobs", Value: kiwi.Array{}},
		},
	}}

	_, err := Convert(sampleContainer(t), dec, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nodeChanges")
}

func TestConvertStrictGUIDs(t *testing.T) {
	rootGUID := testutil.GUIDValue(0, 0)
	msg := kiwi.Object{Type: "Message", Fields: []kiwi.Field{
		{Name: "nodeChanges", Value: kiwi.Array{
			testutil.NodeChange(0, 0, nil, ""),
			testutil.NodeChange(0, 1, &rootGUID, "a"),
			testutil.NodeChange(0, 1, &rootGUID, "b"),
		}},
		{Name: "blobs", Value: kiwi.Array{}},
	}}

	dec := &testutil.FakeDecoder{Value: msg}
	_, err := Convert(sampleContainer(t), dec, Options{StrictGUIDs: true})
	require.Error(t, err)

	dec = &testutil.FakeDecoder{Value: msg}
	_, err = Convert(sampleContainer(t), dec, Options{})
	require.NoError(t, err)
}

func TestConvertVersionDefaultsToZero(t *testing.T) {
	msg := kiwi.Object{Type: "Message", Fields: []kiwi.Field{
		{Name: "nodeChanges", Value: kiwi.Array{testutil.NodeChange(0, 0, nil, "")}},
		{Name: "blobs", Value: kiwi.Array{}},
	}}

	dec := &testutil.FakeDecoder{Value: msg}
	env, err := Convert(sampleContainer(t), dec, Options{})
	require.NoError(t, err)

	v, _ := env.Get("version")
	assert.Equal(t, docval.Number(0), v)
}

func TestCanonicalDigestIgnoresInsertionOrder(t *testing.T) {
	a := docval.NewObject()
	a.Set("x", docval.Number(1))
	a.Set("y", docval.Number(2))

	b := docval.NewObject()
	b.Set("y", docval.Number(2))
	b.Set("x", docval.Number(1))

	da, err := CanonicalDigest(a)
	require.NoError(t, err)
	db, err := CanonicalDigest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
	assert.Len(t, da, 64)
}
