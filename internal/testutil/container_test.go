package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figlift/figlift/internal/fig"
	"github.com/figlift/figlift/internal/kiwi"
)

func TestContainerRoundTrips(t *testing.T) {
	data := DesignContainer(t, []byte("schema"), []byte("data"))

	c, err := fig.Frame(data)
	require.NoError(t, err)
	assert.Equal(t, fig.FileTypeDesign, c.Type)
	require.Len(t, c.Chunks, 2)

	schema, err := fig.Decompress(0, c.SchemaChunk().Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("schema"), schema)
}

func TestZipContainerRoundTrips(t *testing.T) {
	inner := DesignContainer(t, []byte("s"), []byte("d"))
	wrapped := ZipContainer(t, inner, map[string][]byte{"preview.png": []byte("img")})

	require.True(t, fig.IsArchive(wrapped))
	got, err := fig.ResolveCanvas(wrapped)
	require.NoError(t, err)
	assert.Equal(t, inner, got)
}

func TestSampleMessagePassesRootDiscovery(t *testing.T) {
	dec := &FakeDecoder{}
	schema, err := dec.ParseSchema([]byte("ignored"))
	require.NoError(t, err)

	root, err := kiwi.RootMessage(schema)
	require.NoError(t, err)
	assert.Equal(t, "Message", root.Name())

	msg := SampleMessage()
	_, hasChanges := msg.Get("nodeChanges")
	assert.True(t, hasChanges)
	_, hasBlobs := msg.Get("blobs")
	assert.True(t, hasBlobs)
}
