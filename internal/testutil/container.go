// Package testutil provides fixtures shared by figlift tests: synthetic
// container builders and a fake kiwi decoder.
package testutil

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/figlift/figlift/internal/fig"
)

// Deflate compresses a payload the way container chunks are stored.
func Deflate(t *testing.T, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// Container frames deflate-compressed chunks behind the given magic.
// Payloads are the uncompressed chunk bodies, in order.
func Container(t *testing.T, magic string, payloads ...[]byte) []byte {
	t.Helper()
	require.Len(t, []byte(magic), fig.HeaderSize, "magic must be exactly 8 bytes")

	buf := []byte(magic)
	for _, payload := range payloads {
		body := Deflate(t, payload)
		var lenPrefix [4]byte
		binary.LittleEndian.PutUint32(lenPrefix[:], uint32(len(body)))
		buf = append(buf, lenPrefix[:]...)
		buf = append(buf, body...)
	}
	return buf
}

// DesignContainer frames chunks behind the design-file magic.
func DesignContainer(t *testing.T, payloads ...[]byte) []byte {
	t.Helper()
	return Container(t, "fig-kiwi", payloads...)
}

// ZipContainer wraps an inner container in a ZIP archive under the canvas
// entry name, plus any extra entries.
func ZipContainer(t *testing.T, inner []byte, extra map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	f, err := w.Create(fig.CanvasEntryName)
	require.NoError(t, err)
	_, err = f.Write(inner)
	require.NoError(t, err)

	for name, body := range extra {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(body)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}
