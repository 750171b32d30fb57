package fig

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// CanvasEntryName is the archive entry holding the inner framed-chunk
// stream when the container is ZIP-wrapped.
const CanvasEntryName = "canvas.fig"

var zipMagic = []byte("PK\x03\x04")

// IsArchive reports whether the buffer looks like a ZIP archive rather than
// raw framed chunks.
func IsArchive(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

// ResolveCanvas extracts the canvas payload from a ZIP-wrapped container.
// The returned bytes are the inner container, passed to Frame unchanged;
// this function never interprets chunk structure itself.
func ResolveCanvas(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &FormatError{
			Code:    ErrCodeArchive,
			Message: "opening zip container",
			Err:     err,
		}
	}

	for _, f := range r.File {
		if f.Name != CanvasEntryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, &FormatError{
				Code:    ErrCodeArchive,
				Message: fmt.Sprintf("opening zip entry %q", f.Name),
				Err:     err,
			}
		}
		defer rc.Close()

		inner, err := io.ReadAll(rc)
		if err != nil {
			return nil, &FormatError{
				Code:    ErrCodeArchive,
				Message: fmt.Sprintf("reading zip entry %q", f.Name),
				Err:     err,
			}
		}
		return inner, nil
	}

	return nil, &FormatError{
		Code:    ErrCodeCanvasNotFound,
		Message: fmt.Sprintf("zip container has no %q entry", CanvasEntryName),
	}
}
