package fig

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// FileType identifies which container variant the magic header announced.
type FileType string

const (
	// FileTypeDesign is the design-file variant.
	FileTypeDesign FileType = "design"

	// FileTypeBoard is the board-file variant.
	FileTypeBoard FileType = "board"
)

var (
	magicDesign = []byte("fig-kiwi")
	magicBoard  = []byte("fig-jam.")
)

const (
	// HeaderSize is the length of the magic header in bytes.
	HeaderSize = 8

	// chunkLenSize is the length prefix of each chunk: u32 little-endian.
	chunkLenSize = 4

	// MinChunks is the smallest legal chunk count: schema plus data.
	MinChunks = 2

	// MinFileSize is the smallest buffer that can hold a header plus
	// MinChunks empty chunks.
	MinFileSize = HeaderSize + MinChunks*chunkLenSize
)

// Chunk is one length-framed segment of the container body. Body is still
// compressed; see Decompress.
type Chunk struct {
	// Offset is the byte offset of the chunk's length prefix within the
	// framed buffer.
	Offset int

	// Body is the compressed chunk body.
	Body []byte
}

// Container is a framed container: the variant its magic announced and its
// chunk sequence, in file order. Chunk 0 is the binary schema and chunk 1
// the binary data; further chunks are preserved but unused by the pipeline.
type Container struct {
	Type   FileType
	Chunks []Chunk
}

// SchemaChunk returns the compressed schema chunk.
func (c *Container) SchemaChunk() Chunk { return c.Chunks[0] }

// DataChunk returns the compressed data chunk.
func (c *Container) DataChunk() Chunk { return c.Chunks[1] }

// Frame validates the magic header and splits the buffer into chunks. It
// establishes framing only: bodies stay compressed and undecoded.
//
// The size check runs before anything else so a short buffer is never read
// past its end, not even for the magic comparison.
func Frame(data []byte) (*Container, error) {
	if len(data) < MinFileSize {
		return nil, &FormatError{
			Code:     ErrCodeFileTooSmall,
			Message:  "buffer too small for header and minimum chunk set",
			Expected: MinFileSize,
			Actual:   len(data),
		}
	}

	fileType, err := detectType(data[:HeaderSize])
	if err != nil {
		return nil, err
	}

	chunks, err := frameChunks(data)
	if err != nil {
		return nil, err
	}

	if len(chunks) < MinChunks {
		return nil, &FormatError{
			Code:     ErrCodeNotEnoughChunks,
			Message:  "container must hold at least schema and data chunks",
			Expected: MinChunks,
			Actual:   len(chunks),
		}
	}

	return &Container{Type: fileType, Chunks: chunks}, nil
}

// detectType matches the 8-byte magic against the two recognized variants.
func detectType(header []byte) (FileType, error) {
	switch {
	case bytes.Equal(header, magicDesign):
		return FileTypeDesign, nil
	case bytes.Equal(header, magicBoard):
		return FileTypeBoard, nil
	default:
		return "", &FormatError{
			Code:    ErrCodeInvalidMagic,
			Message: fmt.Sprintf("header matches neither %q nor %q", magicDesign, magicBoard),
			Magic:   append([]byte(nil), header...),
		}
	}
}

// frameChunks walks the body reading length-prefixed chunks until the buffer
// is exhausted.
func frameChunks(data []byte) ([]Chunk, error) {
	var chunks []Chunk
	off := HeaderSize
	for off < len(data) {
		if len(data)-off < chunkLenSize {
			return nil, &FormatError{
				Code:     ErrCodeIncompleteChunk,
				Message:  "trailing bytes too short for a chunk length prefix",
				Offset:   off,
				Expected: chunkLenSize,
				Actual:   len(data) - off,
			}
		}
		n := int(binary.LittleEndian.Uint32(data[off:]))
		bodyStart := off + chunkLenSize
		if n > len(data)-bodyStart {
			return nil, &FormatError{
				Code:     ErrCodeIncompleteChunk,
				Message:  "chunk declares more body bytes than remain",
				Offset:   off,
				Expected: n,
				Actual:   len(data) - bodyStart,
			}
		}
		chunks = append(chunks, Chunk{Offset: off, Body: data[bodyStart : bodyStart+n]})
		off = bodyStart + n
	}
	return chunks, nil
}
