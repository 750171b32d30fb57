package fig

import (
	"bytes"
	"compress/flate"
	"io"
)

// Decompress inflates one chunk body. Each chunk is an independent raw
// DEFLATE stream; index is only used for error context.
//
// A failure here means the chunk was framed correctly but its bytes are not
// a readable stream, which is why it carries ErrCodeChunkDecompress rather
// than a framing code.
func Decompress(index int, body []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(body))
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, &FormatError{
			Code:    ErrCodeChunkDecompress,
			Message: "chunk body is not a readable deflate stream",
			Chunk:   index,
			Err:     err,
		}
	}
	return out, nil
}
