package png

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/stegbit/stegbit/pkg/chunk"
)

// maxChunkData caps the data length a Reader will allocate for. The PNG
// convention keeps lengths below 2^31.
const maxChunkData = 1<<31 - 1

// ErrOversizeChunk means a frame declared a data length above maxChunkData.
var ErrOversizeChunk = errors.New("png: declared chunk length exceeds 2^31-1")

// Reader provides sequential access to the chunks of a PNG stream.
type Reader struct {
	reader *bufio.Reader
	offset int64
}

// NewReader wraps r for chunk-at-a-time reading. Call ReadSignature before
// the first ReadNext when the stream starts at the top of a file.
func NewReader(r io.Reader) *Reader {
	return &Reader{reader: bufio.NewReader(r)}
}

// ReadSignature consumes and verifies the 8-byte PNG signature.
func (r *Reader) ReadSignature() error {
	var sig [SignatureSize]byte
	n, err := io.ReadFull(r.reader, sig[:])
	r.offset += int64(n)
	if err != nil || sig != Signature {
		return ErrBadSignature
	}
	return nil
}

// ReadNext reads the next chunk. Returns io.EOF at a clean chunk boundary;
// a stream that ends mid-frame is reported as corruption.
func (r *Reader) ReadNext() (*chunk.Chunk, error) {
	// Length and type first, so we know how much frame is left to pull.
	header := make([]byte, chunk.LengthFieldSize+chunk.TagSize)
	n, err := io.ReadFull(r.reader, header)
	r.offset += int64(n)
	if err != nil {
		if err == io.EOF && n == 0 {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("png: truncated chunk header at offset %d: %w", r.offset, io.ErrUnexpectedEOF)
	}

	declared := uint32(header[0])<<24 | uint32(header[1])<<16 | uint32(header[2])<<8 | uint32(header[3])
	if declared > maxChunkData {
		return nil, ErrOversizeChunk
	}

	frame := make([]byte, chunk.FrameOverhead+int(declared))
	copy(frame, header)

	n, err = io.ReadFull(r.reader, frame[len(header):])
	r.offset += int64(n)
	if err != nil {
		return nil, fmt.Errorf("png: truncated chunk at offset %d: %w", r.offset, io.ErrUnexpectedEOF)
	}

	return chunk.Parse(frame)
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ReadFile parses an entire PNG file from disk through a Reader.
func ReadFile(path string) (*PNG, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := NewReader(file)
	if err := r.ReadSignature(); err != nil {
		return nil, err
	}

	p := &PNG{}
	for {
		c, err := r.ReadNext()
		if err == io.EOF {
			return p, nil
		}
		if err != nil {
			return nil, err
		}
		p.chunks = append(p.chunks, c)
	}
}
