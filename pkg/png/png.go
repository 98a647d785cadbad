package png

import (
	"errors"
	"fmt"

	"github.com/stegbit/stegbit/pkg/chunk"
)

// SignatureSize is the length of the PNG file signature.
const SignatureSize = 8

// Signature is the 8-byte sequence every PNG file starts with.
var Signature = [SignatureSize]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// trailerType is the chunk type that terminates a conformant PNG stream.
const trailerType = "IEND"

var (
	ErrBadSignature  = errors.New("png: missing or corrupt PNG signature")
	ErrChunkNotFound = errors.New("png: no chunk with the requested type")
)

// PNG models a whole file as its ordered chunk sequence. Pixel data and
// standard chunk payloads stay opaque; this type only rearranges chunks.
type PNG struct {
	chunks []*chunk.Chunk
}

// FromChunks builds a PNG from an explicit chunk sequence.
func FromChunks(chunks []*chunk.Chunk) *PNG {
	owned := make([]*chunk.Chunk, len(chunks))
	copy(owned, chunks)
	return &PNG{chunks: owned}
}

// Parse reads a whole PNG byte stream: the signature followed by chunks
// walked back to back until the buffer is exhausted.
func Parse(buf []byte) (*PNG, error) {
	if len(buf) < SignatureSize || [SignatureSize]byte(buf[:SignatureSize]) != Signature {
		return nil, ErrBadSignature
	}

	p := &PNG{}
	offset := SignatureSize
	for offset < len(buf) {
		c, err := chunk.Parse(buf[offset:])
		if err != nil {
			return nil, fmt.Errorf("png: chunk at offset %d: %w", offset, err)
		}
		p.chunks = append(p.chunks, c)
		offset += c.EncodedLen()
	}
	return p, nil
}

// Chunks returns the chunk sequence in file order.
func (p *PNG) Chunks() []*chunk.Chunk {
	return p.chunks
}

// ChunkByType returns the first chunk whose tag matches name, or nil.
func (p *PNG) ChunkByType(name string) *chunk.Chunk {
	for _, c := range p.chunks {
		if c.Type().String() == name {
			return c
		}
	}
	return nil
}

// AppendChunk adds a chunk to the stream. When the file ends with an IEND
// trailer the chunk is inserted just before it, so strict decoders keep
// reading the result.
func (p *PNG) AppendChunk(c *chunk.Chunk) {
	n := len(p.chunks)
	if n > 0 && p.chunks[n-1].Type().String() == trailerType {
		p.chunks = append(p.chunks[:n-1], c, p.chunks[n-1])
		return
	}
	p.chunks = append(p.chunks, c)
}

// RemoveFirstChunk removes and returns the first chunk whose tag matches
// name. Fails with ErrChunkNotFound when no chunk matches.
func (p *PNG) RemoveFirstChunk(name string) (*chunk.Chunk, error) {
	for i, c := range p.chunks {
		if c.Type().String() == name {
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			return c, nil
		}
	}
	return nil, ErrChunkNotFound
}

// Bytes serializes the file: signature then every chunk in order.
func (p *PNG) Bytes() []byte {
	size := SignatureSize
	for _, c := range p.chunks {
		size += c.EncodedLen()
	}

	buf := make([]byte, 0, size)
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = append(buf, c.Bytes()...)
	}
	return buf
}
