package chunk

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"unicode/utf8"
)

// Frame field sizes. A chunk on the wire is:
// [Length(4, big-endian)][Type(4)][Data(Length)][Checksum(4, big-endian)]
const (
	LengthFieldSize   = 4
	ChecksumFieldSize = 4

	// FrameOverhead is the encoded size of a chunk with empty data.
	FrameOverhead = LengthFieldSize + TagSize + ChecksumFieldSize
)

// Chunk is one length-prefixed, type-tagged, checksummed record. A Chunk
// owns its type tag and payload and is immutable after construction; the
// checksum is always recomputed from the current contents, never stored.
type Chunk struct {
	chunkType ChunkType
	data      []byte
}

// New builds a Chunk from a type tag and a payload. The payload is copied so
// later mutation of the caller's buffer cannot desynchronize the checksum.
// An empty (or nil) payload is fine.
func New(chunkType ChunkType, data []byte) *Chunk {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Chunk{chunkType: chunkType, data: owned}
}

// Parse reads one chunk from the front of buf, verifying the embedded
// checksum. Bytes beyond the chunk's checksum field are ignored; callers
// walking a multi-chunk stream re-invoke Parse advancing EncodedLen() bytes
// each time.
func Parse(buf []byte) (*Chunk, error) {
	if len(buf) < FrameOverhead {
		return nil, &TooShortError{Length: len(buf)}
	}

	declared := binary.BigEndian.Uint32(buf[:LengthFieldSize])
	rest := buf[LengthFieldSize:]

	var raw [TagSize]byte
	copy(raw[:], rest[:TagSize])
	chunkType, err := ChunkTypeFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("chunk: bad type tag: %w", err)
	}
	rest = rest[TagSize:]

	if uint64(declared) > uint64(len(rest)) {
		return nil, &TruncatedDataError{Declared: declared, Available: len(rest)}
	}
	data := rest[:declared]
	rest = rest[declared:]

	if len(rest) < ChecksumFieldSize {
		return nil, ErrBadChecksumField
	}
	parsedSum := binary.BigEndian.Uint32(rest[:ChecksumFieldSize])

	c := New(chunkType, data)
	if computed := c.Checksum(); computed != parsedSum {
		return nil, &ChecksumMismatchError{Parsed: parsedSum, Computed: computed}
	}
	return c, nil
}

// Length returns the payload length in bytes.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk's type tag.
func (c *Chunk) Type() ChunkType {
	return c.chunkType
}

// Data returns the payload. The returned slice is the chunk's own buffer and
// must not be mutated.
func (c *Chunk) Data() []byte {
	return c.data
}

// DataAsString returns the payload decoded as UTF-8 text. Fails with
// ErrNotUTF8 for binary payloads; this is a convenience view, chunks are not
// required to hold text.
func (c *Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrNotUTF8
	}
	return string(c.data), nil
}

// Checksum computes the CRC-32 (IEEE) over the type bytes followed by the
// payload. Computed on demand so it can never go stale.
func (c *Chunk) Checksum() uint32 {
	crc := crc32.NewIEEE()
	raw := c.chunkType.Bytes()
	crc.Write(raw[:])
	crc.Write(c.data)
	return crc.Sum32()
}

// EncodedLen returns the chunk's total on-wire size, the stride a caller
// advances by when walking a stream.
func (c *Chunk) EncodedLen() int {
	return FrameOverhead + len(c.data)
}

// Bytes serializes the chunk to its exact on-wire layout with a freshly
// computed checksum. Parse(c.Bytes()) yields an equal chunk.
func (c *Chunk) Bytes() []byte {
	buf := make([]byte, c.EncodedLen())
	binary.BigEndian.PutUint32(buf[0:], c.Length())
	raw := c.chunkType.Bytes()
	copy(buf[LengthFieldSize:], raw[:])
	copy(buf[LengthFieldSize+TagSize:], c.data)
	binary.BigEndian.PutUint32(buf[LengthFieldSize+TagSize+len(c.data):], c.Checksum())
	return buf
}

// String renders the chunk for diagnostic printing.
func (c *Chunk) String() string {
	return fmt.Sprintf("Chunk{type: %s, length: %d, checksum: %d}", c.chunkType, c.Length(), c.Checksum())
}
