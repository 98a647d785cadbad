package chunk

import (
	"errors"
	"fmt"
)

// Errors with no payload
var (
	// ErrBadChecksumField means fewer than 4 bytes remained for the checksum
	// after the data segment.
	ErrBadChecksumField = errors.New("chunk: fewer than 4 bytes available for checksum field")

	// ErrNotUTF8 is returned by DataAsString when the payload is not valid UTF-8.
	ErrNotUTF8 = errors.New("chunk: data is not valid UTF-8")
)

// InvalidByteError reports a type tag byte outside the ASCII-alphabetic ranges.
type InvalidByteError struct {
	Byte byte
}

func (e *InvalidByteError) Error() string {
	return fmt.Sprintf("chunk: invalid type tag byte 0x%02X: must be in A-Z (0x41-0x5A) or a-z (0x61-0x7A)", e.Byte)
}

// WrongLengthError reports a textual type tag that is not exactly 4 bytes long.
type WrongLengthError struct {
	Length int
}

func (e *WrongLengthError) Error() string {
	return fmt.Sprintf("chunk: type tag must be exactly 4 characters, got %d", e.Length)
}

// TooShortError reports an input buffer smaller than the minimum 12-byte frame.
type TooShortError struct {
	Length int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("chunk: input too short: need at least %d bytes, got %d", FrameOverhead, e.Length)
}

// TruncatedDataError reports a declared data length larger than the bytes available.
type TruncatedDataError struct {
	Declared  uint32
	Available int
}

func (e *TruncatedDataError) Error() string {
	return fmt.Sprintf("chunk: truncated data: declared length %d exceeds %d remaining bytes", e.Declared, e.Available)
}

// ChecksumMismatchError reports disagreement between the parsed and the
// recomputed checksum. Both values are kept for diagnostics.
type ChecksumMismatchError struct {
	Parsed   uint32
	Computed uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("chunk: checksum mismatch: parsed %d, computed %d", e.Parsed, e.Computed)
}
