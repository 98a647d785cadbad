// Package chunk implements the PNG chunk codec at the heart of stegbit.
//
// A PNG file body is a sequence of chunks: length-prefixed, type-tagged,
// checksummed records. This package parses a byte region into a validated
// Chunk value and serializes a Chunk back to its exact on-wire layout.
//
// # Wire Format
//
// Chunks are laid out big-endian:
//
//	[Length(4)][Type(4)][Data(Length)][Checksum(4)]
//
// Fields:
//   - Length: 32-bit unsigned count of Data bytes; excludes every other field
//   - Type: 4 ASCII letters; bit 5 of each byte carries a boolean property
//   - Data: opaque payload, possibly empty
//   - Checksum: CRC-32 (IEEE) computed over Type followed by Data
//
// The minimum encoded chunk is 12 bytes (empty data). Bytes after a chunk's
// checksum belong to the next chunk in the stream and are ignored by Parse;
// callers advance by EncodedLen() between calls.
//
// # Type Tag Properties
//
// The case bit of each tag byte encodes one property: whether the chunk is
// critical or ancillary (byte 0), its public/private scope (byte 1), the
// reserved-bit conformance state (byte 2), and whether it is safe to copy
// through an editor that does not recognize it (byte 3). A tag with four
// well-formed letters can still be invalid under the reserved-bit rule;
// Parse does not enforce that rule, IsValid exposes it as a separate query.
//
// # Error Handling
//
// Every failure mode is a typed error: InvalidByteError, WrongLengthError,
// TooShortError, TruncatedDataError, ErrBadChecksumField,
// ChecksumMismatchError and ErrNotUTF8. All failures are deterministic
// functions of the input; nothing is retried or recovered internally, and
// the package never terminates the process.
//
// # Thread Safety
//
// Chunk and ChunkType values are immutable after construction and safe for
// concurrent read-only use without coordination.
package chunk
