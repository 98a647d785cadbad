package chunk

// TagSize is the size of a chunk type tag in bytes.
const TagSize = 4

// propertyBit is bit 5 of each tag byte, the case bit in ASCII. Each of the
// four tag bytes carries one boolean property in that bit.
const propertyBit = 1 << 5

// ChunkType is the 4-byte identifier of a chunk. Each byte must be an ASCII
// letter; bit 5 of each byte (the case bit) encodes one property of the
// chunk. ChunkType is an immutable value and can be compared with ==.
type ChunkType struct {
	raw [TagSize]byte
}

// ChunkTypeFromBytes builds a ChunkType from 4 raw bytes. Every byte must be
// an ASCII letter; anything else fails with an InvalidByteError naming the
// offending byte.
func ChunkTypeFromBytes(raw [TagSize]byte) (ChunkType, error) {
	for _, b := range raw {
		if !isASCIILetter(b) {
			return ChunkType{}, &InvalidByteError{Byte: b}
		}
	}
	return ChunkType{raw: raw}, nil
}

// ChunkTypeFromString builds a ChunkType from its 4-character textual form,
// as typed by a user naming a chunk type. Fails with a WrongLengthError when
// the string is not exactly 4 bytes; multi-byte characters are rejected by
// the byte-range check.
func ChunkTypeFromString(s string) (ChunkType, error) {
	if len(s) != TagSize {
		return ChunkType{}, &WrongLengthError{Length: len(s)}
	}
	var raw [TagSize]byte
	copy(raw[:], s)
	return ChunkTypeFromBytes(raw)
}

// Bytes returns the 4 raw tag bytes.
func (t ChunkType) Bytes() [TagSize]byte {
	return t.raw
}

// String returns the tag as a 4-character string, case preserved.
func (t ChunkType) String() string {
	return string(t.raw[:])
}

// IsCritical reports whether the chunk is required by conformant consumers.
// An uppercase first byte (bit 5 clear) marks a critical chunk; lowercase
// marks an ancillary one.
func (t ChunkType) IsCritical() bool {
	return t.raw[0]&propertyBit == 0
}

// IsPublic reports the scope property carried by the second byte.
func (t ChunkType) IsPublic() bool {
	return t.raw[1]&propertyBit == 0
}

// IsReservedBitValid reports whether the reserved bit (third byte) is in its
// expected state. A tag with well-formed letters can still fail this check.
func (t ChunkType) IsReservedBitValid() bool {
	return t.raw[2]&propertyBit == 0
}

// IsSafeToCopy reports whether an editor that does not recognize the chunk
// may carry it over unchanged (fourth byte, bit 5 set).
func (t ChunkType) IsSafeToCopy() bool {
	return t.raw[3]&propertyBit != 0
}

// IsValid reports whether the tag as a whole is valid, which reduces to the
// reserved-bit rule. Parse does not enforce this; it is a separate query for
// callers that want to reject non-conformant tags.
func (t ChunkType) IsValid() bool {
	return t.IsReservedBitValid()
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
