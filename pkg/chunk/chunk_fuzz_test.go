//go:build fuzz
// +build fuzz

package chunk

import (
	"bytes"
	"testing"
)

// FuzzParse throws arbitrary bytes at Parse; it may fail but must never
// panic, and anything it accepts must survive a serialize/parse round trip.
func FuzzParse(f *testing.F) {
	ct, _ := ChunkTypeFromString("RuSt")
	f.Add(New(ct, []byte(secretMessage)).Bytes())
	f.Add(New(ct, nil).Bytes())
	f.Add([]byte{})
	f.Add(make([]byte, 11))
	f.Add(secretFrame())

	f.Fuzz(func(t *testing.T, frame []byte) {
		c, err := Parse(frame)
		if err != nil {
			return
		}

		reparsed, err := Parse(c.Bytes())
		if err != nil {
			t.Fatalf("round trip of accepted chunk failed: %v", err)
		}
		if reparsed.Type() != c.Type() || !bytes.Equal(reparsed.Data(), c.Data()) {
			t.Fatalf("round trip changed the chunk: %v vs %v", reparsed, c)
		}
	})
}

// FuzzRoundTrip builds a chunk from a fuzzed payload and checks the
// serialize/parse round trip.
func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte(secretMessage))
	f.Add([]byte{0x00, 0xFF, 0x7F})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1<<20 {
			t.Skip("payload too large for fuzz test")
		}

		ct, _ := ChunkTypeFromString("ruSt")
		c := New(ct, data)

		parsed, err := Parse(c.Bytes())
		if err != nil {
			t.Fatalf("Parse failed for %d-byte payload: %v", len(data), err)
		}
		if !bytes.Equal(parsed.Data(), data) {
			t.Errorf("data mismatch after round trip")
		}
		if parsed.Checksum() != c.Checksum() {
			t.Errorf("checksum mismatch after round trip: %d vs %d", parsed.Checksum(), c.Checksum())
		}
	})
}
