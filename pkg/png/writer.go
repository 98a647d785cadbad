package png

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/stegbit/stegbit/pkg/chunk"
)

// Writer emits a PNG stream chunk by chunk with buffered writes and offset
// accounting.
type Writer struct {
	writer *bufio.Writer
	offset int64
}

// NewWriter wraps w for chunk-at-a-time writing.
func NewWriter(w io.Writer) *Writer {
	return &Writer{writer: bufio.NewWriter(w)}
}

// WriteSignature emits the 8-byte PNG signature.
func (w *Writer) WriteSignature() error {
	n, err := w.writer.Write(Signature[:])
	w.offset += int64(n)
	return err
}

// WriteChunk serializes one chunk and returns the offset its frame starts at.
func (w *Writer) WriteChunk(c *chunk.Chunk) (int64, error) {
	start := w.offset
	n, err := w.writer.Write(c.Bytes())
	w.offset += int64(n)
	if err != nil {
		return 0, err
	}
	return start, nil
}

// Flush drains the write buffer to the underlying writer.
func (w *Writer) Flush() error {
	return w.writer.Flush()
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int64 {
	return w.offset
}

// WriteFile writes a whole PNG to disk through a Writer, fsyncing before
// close so a crash cannot leave a torn file behind.
func WriteFile(path string, p *PNG) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	w := NewWriter(file)
	if err := w.WriteSignature(); err != nil {
		file.Close()
		return err
	}
	for _, c := range p.Chunks() {
		if _, err := w.WriteChunk(c); err != nil {
			file.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
