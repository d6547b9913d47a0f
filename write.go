package headerkit

import (
	"bufio"
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"
)

// Writer serializes header blocks: one "Name: value" line per field value,
// CRLF line endings, each block terminated by an empty line. Field names are
// written with their last-written casing. Field order within a block is
// unspecified.
type Writer struct {
	fileWriter *bufio.Writer
	gzipWriter GzipWriterInterface
}

// NewWriter creates a header block writer on top of writer, gzipping the
// output when compress is set.
func NewWriter(writer io.Writer, compress bool) *Writer {
	if compress {
		gzipWriter := newGzipWriter(writer)
		return &Writer{
			gzipWriter: gzipWriter,
			fileWriter: bufio.NewWriter(gzipWriter),
		}
	}
	return &Writer{
		fileWriter: bufio.NewWriter(writer),
	}
}

// WriteHeader writes one header block and returns the number of
// uncompressed bytes it occupies.
func (w *Writer) WriteHeader(header Header) (int, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for entry := range header.Entries() {
		for _, value := range entry.Value() {
			buf.WriteString(entry.Key())
			buf.WriteString(": ")
			buf.WriteString(value)
			buf.WriteString("\r\n")
		}
	}
	buf.WriteString("\r\n")

	written, err := w.fileWriter.Write(buf.Bytes())
	if err != nil {
		return written, fmt.Errorf("write header block: %w", err)
	}
	return written, nil
}

// Close flushes buffered data and closes the compression layer if one is
// open. It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.fileWriter.Flush(); err != nil {
		return fmt.Errorf("flush header writer: %w", err)
	}
	if w.gzipWriter != nil {
		if err := w.gzipWriter.Close(); err != nil {
			return fmt.Errorf("close gzip writer: %w", err)
		}
	}
	return nil
}
