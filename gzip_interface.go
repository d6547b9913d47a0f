package headerkit

import (
	"io"
)

// GzipWriterInterface is the writer side of the gzip layer used for
// compressed header block files. The implementation behind it is selected
// at build time: klauspost's gzip by default, the standard library's with
// the standard_gzip tag.
type GzipWriterInterface interface {
	io.WriteCloser
	Flush() error
}

// GzipReaderInterface is the reader side of the same switchable gzip layer.
// Multistream support matters here because several header block files may be
// concatenated into one .gz stream.
type GzipReaderInterface interface {
	io.ReadCloser
	Multistream(enable bool)
	Reset(r io.Reader) error
}
