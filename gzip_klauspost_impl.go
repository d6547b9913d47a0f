//go:build !standard_gzip || klauspost_gzip
// +build !standard_gzip klauspost_gzip

package headerkit

import (
	"io"

	gzip "github.com/klauspost/compress/gzip"
)

func newGzipWriter(w io.Writer) GzipWriterInterface {
	return gzip.NewWriter(w)
}

// klauspostGzipReader adapts klauspost's gzip.Reader to the switchable
// reader interface; only Multistream needs forwarding by hand.
type klauspostGzipReader struct {
	*gzip.Reader
}

func (r *klauspostGzipReader) Multistream(enable bool) {
	r.Reader.Multistream(enable)
}

func newGzipReader(reader io.Reader) (GzipReaderInterface, error) {
	r, err := gzip.NewReader(reader)
	if err != nil {
		return nil, err
	}
	return &klauspostGzipReader{r}, nil
}
