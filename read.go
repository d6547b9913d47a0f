package headerkit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const (
	// defaultMaxBlockSize caps the bytes a single header block may occupy.
	defaultMaxBlockSize = 1 << 20

	// defaultReadBufSize is the bufio buffer size for the consuming layer.
	defaultReadBufSize = 64 << 10
)

// ReaderOptions configures a Reader. The zero value (or a nil pointer) gives
// a no-op logger, a private stats registry and the default block size cap.
type ReaderOptions struct {
	// Logger receives parse events. Defaults to a no-op logger.
	Logger LogBackend

	// Stats receives the parser's counters. Defaults to a process-local registry.
	Stats StatsRegistry

	// MaxBlockSize caps the size of a single header block in bytes.
	// Blocks exceeding it fail with ENHANCE_YOUR_CALM. Defaults to 1 MiB.
	MaxBlockSize int
}

// Reader parses header blocks from a stream: colon-separated fields, one per
// line, each block terminated by an empty line. Gzipped input is detected by
// magic bytes and decompressed transparently.
type Reader struct {
	src    *bufio.Reader
	gz     GzipReaderInterface // non-nil when the input was gzipped
	logger LogBackend

	maxBlockSize int

	blocksRead   Counter
	fieldsRead   Counter
	fieldsFolded Counter
	malformed    Counter
}

// NewReader returns a Reader over reader. opts may be nil.
func NewReader(reader io.Reader, opts *ReaderOptions) (*Reader, error) {
	if opts == nil {
		opts = &ReaderOptions{}
	}

	r := &Reader{
		logger:       opts.Logger,
		maxBlockSize: opts.MaxBlockSize,
	}
	if r.logger == nil {
		r.logger = &noopLogger{}
	}
	if r.maxBlockSize <= 0 {
		r.maxBlockSize = defaultMaxBlockSize
	}

	stats := opts.Stats
	if stats == nil {
		stats = newLocalRegistry()
	}
	r.blocksRead = stats.RegisterCounter(headerBlocksRead, headerBlocksReadHelp)
	r.fieldsRead = stats.RegisterCounter(headerFieldsRead, headerFieldsReadHelp)
	r.fieldsFolded = stats.RegisterCounter(headerFieldsFolded, headerFieldsFoldedHelp)
	r.malformed = stats.RegisterCounter(malformedFields, malformedFieldsHelp)

	// The consuming buffer never needs to exceed the block cap: field lines
	// are read fragment by fragment, so the buffer size is what bounds how
	// far a single read can run past the cap.
	bufSize := defaultReadBufSize
	if r.maxBlockSize < bufSize {
		bufSize = r.maxBlockSize
	}

	src := bufio.NewReaderSize(reader, bufSize)
	if magic, err := src.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := newGzipReader(src)
		if err != nil {
			return nil, fmt.Errorf("open gzip layer: %w", err)
		}
		gz.Multistream(true)
		r.gz = gz
		r.src = bufio.NewReaderSize(gz, bufSize)
	} else {
		r.src = src
	}

	return r, nil
}

// Close closes the decompression layer if one is open. It does not close the
// underlying reader.
func (r *Reader) Close() error {
	if r.gz == nil {
		return nil
	}
	if err := r.gz.Close(); err != nil {
		return fmt.Errorf("close decompressor: %w", err)
	}
	return nil
}

// ReadHeader reads the next header block. It returns io.EOF when the stream
// is exhausted. Malformed field lines fail with a StreamError carrying
// PROTOCOL_ERROR; a block larger than the configured cap fails with a
// ConnectionError carrying ENHANCE_YOUR_CALM.
//
// Duplicate field names within one block, compared case-insensitively, are
// merged into a single multi-valued field; the last-seen casing wins.
func (r *Reader) ReadHeader() (Header, error) {
	header := NewHeader()
	blockSize := 0

	for {
		line, err := r.readFieldLine(&blockSize)
		if err != nil && err != io.EOF {
			return header, err
		}
		if line == "" && err == io.EOF {
			if header.Len() == 0 {
				return header, io.EOF
			}
			r.blocksRead.Inc()
			return header, nil
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			// Blank line terminates the block, even an empty one.
			r.blocksRead.Inc()
			return header, nil
		}

		if line[0] == ' ' || line[0] == '\t' {
			// Obsolete line folding, rejected per RFC 9113 8.2.1.
			r.malformed.Inc()
			return header, StreamError{Code: ErrCodeProtocol, Msg: "continuation line in header block"}
		}

		name, value := splitKeyValue(line)
		if name == "" || !httpguts.ValidHeaderFieldName(name) {
			r.malformed.Inc()
			return header, StreamError{Code: ErrCodeProtocol, Msg: fmt.Sprintf("invalid field name %q", name)}
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			r.malformed.Inc()
			return header, StreamError{Code: ErrCodeProtocol, Msg: fmt.Sprintf("invalid value for field %q", name)}
		}

		if header.Has(name) {
			r.fieldsFolded.Inc()
			r.logger.Debug("merging duplicate field", "name", name)
		}
		header.Add(name, value)
		r.fieldsRead.Inc()

		if err == io.EOF {
			r.blocksRead.Inc()
			return header, nil
		}
	}
}

// readFieldLine reads one line, adding each buffered fragment to blockSize
// and failing the moment the block crosses the configured cap. Consumption
// from the underlying stream is therefore bounded by the cap, not by the
// length of the longest line.
func (r *Reader) readFieldLine(blockSize *int) (string, error) {
	var line []byte
	for {
		fragment, err := r.src.ReadSlice('\n')
		*blockSize += len(fragment)
		if *blockSize > r.maxBlockSize {
			return "", ConnectionError{Code: ErrCodeEnhanceYourCalm, Msg: "header block exceeds size limit"}
		}
		line = append(line, fragment...)

		switch err {
		case nil:
			return string(line), nil
		case io.EOF:
			return string(line), io.EOF
		case bufio.ErrBufferFull:
			continue
		default:
			return "", fmt.Errorf("read field line: %w", err)
		}
	}
}

// splitKeyValue parses a single header field line.
func splitKeyValue(line string) (string, string) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}
