package perceval

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"iter"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer"
	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/logger"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const (
	// DefaultMaxLineBytes bounds one item line; large commits carry long file lists
	DefaultMaxLineBytes = 32 * 1024 * 1024
	initialBuf          = 512 * 1024
	sampleRawMax        = 2048
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Compression is the detected input encoding
type Compression string

// input encodings
const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// Reader streams items from line-delimited JSON
type Reader struct {
	src         io.Reader
	dec         io.Reader
	closeDec    func() error
	compression Compression
	maxLine     int

	lines   int
	items   int
	bytes   int64
	sampled bool
}

// Option configures a Reader
type Option func(*Reader)

// WithMaxLineBytes bounds the size of one line; values <= 0 keep the default
func WithMaxLineBytes(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.maxLine = n
		}
	}
}

// NewReader sniffs the first bytes of src and unwraps gzip or zstd when present
func NewReader(src io.Reader, opts ...Option) (*Reader, error) {
	rd := &Reader{src: src, maxLine: DefaultMaxLineBytes, compression: CompressionNone}
	for _, o := range opts {
		o(rd)
	}

	br := bufio.NewReader(src)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, perr.Wrap(err, perr.ErrorCodeIO, "read input")
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeIO, "open gzip input")
		}
		rd.dec, rd.closeDec, rd.compression = gz, gz.Close, CompressionGzip
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeIO, "open zstd input")
		}
		rd.dec, rd.closeDec, rd.compression = zr, func() error { zr.Close(); return nil }, CompressionZstd
	default:
		rd.dec = br
	}
	return rd, nil
}

// Compression reports the detected input encoding
func (rd *Reader) Compression() Compression { return rd.compression }

// Items yields one item per non-blank line.
//
// A line that is not a JSON object yields a JSON error tagged with its line number;
// ranging may continue past it. Read failures and ctx cancellation end the sequence
func (rd *Reader) Items(ctx context.Context) iter.Seq2[eventizer.Item, error] {
	return func(yield func(eventizer.Item, error) bool) {
		sc := bufio.NewScanner(rd.dec)
		sc.Buffer(make([]byte, min(initialBuf, rd.maxLine)), rd.maxLine)

		for sc.Scan() {
			if err := ctx.Err(); err != nil {
				yield(eventizer.Item{}, err)
				return
			}
			rd.lines++
			line := sc.Bytes()
			rd.bytes += int64(len(line) + 1)
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}

			var it eventizer.Item
			if err := json.Unmarshal(line, &it); err != nil {
				e := perr.WithOp(perr.Wrapf(err, perr.ErrorCodeJSON, "line %d: invalid item", rd.lines), "perceval.read")
				if !yield(eventizer.Item{}, e) {
					return
				}
				continue
			}
			rd.items++
			rd.sample(line)

			if !yield(it, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				yield(eventizer.Item{}, perr.Newf(perr.ErrorCodeInvalidArgument, "line %d: item exceeds %d bytes", rd.lines+1, rd.maxLine))
				return
			}
			yield(eventizer.Item{}, perr.Wrap(err, perr.ErrorCodeIO, "read input"))
		}
	}
}

// sample logs the first item line once, truncated
func (rd *Reader) sample(line []byte) {
	if rd.sampled {
		return
	}
	rd.sampled = true
	logger.Named("perceval").Debug().
		Str("compression", string(rd.compression)).
		Int("line_bytes", len(line)).
		Str("sample_raw", truncateUTF8(line, sampleRawMax)).
		Msg("perceval: sample item line")
}

// Stats returns lines scanned, items decoded and uncompressed bytes read so far
func (rd *Reader) Stats() (lines, items int, read int64) {
	return rd.lines, rd.items, rd.bytes
}

// Close releases the decompressor and closes src when it is an io.Closer
func (rd *Reader) Close() error {
	var first error
	if rd.closeDec != nil {
		first = rd.closeDec()
	}
	if c, ok := rd.src.(io.Closer); ok {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// truncateUTF8 cuts b to at most max bytes on a rune boundary, marking the cut
func truncateUTF8(b []byte, max int) string {
	if max <= 0 || len(b) <= max {
		return string(b)
	}
	i := max
	for i > 0 && (b[i]&0xC0) == 0x80 {
		i--
	}
	if i <= 0 {
		i = max
	}
	return string(b[:i]) + "..."
}
