package dialectcsv

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"slices"
)

// Reader walks the rows of a CSV stream through a restartable cursor.
//
// Nothing is read at construction. The first call to Header, Reset, Valid, Current, Advance, Rows, ReadAll
// or LineBreak opens the stream (for OpenReader), detects the line break from a leading sample, caches the
// header and positions the cursor on the first row after the skipped ones.
type Reader struct {
	dialect Dialect
	cfg     config
	src     *source

	lineBreak LineBreak
	detected  bool
	header    []string
	hasHeader bool

	tok     *Tokenizer
	row     []string
	index   int
	started bool
	moved   bool
	err     error
}

// NewReader creates a Reader over src, which stays owned by the caller and is never closed by the Reader.
// Reset rewinds src to the offset it had when first read, which requires src to be an io.Seeker.
func NewReader(src io.Reader, d Dialect, opts ...Option) (*Reader, error) {
	if src == nil {
		return nil, configError("reader source cannot be nil")
	}
	return newReader(&source{stream: src}, d, opts)
}

// OpenReader creates a Reader over the file at path. The file is opened on first access, so a missing file
// is reported as ErrNotFound by that access rather than here. Close releases it.
func OpenReader(path string, d Dialect, opts ...Option) (*Reader, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	return newReader(&source{path: path, owned: true}, d, opts)
}

func newReader(src *source, d Dialect, opts []Option) (*Reader, error) {
	if !d.valid() {
		return nil, configError("dialect is not initialized, use NewDialect or DefaultDialect")
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	src.enc = cfg.encoding
	src.logger = cfg.logger
	return &Reader{dialect: d, cfg: cfg, src: src}, nil
}

// Dialect returns the dialect the Reader parses with.
func (r *Reader) Dialect() Dialect {
	return r.dialect
}

// Header returns the first row of the stream with any byte order mark removed, or an empty slice when the
// stream has no rows. It is read once and cached; the cursor is not moved by later calls.
func (r *Reader) Header() ([]string, error) {
	if !r.hasHeader {
		r.start()
		if !r.hasHeader {
			return nil, r.err
		}
	}
	return slices.Clone(r.header), nil
}

// ColumnCount returns the number of fields in the header.
func (r *Reader) ColumnCount() (int, error) {
	header, err := r.Header()
	if err != nil {
		return 0, err
	}
	return len(header), nil
}

// LineBreak returns the detected line break of the stream.
func (r *Reader) LineBreak() (LineBreak, error) {
	if !r.detected {
		r.start()
		if !r.detected {
			return "", r.err
		}
	}
	return r.lineBreak, nil
}

// Reset rewinds the stream, skips the configured number of records and positions the cursor on the next
// row with index 0. The line break is detected only on the first pass.
func (r *Reader) Reset() error {
	r.started = true
	r.moved = false
	r.tok = nil
	r.row = nil
	r.index = 0
	r.err = r.rewind()
	return r.err
}

// Valid reports whether the cursor points at a row. It is false at the end of the stream and after an
// error, which Err returns.
func (r *Reader) Valid() bool {
	r.start()
	return r.err == nil && r.row != nil
}

// Current returns the row under the cursor, or nil when Valid is false.
func (r *Reader) Current() []string {
	r.start()
	if r.err != nil {
		return nil
	}
	return r.row
}

// Index returns the position of the cursor counted from the first row after the skipped ones.
func (r *Reader) Index() int {
	return r.index
}

// Advance moves the cursor to the next row. At the end of the stream it does nothing until Reset.
func (r *Reader) Advance() {
	r.start()
	if r.err != nil || r.row == nil {
		return
	}
	r.moved = true
	row, err := r.next()
	if err != nil {
		r.err = err
		r.row = nil
		return
	}
	r.row = row
	r.index++
}

// Err returns the error that stopped the cursor, if any.
func (r *Reader) Err() error {
	return r.err
}

// Rows yields every row with its index, reading lazily. The Reader is reset first unless the cursor has
// not moved since the last Reset, so a stream that cannot seek can still be iterated after Header or Valid.
// Iteration stops at the end of the stream or at the first error, reported by Err.
func (r *Reader) Rows() iter.Seq2[int, []string] {
	return func(yield func(int, []string) bool) {
		if r.moved {
			if err := r.Reset(); err != nil {
				return
			}
		}
		for ; r.Valid(); r.Advance() {
			if !yield(r.index, r.row) {
				return
			}
		}
	}
}

// ReadAll collects the rows yielded by Rows, returning the first error encountered.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for _, row := range r.Rows() {
		records = append(records, row)
	}
	if r.err != nil {
		return nil, r.err
	}
	return records, nil
}

// Close releases the file opened by OpenReader. A stream passed to NewReader is left open.
// Close is idempotent; the Reader cannot be used afterwards.
func (r *Reader) Close() error {
	return r.src.close()
}

func (r *Reader) start() {
	if !r.started {
		r.Reset()
	}
}

func (r *Reader) rewind() error {
	br, err := r.src.rewind(r.cfg.sampleSize)
	if err != nil {
		return err
	}
	if !r.detected {
		if err := r.detect(br); err != nil {
			return err
		}
	}
	r.tok = NewTokenizer(NewLineReader(br, r.lineBreak), r.dialect, r.lineBreak)

	first, err := r.next()
	if err != nil {
		return err
	}
	first = RemoveBOM(first, r.dialect)
	if !r.hasHeader {
		r.header = []string{}
		if first != nil {
			r.header = slices.Clone(first)
		}
		r.hasHeader = true
	}

	if r.cfg.skipLines == 0 || first == nil {
		r.row = first
		return nil
	}
	for skipped := 1; skipped < r.cfg.skipLines; skipped++ {
		row, err := r.next()
		if err != nil {
			return err
		}
		if row == nil {
			r.cfg.logger.Debug("skipped past end of stream", "skip_lines", r.cfg.skipLines, "rows", skipped)
			return nil
		}
	}
	r.row, err = r.next()
	return err
}

func (r *Reader) detect(br *bufio.Reader) error {
	sample, err := br.Peek(r.cfg.sampleSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return notFoundError("cannot read stream", err)
	}
	lb := DetectLineBreak(sample, r.dialect)
	r.cfg.logger.Debug("detected line break", "line_break", lb.Text(), "sample_bytes", len(sample))
	if !lb.ValidForReading() {
		return &Error{Kind: ErrInvalidDialect, Msg: `invalid line break, please use unix \n or windows \r\n line breaks`}
	}
	r.lineBreak = lb
	r.detected = true
	return nil
}

// next returns the next row, or nil at the end of the stream.
func (r *Reader) next() ([]string, error) {
	row, err := r.tok.ReadRow()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	return row, err
}
