package dialectcsv

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// LineSource supplies physical lines to a Tokenizer.
// ReadLine returns the next line including its line break; the final line of a stream may come without one.
// It returns io.EOF, and no data, once the source is exhausted.
type LineSource interface {
	ReadLine() ([]byte, error)
}

// LineReader is a LineSource splitting a buffered stream on one exact line break sequence.
type LineReader struct {
	src  *bufio.Reader
	lb   []byte
	line []byte
}

// NewLineReader returns a LineReader over src for line break lb.
// With CRLF a bare "\n" does not end a line.
func NewLineReader(src *bufio.Reader, lb LineBreak) *LineReader {
	return &LineReader{src: src, lb: []byte(lb)}
}

// ReadLine implements LineSource. The returned slice is only valid until the next call.
func (l *LineReader) ReadLine() ([]byte, error) {
	last := l.lb[len(l.lb)-1]
	l.line = l.line[:0]
	for {
		chunk, err := l.src.ReadSlice(last)
		l.line = append(l.line, chunk...)
		switch {
		case err == nil:
			if bytes.HasSuffix(l.line, l.lb) {
				return l.line, nil
			}
		case errors.Is(err, bufio.ErrBufferFull):
			// long line, keep reading
		case errors.Is(err, io.EOF):
			if len(l.line) == 0 {
				return nil, io.EOF
			}
			return l.line, nil
		default:
			return nil, err
		}
	}
}

// tokenizer states
const (
	unenclosed = iota
	enclosed
)

// Tokenizer assembles logical rows from the physical lines of a LineSource.
type Tokenizer struct {
	src     LineSource
	dialect Dialect
	lb      []byte

	field  []byte
	record []string
}

// NewTokenizer returns a Tokenizer reading lines terminated by lb from src.
func NewTokenizer(src LineSource, d Dialect, lb LineBreak) *Tokenizer {
	return &Tokenizer{
		src:     src,
		dialect: d,
		lb:      []byte(lb),
		field:   make([]byte, 0, 64),
	}
}

// ReadRow returns the fields of the next logical row, io.EOF when the source holds no more rows.
//
// An enclosed field may run over several physical lines; their line breaks become part of the field.
// When the source ends inside an enclosed field, the content collected so far is returned as the field
// value instead of failing.
func (t *Tokenizer) ReadRow() ([]string, error) {
	line, err := t.src.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, notFoundError("cannot read line", err)
	}

	d := t.dialect
	t.record = make([]string, 0, len(t.record))
	t.field = t.field[:0]
	state := unenclosed
	wasEnclosed := false

	for {
		body, terminated := bytes.CutSuffix(line, t.lb)
		for i := 0; i < len(body); i++ {
			c := body[i]
			if state == enclosed {
				switch {
				case d.hasEscape && d.escape != d.enclosure && c == d.escape && i+1 < len(body) && (body[i+1] == d.enclosure || body[i+1] == d.escape):
					// escape sequences stay verbatim
					t.field = append(t.field, c, body[i+1])
					i++
				case c == d.enclosure && i+1 < len(body) && body[i+1] == d.enclosure:
					t.field = append(t.field, c)
					i++
				case c == d.enclosure:
					state = unenclosed
				default:
					t.field = append(t.field, c)
				}
				continue
			}

			switch {
			case c == d.delimiter:
				t.record = append(t.record, string(t.field))
				t.field = t.field[:0]
				wasEnclosed = false
			case d.hasEnclosure && c == d.enclosure && len(t.field) == 0 && !wasEnclosed:
				state = enclosed
				wasEnclosed = true
			default:
				t.field = append(t.field, c)
			}
		}

		if state == unenclosed || !terminated {
			break
		}
		t.field = append(t.field, t.lb...)
		line, err = t.src.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, notFoundError("cannot read line", err)
		}
	}

	t.record = append(t.record, string(t.field))
	return t.record, nil
}
