package dialectcsv

import (
	"fmt"
	"io"
	"os"
)

// Writer emits rows of CSV with every field enclosed.
//
// Each row is formatted in memory and handed to the destination in a single Write call; there is no
// buffering on top of what the destination does itself.
type Writer struct {
	dialect Dialect
	cfg     config

	path  string
	owned bool
	file  *os.File
	dst   io.Writer

	closed bool
}

// NewWriter creates a Writer over dst, which stays owned by the caller and is never closed by the Writer.
func NewWriter(dst io.Writer, d Dialect, opts ...Option) (*Writer, error) {
	if dst == nil {
		return nil, configError("writer destination cannot be nil")
	}
	return newWriter(&Writer{dst: dst}, d, opts)
}

// CreateWriter creates a Writer for the file at path. The file is created, or truncated, by the first
// write; Close releases it.
func CreateWriter(path string, d Dialect, opts ...Option) (*Writer, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	return newWriter(&Writer{path: path, owned: true}, d, opts)
}

func newWriter(w *Writer, d Dialect, opts []Option) (*Writer, error) {
	if !d.valid() {
		return nil, configError("dialect is not initialized, use NewDialect or DefaultDialect")
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	w.dialect = d
	w.cfg = cfg
	return w, nil
}

// Dialect returns the dialect the Writer formats with.
func (w *Writer) Dialect() Dialect {
	return w.dialect
}

// LineBreak returns the sequence terminating every written row.
func (w *Writer) LineBreak() LineBreak {
	return w.cfg.lineBreak
}

// WriteRow formats row with FormatRow and writes it. A failed or short write is reported as ErrWrite.
func (w *Writer) WriteRow(row []any) error {
	if w.closed {
		return writeError("writer is closed", os.ErrClosed)
	}
	line, err := FormatRow(w.dialect, w.cfg.lineBreak, row)
	if err != nil {
		return err
	}
	if w.cfg.encoding != nil {
		line, err = w.cfg.encoding.NewEncoder().Bytes(line)
		if err != nil {
			return writeError("cannot encode row", err)
		}
	}
	if err := w.open(); err != nil {
		return err
	}

	n, err := w.dst.Write(line)
	if err == nil && n < len(line) {
		err = io.ErrShortWrite
	}
	if err != nil {
		target := "stream"
		if w.path != "" {
			target = "file " + w.path
		}
		return writeError(fmt.Sprintf("cannot write to CSV %s, to write: %d written: %d", target, len(line), n), err)
	}
	return nil
}

// Write writes a row of string fields.
func (w *Writer) Write(record []string) error {
	row := make([]any, len(record))
	for i, field := range record {
		row[i] = field
	}
	return w.WriteRow(row)
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the file created by CreateWriter. A destination passed to NewWriter is left open.
// Close is idempotent; the Writer cannot be used afterwards.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if !w.owned || w.file == nil {
		return nil
	}
	if err := w.file.Close(); err != nil {
		w.cfg.logger.Warn("closing csv file failed", "path", w.path, "error", err)
		return err
	}
	return nil
}

func (w *Writer) open() error {
	if !w.owned || w.file != nil {
		return nil
	}
	f, err := os.Create(w.path)
	if err != nil {
		return notFoundError("cannot open file "+w.path, err)
	}
	w.file = f
	w.dst = f
	w.cfg.logger.Debug("created csv file", "path", w.path)
	return nil
}
