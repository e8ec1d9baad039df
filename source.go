package dialectcsv

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const minBufferSize = 4096

// source is the stream behind a Reader. It either owns a file it opened lazily from path, or borrows a
// caller's stream which it never closes.
type source struct {
	path   string
	owned  bool
	file   *os.File
	stream io.Reader

	enc    encoding.Encoding
	logger *slog.Logger

	origin   int64
	seekable bool
	used     bool
	closed   bool
}

// rewind positions the stream at its origin and returns a fresh buffered, decoded view of it.
// The origin is the offset of the stream when it is first touched.
func (s *source) rewind(sampleSize int) (*bufio.Reader, error) {
	if s.closed {
		return nil, notFoundError("reader is closed", os.ErrClosed)
	}
	if s.owned && s.file == nil {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, notFoundError("cannot open file "+s.path, err)
		}
		s.file = f
		s.stream = f
		s.logger.Debug("opened csv file", "path", s.path)
	}

	seeker, ok := s.stream.(io.Seeker)
	if !s.used {
		if ok {
			if off, err := seeker.Seek(0, io.SeekCurrent); err == nil {
				s.origin = off
				s.seekable = true
			}
		}
	} else {
		if !s.seekable {
			return nil, notFoundError("cannot rewind stream", errors.ErrUnsupported)
		}
		if _, err := seeker.Seek(s.origin, io.SeekStart); err != nil {
			return nil, notFoundError("cannot rewind stream", err)
		}
	}
	s.used = true

	r := s.stream
	if s.enc != nil {
		r = transform.NewReader(r, s.enc.NewDecoder())
	}
	return bufio.NewReaderSize(r, max(sampleSize, minBufferSize)), nil
}

func (s *source) close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.owned || s.file == nil {
		return nil
	}
	if err := s.file.Close(); err != nil {
		s.logger.Warn("closing csv file failed", "path", s.path, "error", err)
		return err
	}
	return nil
}

func validatePath(path string) error {
	if path == "" {
		return configError("path cannot be empty")
	}
	if strings.IndexByte(path, 0) >= 0 {
		return configError("path must not contain NUL bytes")
	}
	return nil
}
