package dialectcsv

import (
	"log/slog"

	"golang.org/x/text/encoding"
)

type config struct {
	skipLines  int
	sampleSize int
	lineBreak  LineBreak
	encoding   encoding.Encoding
	logger     *slog.Logger
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		sampleSize: DefaultSampleSize,
		lineBreak:  LF,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.skipLines < 0 {
		return cfg, configError("number of lines to skip must be a positive integer, %d received", cfg.skipLines)
	}
	if cfg.sampleSize <= 0 {
		return cfg, configError("sample size must be positive, %d received", cfg.sampleSize)
	}
	if !cfg.lineBreak.ValidForWriting() {
		return cfg, configError("invalid line break %q, allowed: %q, %q, %q", string(cfg.lineBreak), CRLF, CR, LF)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg, nil
}

// Option configures a Reader or a Writer.
// Options that do not apply to the component they are passed to are ignored.
type Option func(*config)

// WithSkipLines makes the Reader skip the first n records on every pass. Reader only.
func WithSkipLines(n int) Option {
	return func(c *config) {
		c.skipLines = n
	}
}

// WithSampleSize sets how many leading bytes are inspected for line break detection. Reader only.
func WithSampleSize(n int) Option {
	return func(c *config) {
		c.sampleSize = n
	}
}

// WithLineBreak sets the sequence terminating written rows: CRLF, CR or LF (default). Writer only.
func WithLineBreak(lb LineBreak) Option {
	return func(c *config) {
		c.lineBreak = lb
	}
}

// WithEncoding sets the character encoding of the stream.
// The Reader decodes the stream to UTF-8 before parsing; the Writer encodes every row before writing it.
func WithEncoding(enc encoding.Encoding) Option {
	return func(c *config) {
		c.encoding = enc
	}
}

// WithLogger sets the logger receiving debug and warning events. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
