package dialectcsv

import (
	"strconv"
	"strings"
)

const (
	// DefaultDelimiter is the field delimiter used by DefaultDialect.
	DefaultDelimiter = ","
	// DefaultEnclosure is the enclosure used by DefaultDialect.
	DefaultEnclosure = `"`
	// DefaultEscapedBy is the escape character used by DefaultDialect (none).
	DefaultEscapedBy = ""
)

// Dialect describes the syntax of one CSV document: its delimiter, enclosure and escape characters.
// The zero value is not usable; build one with NewDialect or DefaultDialect.
type Dialect struct {
	delimiter byte
	enclosure byte
	escape    byte

	hasEnclosure bool
	hasEscape    bool
}

// NewDialect validates the three characters and returns the resulting Dialect.
// delimiter must be exactly one byte; enclosure and escapedBy may be empty or one byte.
func NewDialect(delimiter, enclosure, escapedBy string) (Dialect, error) {
	switch {
	case len(delimiter) == 0:
		return Dialect{}, configError("delimiter cannot be empty")
	case len(delimiter) > 1:
		return Dialect{}, configError("delimiter must be a single character, %s received", strconv.Quote(delimiter))
	case len(enclosure) > 1:
		return Dialect{}, configError("enclosure must be a single character, %s received", strconv.Quote(enclosure))
	case len(escapedBy) > 1:
		return Dialect{}, configError("escape character must be a single character, %s received", strconv.Quote(escapedBy))
	}

	d := Dialect{delimiter: delimiter[0]}
	if enclosure != "" {
		d.enclosure = enclosure[0]
		d.hasEnclosure = true
	}
	if escapedBy != "" {
		d.escape = escapedBy[0]
		d.hasEscape = true
	}
	return d, nil
}

// DefaultDialect returns the comma delimited, double quote enclosed dialect without an escape character.
func DefaultDialect() Dialect {
	return Dialect{delimiter: ',', enclosure: '"', hasEnclosure: true}
}

// Delimiter returns the field delimiter.
func (d Dialect) Delimiter() string {
	return string(d.delimiter)
}

// Enclosure returns the enclosure character, or "" when fields are not enclosed.
func (d Dialect) Enclosure() string {
	if !d.hasEnclosure {
		return ""
	}
	return string(d.enclosure)
}

// EscapedBy returns the escape character, or "" when enclosures are escaped by doubling.
func (d Dialect) EscapedBy() string {
	if !d.hasEscape {
		return ""
	}
	return string(d.escape)
}

func (d Dialect) valid() bool {
	return d.delimiter != 0
}

// LineBreak is the byte sequence terminating a physical line.
type LineBreak string

const (
	// CRLF is the windows line break.
	CRLF LineBreak = "\r\n"
	// CR is the classic mac line break, accepted for writing only.
	CR LineBreak = "\r"
	// LF is the unix line break and the default.
	LF LineBreak = "\n"
)

// Text renders the line break with escaped control characters, e.g. `\r\n`.
func (lb LineBreak) Text() string {
	return strings.Trim(strconv.Quote(string(lb)), `"`)
}

// ValidForReading reports whether the Reader can parse documents using lb.
// Only unix and windows line breaks are accepted.
func (lb LineBreak) ValidForReading() bool {
	return lb == LF || lb == CRLF
}

// ValidForWriting reports whether the Writer can terminate rows with lb.
func (lb LineBreak) ValidForWriting() bool {
	return lb == LF || lb == CRLF || lb == CR
}
