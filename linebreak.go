package dialectcsv

import "bytes"

// DefaultSampleSize is the number of leading bytes inspected to detect the line break style.
const DefaultSampleSize = 10000

// candidates are checked in this order; on equal offsets the earlier one wins, so "\r\n" beats "\r".
var lineBreakCandidates = []LineBreak{CRLF, CR, LF}

// DetectLineBreak returns the line break used by the document sample starts with.
// Enclosed values are masked first so that line breaks embedded in quoted fields are ignored.
// The line break occurring first wins; LF is returned when the sample holds none.
func DetectLineBreak(sample []byte, d Dialect) LineBreak {
	cleared := ClearEnclosedValues(sample, d)

	found := LF
	best := -1
	for _, lb := range lineBreakCandidates {
		pos := bytes.Index(cleared, []byte(lb))
		if pos < 0 {
			continue
		}
		if best < 0 || pos < best {
			best = pos
			found = lb
		}
	}
	return found
}

// ClearEnclosedValues replaces every enclosed value in sample, enclosures included, with a doubled enclosure.
//
// An enclosed value runs from an enclosure to the next enclosure that is not part of an escape sequence.
// Escape sequences are a doubled enclosure when the dialect has no escape character, otherwise the escape
// character followed by the enclosure or by itself. An enclosure that is never closed inside sample is left
// untouched. Applying the function to its own output returns the output unchanged.
func ClearEnclosedValues(sample []byte, d Dialect) []byte {
	if !d.hasEnclosure {
		return bytes.Clone(sample)
	}

	enc := d.enclosure
	out := make([]byte, 0, len(sample))
	last := 0
	for i := 0; i < len(sample); {
		idx := bytes.IndexByte(sample[i:], enc)
		if idx < 0 {
			break
		}
		start := i + idx
		end, ok := matchEnclosed(sample, start, d)
		if !ok {
			i = start + 1
			continue
		}
		out = append(out, sample[last:start]...)
		out = append(out, enc, enc)
		last = end
		i = end
	}
	return append(out, sample[last:]...)
}

// matchEnclosed reports the end offset (exclusive) of the enclosed value opening at s[start].
//
// The value is consumed greedily one unit at a time, a unit being an escape sequence or a single
// non-enclosure byte. When the sample ends before a closing enclosure, the match backs off to the latest
// unit that begins with an enclosure byte and closes there instead.
func matchEnclosed(s []byte, start int, d Dialect) (int, bool) {
	enc := d.enclosure
	backoff := -1
	pos := start + 1
	for pos < len(s) {
		if n := escapeLen(s, pos, d); n > 0 {
			if s[pos] == enc {
				backoff = pos
			}
			pos += n
			continue
		}
		if s[pos] == enc {
			return pos + 1, true
		}
		pos++
	}
	if backoff >= 0 {
		return backoff + 1, true
	}
	return 0, false
}

// escapeLen returns the length of the escape sequence at s[pos], or 0 when there is none.
func escapeLen(s []byte, pos int, d Dialect) int {
	if pos+1 >= len(s) {
		return 0
	}
	next := s[pos+1]
	if d.hasEscape {
		if s[pos] == d.escape && (next == d.enclosure || next == d.escape) {
			return 2
		}
		return 0
	}
	if s[pos] == d.enclosure && next == d.enclosure {
		return 2
	}
	return 0
}
