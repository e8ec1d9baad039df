package dialectcsv

import "strings"

// byteOrderMarks are checked in this order, so the UTF-32 LE mark is not mistaken for the UTF-16 LE one.
var byteOrderMarks = []string{
	"\x00\x00\xFE\xFF", // UTF-32 BE
	"\xFF\xFE\x00\x00", // UTF-32 LE
	"\xFE\xFF",         // UTF-16 BE
	"\xFF\xFE",         // UTF-16 LE
	"\xEF\xBB\xBF",     // UTF-8
}

// RemoveBOM strips a byte order mark from the first field of row and then trims one enclosure from each end
// of what remains, since the mark keeps the tokenizer from recognizing that field as enclosed.
// The row is modified in place and returned; nil and empty rows are returned unchanged.
func RemoveBOM(row []string, d Dialect) []string {
	if len(row) == 0 {
		return row
	}
	for _, bom := range byteOrderMarks {
		field, ok := strings.CutPrefix(row[0], bom)
		if !ok {
			continue
		}
		if d.hasEnclosure {
			enc := string(d.enclosure)
			field = strings.TrimPrefix(field, enc)
			field = strings.TrimSuffix(field, enc)
		}
		row[0] = field
		break
	}
	return row
}
