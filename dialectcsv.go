// # DialectCSV: A Configurable Streaming CSV Codec for Go
//
// DialectCSV reads and writes CSV documents whose delimiter, enclosure and escape characters are all configurable. It detects the
// document's line break style without being fooled by line breaks inside quoted values, assembles records that span several physical
// lines, and walks rows lazily through a restartable cursor.
//
// # Features
//
// - `Dialect` value type validated at construction (single-byte delimiter, optional enclosure and escape character).
// - Line break detection over a bounded sample with enclosed regions masked out (`DetectLineBreak`, `ClearEnclosedValues`).
// - Streaming `Reader` with header caching, skip lines, `Reset`, a cursor API and `Rows` iterator.
// - Unbuffered `Writer` with unconditional quoting and short-write detection.
// - Optional charset transcoding through golang.org/x/text (`WithEncoding`).
// - Typed failures: `ErrInvalidConfiguration`, `ErrNotFound`, `ErrWrite`, `ErrInvalidDialect`.
//
// # Getting Started
//
//	r, err := dialectcsv.OpenReader("data.csv", dialectcsv.DefaultDialect(), dialectcsv.WithSkipLines(1))
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	for i, row := range r.Rows() {
//		fmt.Println(i, row)
//	}
//	if err := r.Err(); err != nil {
//		return err
//	}
package dialectcsv
