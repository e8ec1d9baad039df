package dialectcsv

import (
	"bufio"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func readAllRows(t *testing.T, input string, d Dialect, lb LineBreak) [][]string {
	t.Helper()

	tok := NewTokenizer(NewLineReader(bufio.NewReader(strings.NewReader(input)), lb), d, lb)
	var rows [][]string
	for {
		row, err := tok.ReadRow()
		if errors.Is(err, io.EOF) {
			return rows
		}
		if err != nil {
			t.Fatalf("ReadRow() error = %v", err)
		}
		rows = append(rows, row)
	}
}

func TestTokenizerReadRow(t *testing.T) {
	t.Parallel()

	escaped, err := NewDialect(",", `"`, `\`)
	if err != nil {
		t.Fatalf("NewDialect() error = %v", err)
	}
	noEnclosure, err := NewDialect("|", "", "")
	if err != nil {
		t.Fatalf("NewDialect() error = %v", err)
	}
	semicolon, err := NewDialect(";", "'", "")
	if err != nil {
		t.Fatalf("NewDialect() error = %v", err)
	}

	tests := []struct {
		name    string
		input   string
		dialect Dialect
		lb      LineBreak
		want    [][]string
	}{
		{
			name:  "basicRecords",
			input: "one,two\nthree,four\n",
			want:  [][]string{{"one", "two"}, {"three", "four"}},
		},
		{
			name:  "finalRecordWithoutTerminator",
			input: "alpha,beta,gamma",
			want:  [][]string{{"alpha", "beta", "gamma"}},
		},
		{
			name:  "windowsLineEndings",
			input: "a,b\r\nc,d\r\n",
			lb:    CRLF,
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "bareLineFeedInsideWindowsLine",
			input: "a\nb,c\r\nd\r\n",
			lb:    CRLF,
			want:  [][]string{{"a\nb", "c"}, {"d"}},
		},
		{
			name:  "quotedDelimiter",
			input: "a,\"b,b\",c\n",
			want:  [][]string{{"a", "b,b", "c"}},
		},
		{
			name:  "doubledEnclosure",
			input: "a,\"b\"\"c\",d\n",
			want:  [][]string{{"a", "b\"c", "d"}},
		},
		{
			name:  "multiLineField",
			input: "a,\"b\nc\n\nd\",e\nf\n",
			want:  [][]string{{"a", "b\nc\n\nd", "e"}, {"f"}},
		},
		{
			name:  "multiLineFieldWindows",
			input: "a,\"b\r\nc\",d\r\ne\r\n",
			lb:    CRLF,
			want:  [][]string{{"a", "b\r\nc", "d"}, {"e"}},
		},
		{
			name:  "emptyFields",
			input: ",,\n",
			want:  [][]string{{"", "", ""}},
		},
		{
			name:  "emptyLineIsOneEmptyField",
			input: "a\n\nb\n",
			want:  [][]string{{"a"}, {""}, {"b"}},
		},
		{
			name:  "emptyQuotedField",
			input: "\"\",x\n",
			want:  [][]string{{"", "x"}},
		},
		{
			name:  "enclosureInsideUnquotedFieldIsLiteral",
			input: "a\"b,c\n",
			want:  [][]string{{"a\"b", "c"}},
		},
		{
			name:  "textAfterClosingEnclosure",
			input: "\"ab\"cd,e\n",
			want:  [][]string{{"abcd", "e"}},
		},
		{
			name:  "unterminatedEnclosureAtEOF",
			input: "a,\"open\nstill open",
			want:  [][]string{{"a", "open\nstill open"}},
		},
		{
			name:  "emptyInput",
			input: "",
			want:  nil,
		},
		{
			name:    "escapeCharKeptVerbatim",
			input:   "\"enclosure \\\" in column\",\"hello \\\\\"\n",
			dialect: escaped,
			want:    [][]string{{"enclosure \\\" in column", "hello \\\\"}},
		},
		{
			name:    "escapedEnclosureSpanningLines",
			input:   "\"a \\\" b\nc\",d\n",
			dialect: escaped,
			want:    [][]string{{"a \\\" b\nc", "d"}},
		},
		{
			name:    "noEnclosurePlainSplit",
			input:   "\"a\"|b\n",
			dialect: noEnclosure,
			want:    [][]string{{"\"a\"", "b"}},
		},
		{
			name:    "customDelimiterAndEnclosure",
			input:   "left;'mid;dle';'it''s'\n",
			dialect: semicolon,
			want:    [][]string{{"left", "mid;dle", "it's"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := tc.dialect
			if !d.valid() {
				d = DefaultDialect()
			}
			lb := tc.lb
			if lb == "" {
				lb = LF
			}
			got := readAllRows(t, tc.input, d, lb)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("rows mismatch:\n got: %q\nwant: %q", got, tc.want)
			}
		})
	}
}

func TestLineReaderLongLines(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 100)
	src := bufio.NewReaderSize(strings.NewReader(long+"\r\n"+long), 16)
	lr := NewLineReader(src, CRLF)

	line, err := lr.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if string(line) != long+"\r\n" {
		t.Fatalf("ReadLine() = %q, want %q", line, long+"\r\n")
	}
	line, err = lr.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if string(line) != long {
		t.Fatalf("ReadLine() = %q, want %q", line, long)
	}
	if _, err := lr.ReadLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("ReadLine() error = %v, want io.EOF", err)
	}
}

type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestTokenizerReadFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("device gone")
	src := bufio.NewReader(&failingReader{data: []byte("a,\"b\n"), err: cause})
	tok := NewTokenizer(NewLineReader(src, LF), DefaultDialect(), LF)

	_, err := tok.ReadRow()
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, cause) {
		t.Fatalf("ReadRow() error = %v, want ErrNotFound wrapping the read error", err)
	}
}
