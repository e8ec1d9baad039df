package dialectcsv

import (
	"bytes"
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// FormatRow serializes row into one line of CSV terminated by lb.
//
// Every field is enclosed and enclosures inside a value are doubled; quoting is unconditional, not minimal.
// A dialect without an enclosure writes the values as they are. Values are converted with FormatValue.
func FormatRow(d Dialect, lb LineBreak, row []any) ([]byte, error) {
	var buf bytes.Buffer
	for i, v := range row {
		s, err := FormatValue(v)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(d.delimiter)
		}
		writeField(&buf, s, d)
	}
	buf.WriteString(string(lb))
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, field string, d Dialect) {
	if !d.hasEnclosure {
		buf.WriteString(field)
		return
	}

	quote := d.enclosure
	buf.WriteByte(quote)
	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] == quote {
			buf.WriteString(field[start:i])
			buf.WriteByte(quote)
			buf.WriteByte(quote)
			start = i + 1
		}
	}
	buf.WriteString(field[start:])
	buf.WriteByte(quote)
}

// FormatValue returns the text written to a CSV field for v.
//
// nil and nil pointers become "", booleans "1" or "0", numbers their shortest decimal form. Strings, byte
// slices, fmt.Stringer, error and encoding.TextMarshaler values are used as text. Any other value is an ErrWrite
// naming its type.
func FormatValue(v any) (string, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", nil
	}

	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case bool:
		return formatBool(x), nil
	case fmt.Stringer:
		return x.String(), nil
	case error:
		return x.Error(), nil
	case encoding.TextMarshaler:
		text, err := x.MarshalText()
		if err != nil {
			return "", writeError(fmt.Sprintf("cannot write data into column: %T", v), err)
		}
		return string(text), nil
	}

	if rv.Kind() == reflect.Pointer {
		return FormatValue(rv.Elem().Interface())
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return formatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return formatFloat(rv.Float(), 32), nil
	case reflect.Float64:
		return formatFloat(rv.Float(), 64), nil
	}
	return "", &Error{Kind: ErrWrite, Msg: fmt.Sprintf("cannot write data into column: unsupported type %T", v)}
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatFloat(f float64, bitSize int) string {
	if math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}
