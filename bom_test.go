package dialectcsv

import (
	"reflect"
	"testing"
)

func TestRemoveBOM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  []string
		want []string
	}{
		{name: "utf32BigEndian", row: []string{"\x00\x00\xFE\xFF\"id\"", "name"}, want: []string{"id", "name"}},
		{name: "utf32LittleEndian", row: []string{"\xFF\xFE\x00\x00\"id\"", "name"}, want: []string{"id", "name"}},
		{name: "utf16BigEndian", row: []string{"\xFE\xFF\"id\"", "name"}, want: []string{"id", "name"}},
		{name: "utf16LittleEndian", row: []string{"\xFF\xFE\"id\"", "name"}, want: []string{"id", "name"}},
		{name: "utf8", row: []string{"\xEF\xBB\xBFid", "name"}, want: []string{"id", "name"}},
		{name: "trimsOneLayerOnly", row: []string{"\xEF\xBB\xBF\"\"id\"\""}, want: []string{"\"id\""}},
		{name: "noBOM", row: []string{"\"id\"", "name"}, want: []string{"\"id\"", "name"}},
		{name: "bomOnlyInSecondField", row: []string{"id", "\xEF\xBB\xBFname"}, want: []string{"id", "\xEF\xBB\xBFname"}},
		{name: "emptyRow", row: []string{}, want: []string{}},
		{name: "nilRow", row: nil, want: nil},
		{name: "emptyField", row: []string{""}, want: []string{""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := RemoveBOM(tc.row, DefaultDialect())
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("RemoveBOM() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRemoveBOMWithoutEnclosure(t *testing.T) {
	t.Parallel()

	d, err := NewDialect(",", "", "")
	if err != nil {
		t.Fatalf("NewDialect() error = %v", err)
	}
	got := RemoveBOM([]string{"\xEF\xBB\xBF\"id\""}, d)
	if want := []string{"\"id\""}; !reflect.DeepEqual(got, want) {
		t.Fatalf("RemoveBOM() = %q, want %q", got, want)
	}
}
