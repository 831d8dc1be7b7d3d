// internal/ingest/reader_test.go
package ingest

import (
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/valpere/SurveyRanker/internal/config"
)

func inputConfig(hasHeader bool) config.InputConfig {
	return config.InputConfig{
		File:             "test.csv",
		HasHeader:        &hasHeader,
		EncodingFallback: "shift-jis",
	}
}

func TestReadBytesUTF8(t *testing.T) {
	data := []byte("timestamp,name,age,mylist,link\n1,Alice,20,https://a/mylist/1,https://b/watch/sm1\n")

	rows, err := ReadBytes(data, inputConfig(true))
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("expected 1 data row after header skip, got %d", len(rows))
	}
	if rows[0][1] != "Alice" {
		t.Errorf("expected respondent Alice, got %s", rows[0][1])
	}
}

func TestReadBytesKeepsHeaderWhenConfigured(t *testing.T) {
	data := []byte("a,b\nc,d\n")

	rows, err := ReadBytes(data, inputConfig(false))
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 rows without header skip, got %d", len(rows))
	}
}

func TestReadBytesStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("x,y\n1,2\n")...)

	rows, err := ReadBytes(data, inputConfig(true))
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "1" {
		t.Errorf("unexpected rows after BOM strip: %v", rows)
	}
}

func TestReadBytesShiftJISFallback(t *testing.T) {
	utf8CSV := "名前,動画\n回答者,sm1\n"
	sjis, _, err := transform.String(japanese.ShiftJIS.NewEncoder(), utf8CSV)
	if err != nil {
		t.Fatalf("failed to build Shift-JIS fixture: %v", err)
	}

	rows, err := ReadBytes([]byte(sjis), inputConfig(true))
	if err != nil {
		t.Fatalf("ReadBytes failed on Shift-JIS input: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "回答者" {
		t.Errorf("unexpected decoded rows: %v", rows)
	}
}

func TestReadBytesRaggedRows(t *testing.T) {
	data := []byte("h1,h2,h3\nonly-one\na,b,c\n")

	rows, err := ReadBytes(data, inputConfig(true))
	if err != nil {
		t.Fatalf("ReadBytes failed on ragged rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != 1 || len(rows[1]) != 3 {
		t.Errorf("expected ragged widths preserved, got %d and %d", len(rows[0]), len(rows[1]))
	}
}

func TestReadBytesEmptyInput(t *testing.T) {
	rows, err := ReadBytes([]byte(""), inputConfig(true))
	if err != nil {
		t.Fatalf("ReadBytes failed on empty input: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestFieldAt(t *testing.T) {
	row := []string{"a", " b ", ""}

	tests := []struct {
		name     string
		idx      int
		expected string
	}{
		{"first column", 0, "a"},
		{"trims whitespace", 1, "b"},
		{"blank column", 2, ""},
		{"beyond row width", 5, ""},
		{"negative index", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FieldAt(row, tt.idx); got != tt.expected {
				t.Errorf("FieldAt(row, %d) = %q, expected %q", tt.idx, got, tt.expected)
			}
		})
	}
}
