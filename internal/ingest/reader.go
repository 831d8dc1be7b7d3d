// internal/ingest/reader.go

// Package ingest reads the survey response CSV into rows, tolerating ragged
// rows and legacy regional encodings, and provides schema-mapped access to
// row fields.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/valpere/SurveyRanker/internal/config"
	"github.com/valpere/SurveyRanker/internal/utils"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile reads the configured response file into rows.
func ReadFile(cfg config.InputConfig) ([][]string, error) {
	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return nil, utils.WrapError(utils.ErrCodeInputRead, err, "failed to read input file %s", cfg.File)
	}
	return ReadBytes(data, cfg)
}

// ReadBytes parses raw CSV bytes into rows. UTF-8 is tried first; when the
// bytes are not valid UTF-8 the configured fallback encoding is used.
// Rows may have differing column counts; a header row is dropped when the
// schema says so.
func ReadBytes(data []byte, cfg config.InputConfig) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		enc, err := fallbackEncoding(cfg.EncodingFallback)
		if err != nil {
			return nil, utils.WrapError(utils.ErrCodeInputRead, err, "input is not valid UTF-8")
		}
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			return nil, utils.WrapError(utils.ErrCodeInputRead, err, "failed to decode input as %s", cfg.EncodingFallback)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, utils.WrapError(utils.ErrCodeInputRead, err, "failed to parse input CSV")
	}

	if cfg.HasHeaderRow() && len(rows) > 0 {
		rows = rows[1:]
	}

	return rows, nil
}

// fallbackEncoding maps a configured encoding name to its implementation.
func fallbackEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "shift-jis", "shiftjis", "sjis", "cp932", "windows-31j":
		return japanese.ShiftJIS, nil
	case "euc-jp", "eucjp":
		return japanese.EUCJP, nil
	case "iso-2022-jp":
		return japanese.ISO2022JP, nil
	default:
		return nil, fmt.Errorf("unsupported fallback encoding %q", name)
	}
}

// FieldAt returns the trimmed value of the column at idx, or "" when the
// row is too short. Missing columns beyond a row's width are treated as
// blank rather than as errors.
func FieldAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
