// internal/output/json.go
package output

import (
	"encoding/json"
	"os"

	"github.com/valpere/SurveyRanker/pkg/types"
)

// JSONWriter writes the ranking as a JSON array of row objects, with the
// respondent set materialized as a sorted list per row.
type JSONWriter struct {
	filename string
	file     *os.File
}

// NewJSONWriter creates a new JSON writer for the given path.
func NewJSONWriter(filename string) (*JSONWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		filename: filename,
		file:     file,
	}, nil
}

// Write writes the complete ranking.
func (w *JSONWriter) Write(rows []types.RankingRow) error {
	encoder := json.NewEncoder(w.file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

// Close closes the underlying file.
func (w *JSONWriter) Close() error {
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
