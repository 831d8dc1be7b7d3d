// internal/output/types.go

// Package output renders the aggregated ranking into its export formats.
// The table layout is shared by every tabular writer: fixed leading
// columns followed by one column per respondent slot.
package output

import (
	"github.com/valpere/SurveyRanker/pkg/types"
)

// OutputFormat identifies an export format.
type OutputFormat string

const (
	FormatCSV    OutputFormat = "csv"
	FormatJSON   OutputFormat = "json"
	FormatExcel  OutputFormat = "excel"
	FormatSQLite OutputFormat = "sqlite"
)

// Writer writes the complete ranking to its destination. Output is
// all-or-nothing per run: Write is called exactly once, with every row.
type Writer interface {
	Write(rows []types.RankingRow) error
	Close() error
}

// fileExtensions maps formats to their conventional file extension, used
// when generating timestamped output filenames.
var fileExtensions = map[OutputFormat]string{
	FormatCSV:    "csv",
	FormatJSON:   "json",
	FormatExcel:  "xlsx",
	FormatSQLite: "db",
}
