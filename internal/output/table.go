// internal/output/table.go
package output

import (
	"fmt"
	"strconv"

	"github.com/valpere/SurveyRanker/pkg/types"
)

// fixedColumns are the leading columns of every tabular export, in order.
var fixedColumns = []string{
	"rank_dense",
	"rank_competition",
	"title",
	"video_id",
	"upload_date",
	"uploader",
}

// BuildTable renders ranking rows into a header and string records. The
// respondent columns extend to the maximum selection count observed
// across all videos; rows with fewer voters leave trailing cells blank.
func BuildTable(rows []types.RankingRow) ([]string, [][]string) {
	maxVoters := 0
	for _, row := range rows {
		if row.SelectionCount > maxVoters {
			maxVoters = row.SelectionCount
		}
	}

	header := make([]string, 0, len(fixedColumns)+maxVoters)
	header = append(header, fixedColumns...)
	for i := 1; i <= maxVoters; i++ {
		header = append(header, fmt.Sprintf("respondent_%d", i))
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := make([]string, 0, len(header))
		record = append(record,
			strconv.Itoa(row.RankDense),
			strconv.Itoa(row.RankCompetition),
			row.Title,
			row.VideoID,
			row.UploadDate,
			row.Uploader,
		)
		for i := 0; i < maxVoters; i++ {
			if i < len(row.Respondents) {
				record = append(record, row.Respondents[i])
			} else {
				record = append(record, "")
			}
		}
		records = append(records, record)
	}

	return header, records
}
