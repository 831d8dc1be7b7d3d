// internal/tally/aggregate.go
package tally

import (
	"sort"

	"github.com/valpere/SurveyRanker/internal/utils"
	"github.com/valpere/SurveyRanker/pkg/types"
)

// ErrNoData is returned when there are no votes to aggregate. Callers must
// treat it as "nothing to show", not as a crash.
var ErrNoData = utils.NewStructuredError(utils.ErrCodeNoData, "no votes to aggregate; check the input structure and URL columns")

// Aggregate groups votes by video id, collapses duplicate selections by
// the same respondent, and returns the ranking sorted by selection count
// descending with video id as the tie-break. Both rank columns are
// assigned here: dense ranks are a strict 1..N permutation, competition
// ranks give tied selection counts the minimum rank of their tie group.
func Aggregate(votes []types.Vote) ([]types.RankingRow, error) {
	if len(votes) == 0 {
		return nil, ErrNoData
	}

	type partition struct {
		first       types.Vote
		respondents map[string]bool
	}

	partitions := make(map[string]*partition)
	for _, vote := range votes {
		part, ok := partitions[vote.VideoID]
		if !ok {
			part = &partition{
				first:       vote,
				respondents: make(map[string]bool),
			}
			partitions[vote.VideoID] = part
		}
		part.respondents[vote.Respondent] = true
	}

	rows := make([]types.RankingRow, 0, len(partitions))
	for videoID, part := range partitions {
		respondents := make([]string, 0, len(part.respondents))
		for respondent := range part.respondents {
			respondents = append(respondents, respondent)
		}
		sort.Strings(respondents)

		rows = append(rows, types.RankingRow{
			VideoID:        videoID,
			Title:          part.first.Title,
			Uploader:       part.first.Uploader,
			UploadDate:     part.first.UploadDate,
			Respondents:    respondents,
			SelectionCount: len(respondents),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SelectionCount != rows[j].SelectionCount {
			return rows[i].SelectionCount > rows[j].SelectionCount
		}
		return rows[i].VideoID < rows[j].VideoID
	})

	for i := range rows {
		rows[i].RankDense = i + 1
		if i > 0 && rows[i].SelectionCount == rows[i-1].SelectionCount {
			rows[i].RankCompetition = rows[i-1].RankCompetition
		} else {
			rows[i].RankCompetition = i + 1
		}
	}

	return rows, nil
}
