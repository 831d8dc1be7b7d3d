// pkg/types/types.go

// Package types defines the value types shared across the SurveyRanker
// pipeline: resolved video metadata, individual respondent votes, and the
// aggregated ranking rows produced at the end of a run.
package types

// Sentinel strings substituted for metadata that could not be retrieved.
// Every output field must be a display-ready string, so missing values are
// never left empty.
const (
	SentinelTitle       = "[title unavailable]"
	SentinelUploader    = "[uploader unknown]"
	SentinelDate        = "[unknown]"
	SentinelUnavailable = "[unavailable/unsupported]"
)

// VideoRecord holds the canonical metadata of one resolved video.
// Records are created once per resolution attempt and never mutated.
type VideoRecord struct {
	// VideoID is the platform-scoped unique identifier and the
	// aggregation key.
	VideoID string `json:"video_id"`

	// Title of the video, or SentinelTitle when unavailable.
	Title string `json:"title"`

	// Uploader name, or SentinelUploader when unavailable.
	Uploader string `json:"uploader"`

	// UploadDate carries whatever precision the source platform supplies,
	// date-only or date-time, or SentinelDate when unavailable.
	UploadDate string `json:"upload_date"`

	// SourceURL is the URL the record was resolved from, when known.
	SourceURL string `json:"source_url,omitempty"`
}

// Resolution is the outcome of resolving one raw URL. A URL either resolves
// to one or more records (a playlist expands to several) or to nothing at
// all, in which case Resolved is false and the caller applies its own
// degraded fallback.
type Resolution struct {
	Records  []VideoRecord
	Resolved bool
}

// Vote is a single respondent's selection of a single resolved video.
// Metadata fields are copied from the VideoRecord at creation time.
type Vote struct {
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	Uploader   string `json:"uploader"`
	UploadDate string `json:"upload_date"`
	Respondent string `json:"respondent"`
}

// RankingRow is one row of the aggregated ranking, one per distinct video
// id across all votes.
type RankingRow struct {
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	Uploader   string `json:"uploader"`
	UploadDate string `json:"upload_date"`

	// Respondents is the set of distinct respondents who selected this
	// video, sorted lexicographically.
	Respondents []string `json:"respondents"`

	// SelectionCount is the number of distinct respondents.
	SelectionCount int `json:"selection_count"`

	// RankDense is the 1-based position in the sorted ranking, strictly
	// increasing with ties broken by video id.
	RankDense int `json:"rank_dense"`

	// RankCompetition assigns tied selection counts the same rank, equal
	// to the lowest dense rank of the tie group, leaving gaps afterwards.
	RankCompetition int `json:"rank_competition"`
}

// ResolvedSingle wraps a single record as a successful Resolution.
func ResolvedSingle(rec VideoRecord) Resolution {
	return Resolution{Records: []VideoRecord{rec}, Resolved: true}
}

// Unresolved is the Resolution for a URL no provider could handle.
func Unresolved() Resolution {
	return Resolution{Resolved: false}
}
