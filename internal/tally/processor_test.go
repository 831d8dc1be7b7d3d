// internal/tally/processor_test.go
package tally

import (
	"context"
	"testing"

	"github.com/valpere/SurveyRanker/internal/config"
	"github.com/valpere/SurveyRanker/pkg/types"
)

// fakeSource mimics the resolution cache with canned results.
type fakeSource struct {
	results map[string]types.Resolution
	calls   map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		results: make(map[string]types.Resolution),
		calls:   make(map[string]int),
	}
}

func (f *fakeSource) GetOrResolve(_ context.Context, rawURL string) types.Resolution {
	f.calls[rawURL]++
	if res, ok := f.results[rawURL]; ok {
		return res
	}
	return types.Unresolved()
}

func (f *fakeSource) addVideo(rawURL, videoID string) {
	f.results[rawURL] = types.ResolvedSingle(types.VideoRecord{
		VideoID:    videoID,
		Title:      "title-" + videoID,
		Uploader:   "uploader",
		UploadDate: "2024-01-01 00:00:00",
	})
}

var testSchema = config.SchemaConfig{Respondent: 1, URLs: []int{3, 4}}

func newTestProcessor(source MetadataSource, opts ProcessorOptions) *Processor {
	return NewProcessor(source, testSchema, opts)
}

func TestProcessSingleRow(t *testing.T) {
	source := newFakeSource()
	source.addVideo("https://site/watch/sm12345", "sm12345")

	rows := [][]string{
		{"ts", "Alice", "x", "https://site/watch/sm12345", ""},
	}

	votes, advisory := newTestProcessor(source, ProcessorOptions{KeepUnmatched: true}).Process(context.Background(), rows)

	if len(votes) != 1 {
		t.Fatalf("expected 1 vote, got %d", len(votes))
	}
	if votes[0].VideoID != "sm12345" || votes[0].Respondent != "Alice" {
		t.Errorf("unexpected vote: %+v", votes[0])
	}
	if advisory.DroppedURLs != 0 || advisory.DegradedVotes != 0 {
		t.Errorf("unexpected advisory: %+v", advisory)
	}
}

func TestProcessTwoRespondentsSameVideo(t *testing.T) {
	source := newFakeSource()
	source.addVideo("https://site/watch/sm12345", "sm12345")

	rows := [][]string{
		{"ts", "Alice", "x", "https://site/watch/sm12345", ""},
		{"ts", "Bob", "x", "https://site/watch/sm12345", ""},
	}

	votes, _ := newTestProcessor(source, ProcessorOptions{}).Process(context.Background(), rows)

	if len(votes) != 2 {
		t.Fatalf("expected 2 votes, got %d", len(votes))
	}

	ranking, err := Aggregate(votes)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if ranking[0].SelectionCount != 2 {
		t.Errorf("expected selection count 2, got %d", ranking[0].SelectionCount)
	}
	if got := ranking[0].Respondents; len(got) != 2 || got[0] != "Alice" || got[1] != "Bob" {
		t.Errorf("expected respondents [Alice Bob], got %v", got)
	}
}

func TestProcessAnonymousRespondentsStayDistinct(t *testing.T) {
	source := newFakeSource()
	source.addVideo("u1", "sm1")
	source.addVideo("u2", "sm1")

	rows := [][]string{
		{"ts", "", "x", "u1", ""},
		{"ts", "", "x", "u2", ""},
	}

	votes, _ := newTestProcessor(source, ProcessorOptions{}).Process(context.Background(), rows)

	if len(votes) != 2 {
		t.Fatalf("expected 2 votes, got %d", len(votes))
	}
	if votes[0].Respondent == votes[1].Respondent {
		t.Errorf("anonymous respondents merged into %q", votes[0].Respondent)
	}
}

func TestProcessDegradedFallbackFromIdentifier(t *testing.T) {
	source := newFakeSource() // everything unresolved

	rows := [][]string{
		{"ts", "Alice", "x", "https://dead.example/watch/sm777", ""},
	}

	votes, advisory := newTestProcessor(source, ProcessorOptions{KeepUnmatched: true}).Process(context.Background(), rows)

	if len(votes) != 1 {
		t.Fatalf("expected 1 degraded vote, got %d", len(votes))
	}
	v := votes[0]
	if v.VideoID != "sm777" {
		t.Errorf("expected extracted identifier as video id, got %s", v.VideoID)
	}
	if v.Title != types.SentinelTitle || v.Uploader != types.SentinelUploader || v.UploadDate != types.SentinelDate {
		t.Errorf("expected sentinel fields on degraded vote, got %+v", v)
	}
	if advisory.DegradedVotes != 1 {
		t.Errorf("expected 1 degraded vote in advisory, got %d", advisory.DegradedVotes)
	}
}

func TestProcessUnmatchedURLKept(t *testing.T) {
	source := newFakeSource()

	rows := [][]string{
		{"ts", "Alice", "x", "https://unknown.example/page", ""},
	}

	votes, advisory := newTestProcessor(source, ProcessorOptions{KeepUnmatched: true}).Process(context.Background(), rows)

	if len(votes) != 1 {
		t.Fatalf("expected 1 placeholder vote, got %d", len(votes))
	}
	if votes[0].VideoID != "https://unknown.example/page" {
		t.Errorf("expected raw URL as aggregation key, got %s", votes[0].VideoID)
	}
	if votes[0].Title != types.SentinelUnavailable {
		t.Errorf("expected unavailable sentinel title, got %s", votes[0].Title)
	}
	if advisory.DroppedURLs != 0 {
		t.Errorf("kept URL must not count as dropped, got %d", advisory.DroppedURLs)
	}
}

func TestProcessUnmatchedURLDropped(t *testing.T) {
	source := newFakeSource()

	rows := [][]string{
		{"ts", "Alice", "x", "https://unknown.example/page", ""},
	}

	votes, advisory := newTestProcessor(source, ProcessorOptions{KeepUnmatched: false}).Process(context.Background(), rows)

	if len(votes) != 0 {
		t.Fatalf("expected no votes, got %d", len(votes))
	}
	if advisory.DroppedURLs != 1 {
		t.Errorf("expected 1 dropped URL, got %d", advisory.DroppedURLs)
	}
}

func TestProcessPlaylistExpansion(t *testing.T) {
	source := newFakeSource()
	source.results["https://site/mylist/9"] = types.Resolution{
		Resolved: true,
		Records: []types.VideoRecord{
			{VideoID: "sm1", Title: "a", Uploader: "u", UploadDate: "d"},
			{VideoID: "sm2", Title: "b", Uploader: "u", UploadDate: "d"},
		},
	}

	rows := [][]string{
		{"ts", "Alice", "x", "https://site/mylist/9", ""},
	}

	votes, _ := newTestProcessor(source, ProcessorOptions{}).Process(context.Background(), rows)

	if len(votes) != 2 {
		t.Fatalf("expected one vote per playlist entry, got %d", len(votes))
	}
	if votes[0].VideoID != "sm1" || votes[1].VideoID != "sm2" {
		t.Errorf("unexpected playlist votes: %+v", votes)
	}
}

func TestProcessQuotaAdvisory(t *testing.T) {
	source := newFakeSource()
	source.addVideo("u1", "sm1")
	source.addVideo("u2", "sm2")

	rows := [][]string{
		{"ts", "Alice", "x", "u1", "u2"}, // 2 votes, meets quota
		{"ts", "Bob", "x", "u1", ""},     // 1 vote, misses quota
	}

	_, advisory := newTestProcessor(source, ProcessorOptions{Quota: 2}).Process(context.Background(), rows)

	if len(advisory.QuotaMismatches) != 1 {
		t.Fatalf("expected 1 quota mismatch, got %+v", advisory.QuotaMismatches)
	}
	if advisory.QuotaMismatches[0].Respondent != "Bob" || advisory.QuotaMismatches[0].Votes != 1 {
		t.Errorf("unexpected mismatch: %+v", advisory.QuotaMismatches[0])
	}
}

func TestProcessSkipsEmptyRowsAndBlankURLs(t *testing.T) {
	source := newFakeSource()
	source.addVideo("u1", "sm1")

	rows := [][]string{
		{},
		{"ts", "Alice", "x", "  ", ""},
		{"ts", "Bob", "x", "u1", ""},
		{"short"},
	}

	votes, _ := newTestProcessor(source, ProcessorOptions{}).Process(context.Background(), rows)

	if len(votes) != 1 || votes[0].Respondent != "Bob" {
		t.Fatalf("expected a single vote from Bob, got %+v", votes)
	}
	if source.calls["  "] != 0 {
		t.Error("blank URL must not reach the resolver")
	}
}

func TestProcessProgressCallback(t *testing.T) {
	source := newFakeSource()
	rows := [][]string{
		{"ts", "A", "x", "", ""},
		{"ts", "B", "x", "", ""},
		{"ts", "C", "x", "", ""},
	}

	var reported []int
	proc := newTestProcessor(source, ProcessorOptions{
		Progress: func(current, total int) {
			if total != 3 {
				t.Errorf("expected total 3, got %d", total)
			}
			reported = append(reported, current)
		},
	})
	proc.Process(context.Background(), rows)

	if len(reported) != 3 || reported[0] != 1 || reported[2] != 3 {
		t.Errorf("expected progress after each row, got %v", reported)
	}
}
