// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/valpere/SurveyRanker/internal/config"
	"github.com/valpere/SurveyRanker/internal/tally"
	"github.com/valpere/SurveyRanker/pkg/types"
)

type fakeSource struct {
	results map[string]types.Resolution
	calls   map[string]int
}

func (f *fakeSource) GetOrResolve(_ context.Context, rawURL string) types.Resolution {
	f.calls[rawURL]++
	if res, ok := f.results[rawURL]; ok {
		return res
	}
	return types.Unresolved()
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "responses.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func testConfig(t *testing.T, inputPath string) *config.Config {
	t.Helper()
	cfg, err := config.LoadFromBytes([]byte(`
input:
  file: ` + inputPath + `
output:
  format: csv
  file: ` + filepath.Join(t.TempDir(), "out.csv") + `
`))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}
	return cfg
}

func TestRunEndToEnd(t *testing.T) {
	input := writeTempCSV(t,
		"ts,name,age,mylist,link\n"+
			"1,Alice,x,https://site/watch/sm1,\n"+
			"2,Bob,x,https://site/watch/sm1,\n"+
			"3,Carol,x,,https://site/watch/sm2\n")

	source := &fakeSource{
		calls: make(map[string]int),
		results: map[string]types.Resolution{
			"https://site/watch/sm1": types.ResolvedSingle(types.VideoRecord{
				VideoID: "sm1", Title: "Popular", Uploader: "u", UploadDate: "d",
			}),
			"https://site/watch/sm2": types.ResolvedSingle(types.VideoRecord{
				VideoID: "sm2", Title: "Other", Uploader: "u", UploadDate: "d",
			}),
		},
	}

	cfg := testConfig(t, input)
	p := New(cfg)
	p.SetMetadataSource(source)

	var progressCalls int
	p.SetProgress(func(current, total int) { progressCalls++ })

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Ranking) != 2 {
		t.Fatalf("expected 2 ranked videos, got %d", len(result.Ranking))
	}
	if result.Ranking[0].VideoID != "sm1" || result.Ranking[0].SelectionCount != 2 {
		t.Errorf("unexpected top row: %+v", result.Ranking[0])
	}
	if result.Metrics.Rows != 3 || result.Metrics.Votes != 3 {
		t.Errorf("unexpected metrics: %+v", result.Metrics)
	}
	if progressCalls != 3 {
		t.Errorf("expected 3 progress callbacks, got %d", progressCalls)
	}

	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("expected output file at %s: %v", result.OutputPath, err)
	}
	if !strings.Contains(string(data), "Popular") {
		t.Error("expected exported ranking to contain the top title")
	}
}

func TestRunNoData(t *testing.T) {
	input := writeTempCSV(t, "ts,name,age,mylist,link\n1,Alice,x,,\n")

	cfg := testConfig(t, input)
	outPath := cfg.Output.File

	p := New(cfg)
	p.SetMetadataSource(&fakeSource{calls: make(map[string]int)})

	_, err := p.Run(context.Background())
	if !errors.Is(err, tally.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}

	// All-or-nothing: nothing may be written on a failed run.
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("expected no output file after a no-data run")
	}
}

func TestRunMissingInputFile(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing.csv"))

	p := New(cfg)
	p.SetMetadataSource(&fakeSource{calls: make(map[string]int)})

	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing input file")
	}
}
