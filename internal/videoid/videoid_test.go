// internal/videoid/videoid_test.go
package videoid

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "plain watch url",
			input:    "https://www.nicovideo.jp/watch/sm12345",
			expected: []string{"sm12345"},
		},
		{
			name:     "channel video id",
			input:    "https://www.nicovideo.jp/watch/so9876543",
			expected: []string{"so9876543"},
		},
		{
			name:     "legacy nm id",
			input:    "nm314159",
			expected: []string{"nm314159"},
		},
		{
			name:     "multiple ids left to right",
			input:    "sm1 then so2 then sm3",
			expected: []string{"sm1", "so2", "sm3"},
		},
		{
			name:     "duplicates preserved",
			input:    "sm42 sm42",
			expected: []string{"sm42", "sm42"},
		},
		{
			name:     "id embedded in query string",
			input:    "https://example.com/redirect?target=watch%2Fsm777&x=1",
			expected: []string{"sm777"},
		},
		{
			name:     "no match",
			input:    "https://example.com/watch/abc",
			expected: nil,
		},
		{
			name:     "prefix without digits",
			input:    "sm so nm",
			expected: nil,
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Extract(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFirst(t *testing.T) {
	if got := First("see sm100 and sm200"); got != "sm100" {
		t.Errorf("First returned %q, expected sm100", got)
	}
	if got := First("nothing here"); got != "" {
		t.Errorf("First returned %q, expected empty string", got)
	}
}
