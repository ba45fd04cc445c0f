package devutil

import (
	"reflect"
	"testing"
)

func TestPick(t *testing.T) {
	type runResult struct {
		Students int      `json:"students"`
		AtRisk   int      `json:"at_risk"`
		Accuracy float64  `json:"accuracy"`
		Charts   []string `json:"charts"`
	}

	testCases := []struct {
		name     string
		input    any
		keys     []string
		expected map[string]any
	}{
		{
			name:     "subset of a struct",
			input:    runResult{Students: 200, AtRisk: 37, Accuracy: 0.925, Charts: []string{"grade_distribution.png"}},
			keys:     []string{"students", "accuracy"},
			expected: map[string]any{"students": float64(200), "accuracy": 0.925},
		},
		{
			name:     "subset of a map",
			input:    map[string]any{"host": "sftp.test", "port": 22, "user": "deploy"},
			keys:     []string{"host", "user"},
			expected: map[string]any{"host": "sftp.test", "user": "deploy"},
		},
		{
			name:     "nil input",
			input:    nil,
			keys:     []string{"students"},
			expected: map[string]any{},
		},
		{
			name:     "no keys requested",
			input:    runResult{Students: 200},
			keys:     nil,
			expected: map[string]any{},
		},
		{
			name:     "unknown keys are skipped",
			input:    runResult{Students: 200},
			keys:     []string{"students", "no_such_field"},
			expected: map[string]any{"students": float64(200)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Pick(tc.input, tc.keys...)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Pick() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestPickUnmarshalableInput(t *testing.T) {
	// Channels cannot round-trip through JSON; Pick degrades to empty.
	got := Pick(make(chan int), "anything")
	if len(got) != 0 {
		t.Errorf("Pick() = %v, want empty map", got)
	}
}
