package pair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairComplete(t *testing.T) {
	tests := []struct {
		name     string
		pair     Pair
		complete bool
	}{
		{"both fields", Pair{Prompt: "What is X?", Completion: "X is a thing."}, true},
		{"empty prompt", Pair{Prompt: "", Completion: "X is a thing."}, false},
		{"whitespace prompt", Pair{Prompt: "   ", Completion: "X is a thing."}, false},
		{"empty completion", Pair{Prompt: "What is X?", Completion: ""}, false},
		{"both empty", Pair{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.complete, tt.pair.Complete())
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("FAQ")
	assert.True(t, ok)
	assert.Equal(t, FormatFAQ, f)

	_, ok = ParseFormat("")
	assert.False(t, ok)

	_, ok = ParseFormat("spreadsheet")
	assert.False(t, ok)
}

func TestComputeStats(t *testing.T) {
	ds := Dataset{
		{Prompt: "a", Completion: "b"},
		{Prompt: "", Completion: "b"},
		{Prompt: "c", Completion: "d"},
	}
	stats := ComputeStats(ds)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Valid)
	assert.Equal(t, 1, stats.Warnings)
}

func TestRemoveExactDuplicates(t *testing.T) {
	ds := Dataset{
		{Prompt: "a", Completion: "b", Tags: []string{"first"}},
		{Prompt: "a", Completion: "b", Tags: []string{"second"}},
		{Prompt: "a", Completion: "c"},
	}
	out := RemoveExactDuplicates(ds)
	assert.Len(t, out, 2)
	assert.Equal(t, []string{"first"}, out[0].Tags, "first occurrence wins")
}

func TestFilterComplete(t *testing.T) {
	ds := Dataset{
		{Prompt: "a", Completion: "b"},
		{Prompt: " ", Completion: "b"},
	}
	assert.Len(t, FilterComplete(ds), 1)
}
