package storage

import (
	"context"

	"github.com/Caia-Tech/pairforge/pkg/pair"
	"github.com/rs/zerolog/log"
)

// samplePairs is the starter dataset offered to fresh installs so the
// analytics surfaces have something to show before any extraction runs.
var samplePairs = pair.Dataset{
	{
		Prompt:     "What is a function?",
		Completion: "A function is a reusable block of code that performs a specific task.",
		Tags:       []string{"programming", "basics"},
	},
	{
		Prompt:     "What is a variable?",
		Completion: "A variable is a container for storing data values.",
		Tags:       []string{"programming", "basics"},
	},
	{
		Prompt:     "What is JavaScript?",
		Completion: "JavaScript is a high-level, interpreted programming language that is one of the core technologies of the World Wide Web.",
		Tags:       []string{"javascript", "web"},
	},
	{
		Prompt:     "How do you declare a variable in JavaScript?",
		Completion: "You can declare a variable using var, let, or const keywords. For example: let myVariable = 'value';",
		Tags:       []string{"javascript", "syntax"},
	},
	{
		Prompt:     "What is an array?",
		Completion: "An array is a data structure that can hold multiple values in a single variable, accessed by index.",
		Tags:       []string{"programming", "data-structures"},
	},
}

// SeedSampleData loads the starter pairs into an empty store. A store
// that already holds data is left untouched.
func SeedSampleData(ctx context.Context, store Store) (int, error) {
	existing, err := store.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for _, p := range samplePairs {
		if _, err := store.Add(ctx, p); err != nil {
			return 0, err
		}
	}

	log.Info().Int("pairs", len(samplePairs)).Msg("Seeded sample training pairs")
	return len(samplePairs), nil
}
