package extraction

import "github.com/Caia-Tech/pairforge/pkg/pair"

// dedupePrefixLen is the number of leading characters of each field that
// form the near-duplicate key. A fixed prefix, not a full-content hash:
// long passages that only diverge deep into the text collapse together.
const dedupePrefixLen = 50

// Deduplicate collapses near-duplicate candidates, keeping the first
// occurrence and preserving order. This is the only place in the pipeline
// where a similarity heuristic, not exact equality, governs identity.
func Deduplicate(candidates []pair.Candidate) []pair.Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]pair.Candidate, 0, len(candidates))

	for _, c := range candidates {
		key := prefix(c.Prompt, dedupePrefixLen) + "|" + prefix(c.Completion, dedupePrefixLen)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
