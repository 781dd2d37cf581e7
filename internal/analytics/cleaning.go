package analytics

import (
	"fmt"
	"strings"

	"github.com/Caia-Tech/pairforge/pkg/pair"
)

// minCleanTextLen flags pairs whose non-empty fields fall under this
// length in the cleaning scan.
const minCleanTextLen = 20

// CleaningIssue is one category of defect found by ScanForIssues, with
// the indices of the pairs it affects.
type CleaningIssue struct {
	Type          string `json:"type"`
	Description   string `json:"description"`
	AffectedPairs []int  `json:"affected_pairs"`
	CanFix        bool   `json:"can_fix"`
}

// ScanForIssues inspects a dataset for duplicates, short text, and empty
// fields. A clean dataset yields an empty slice. Indices refer to the
// dataset as passed in, so callers can map issues back to stored pairs.
func ScanForIssues(ds pair.Dataset) []CleaningIssue {
	var issues []CleaningIssue

	seen := make(map[string]bool, len(ds))
	var duplicates []int
	for i, p := range ds {
		key := p.Key()
		if seen[key] {
			duplicates = append(duplicates, i)
			continue
		}
		seen[key] = true
	}
	if len(duplicates) > 0 {
		issues = append(issues, CleaningIssue{
			Type:          "duplicates",
			Description:   fmt.Sprintf("Found %d duplicate pair(s)", len(duplicates)),
			AffectedPairs: duplicates,
			CanFix:        true,
		})
	}

	var short []int
	for i, p := range ds {
		if shortField(p.Prompt) || shortField(p.Completion) {
			short = append(short, i)
		}
	}
	if len(short) > 0 {
		issues = append(issues, CleaningIssue{
			Type:          "short-text",
			Description:   fmt.Sprintf("Found %d pair(s) with short text (<%d chars)", len(short), minCleanTextLen),
			AffectedPairs: short,
			CanFix:        true,
		})
	}

	var empty []int
	for i, p := range ds {
		if strings.TrimSpace(p.Prompt) == "" || strings.TrimSpace(p.Completion) == "" {
			empty = append(empty, i)
		}
	}
	if len(empty) > 0 {
		issues = append(issues, CleaningIssue{
			Type:          "empty-fields",
			Description:   fmt.Sprintf("Found %d pair(s) with empty fields", len(empty)),
			AffectedPairs: empty,
			CanFix:        true,
		})
	}

	return issues
}

// shortField is true for non-empty text under the minimum length. Empty
// fields are the empty-fields category's concern, not this one's.
func shortField(s string) bool {
	return s != "" && len(s) < minCleanTextLen
}
