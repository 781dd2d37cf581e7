package pair

import (
	"fmt"
	"strings"
	"time"
)

// Pair is a single prompt/completion training example.
type Pair struct {
	ID         string    `json:"id,omitempty"`
	Prompt     string    `json:"prompt"`
	Completion string    `json:"completion"`
	Tags       []string  `json:"tags"`
	Timestamp  time.Time `json:"timestamp,omitempty"` // set by the storage layer on create/update
}

// Candidate is an unvalidated, pre-deduplication extraction result.
type Candidate struct {
	Prompt     string   `json:"prompt"`
	Completion string   `json:"completion"`
	Tags       []string `json:"tags"`
}

// Dataset is an ordered sequence of pairs. Insertion order is significant:
// trend analysis treats it as chronological. Storage enforces no uniqueness;
// uniqueness is a quality metric, not a structural constraint.
type Dataset []Pair

// Format identifies the detected shape of raw input text.
type Format string

const (
	FormatCV           Format = "cv"
	FormatFAQ          Format = "faq"
	FormatConversation Format = "conversation"
	FormatJSON         Format = "json"
	FormatEmail        Format = "email"
	FormatGeneric      Format = "generic"
)

// Formats lists every recognized format label.
func Formats() []Format {
	return []Format{FormatCV, FormatFAQ, FormatConversation, FormatJSON, FormatEmail, FormatGeneric}
}

// ParseFormat resolves a caller-supplied format override. The empty string
// means "auto-detect" and is returned as-is with ok=false.
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// Complete reports whether both fields are non-empty after trimming.
// Incomplete pairs may exist in storage but are excluded from
// validity-gated computations.
func (p Pair) Complete() bool {
	return strings.TrimSpace(p.Prompt) != "" && strings.TrimSpace(p.Completion) != ""
}

// Key returns the exact-match identity used for duplicate detection.
func (p Pair) Key() string {
	return p.Prompt + "|" + p.Completion
}

// Validate checks the fields required for a pair to enter a dataset.
func (p Pair) Validate() error {
	if strings.TrimSpace(p.Prompt) == "" {
		return fmt.Errorf("pair prompt cannot be empty")
	}
	if strings.TrimSpace(p.Completion) == "" {
		return fmt.Errorf("pair completion cannot be empty")
	}
	return nil
}

// Stats summarizes a dataset for display.
type Stats struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Warnings int `json:"warnings"`
}

// ComputeStats counts complete and incomplete pairs.
func ComputeStats(ds Dataset) Stats {
	valid := 0
	for _, p := range ds {
		if p.Complete() {
			valid++
		}
	}
	return Stats{
		Total:    len(ds),
		Valid:    valid,
		Warnings: len(ds) - valid,
	}
}

// RemoveExactDuplicates drops pairs whose prompt|completion key was already
// seen, keeping the first occurrence. Returns a new dataset.
func RemoveExactDuplicates(ds Dataset) Dataset {
	seen := make(map[string]bool, len(ds))
	out := make(Dataset, 0, len(ds))
	for _, p := range ds {
		key := p.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// FilterComplete drops incomplete pairs. Returns a new dataset.
func FilterComplete(ds Dataset) Dataset {
	out := make(Dataset, 0, len(ds))
	for _, p := range ds {
		if p.Complete() {
			out = append(out, p)
		}
	}
	return out
}
