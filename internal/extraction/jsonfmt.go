package extraction

import (
	"encoding/json"
	"strings"

	"github.com/Caia-Tech/pairforge/pkg/pair"
	"github.com/rs/zerolog/log"
)

// jsonRecord accepts the field-name synonyms seen in the wild. The first
// present of prompt|question|input and completion|answer|output|response
// wins.
type jsonRecord struct {
	Prompt   string `json:"prompt"`
	Question string `json:"question"`
	Input    string `json:"input"`

	Completion string `json:"completion"`
	Answer     string `json:"answer"`
	Output     string `json:"output"`
	Response   string `json:"response"`

	Tags []string `json:"tags"`
}

func (r jsonRecord) resolvedPrompt() string {
	for _, v := range []string{r.Prompt, r.Question, r.Input} {
		if v != "" {
			return v
		}
	}
	return ""
}

func (r jsonRecord) resolvedCompletion() string {
	for _, v := range []string{r.Completion, r.Answer, r.Output, r.Response} {
		if v != "" {
			return v
		}
	}
	return ""
}

// ExtractJSON parses the text as a JSON array of records, or as JSON-Lines
// with one object per non-blank line. Records missing either resolved field
// are dropped. Malformed input yields an empty slice, never an error: the
// caller reports "0 pairs extracted".
func ExtractJSON(text string) []pair.Candidate {
	records, err := parseRecords(text)
	if err != nil {
		log.Debug().Err(err).Msg("JSON extraction failed to parse input")
		return nil
	}

	var candidates []pair.Candidate
	for _, r := range records {
		prompt := r.resolvedPrompt()
		completion := r.resolvedCompletion()
		if prompt == "" || completion == "" {
			continue
		}
		tags := r.Tags
		if len(tags) == 0 {
			tags = []string{"json"}
		}
		candidates = append(candidates, pair.Candidate{
			Prompt:     prompt,
			Completion: completion,
			Tags:       tags,
		})
	}
	return candidates
}

func parseRecords(text string) ([]jsonRecord, error) {
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "[") {
		var records []jsonRecord
		if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	// JSON-Lines: one object per non-blank line.
	var records []jsonRecord
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var r jsonRecord
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}
