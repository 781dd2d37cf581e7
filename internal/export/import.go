package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Caia-Tech/pairforge/pkg/pair"
	"github.com/rs/zerolog/log"
)

// importRecord mirrors the JSON export shape on the way back in.
type importRecord struct {
	Prompt     string   `json:"prompt"`
	Completion string   `json:"completion"`
	Tags       []string `json:"tags"`
}

// ImportJSON parses a JSON array of pairs, or JSON-Lines when the content
// does not start with a bracket. Records missing either field are skipped,
// matching the lenient import behavior extraction users expect.
func ImportJSON(content string) (pair.Dataset, error) {
	records, err := parseImportRecords(content)
	if err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}

	ds := make(pair.Dataset, 0, len(records))
	for _, r := range records {
		if r.Prompt == "" || r.Completion == "" {
			continue
		}
		tags := r.Tags
		if tags == nil {
			tags = []string{}
		}
		ds = append(ds, pair.Pair{Prompt: r.Prompt, Completion: r.Completion, Tags: tags})
	}

	log.Debug().Int("records", len(records)).Int("imported", len(ds)).Msg("JSON import parsed")
	return ds, nil
}

func parseImportRecords(content string) ([]importRecord, error) {
	trimmed := strings.TrimSpace(content)

	if strings.HasPrefix(trimmed, "[") {
		var records []importRecord
		if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var records []importRecord
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var r importRecord
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// ImportCSV parses a CSV file with a header row. The prompt column is the
// first whose header contains "prompt" or "input"; the completion column
// the first containing "completion", "output", or "response". Rows too
// short to cover both columns are skipped.
func ImportCSV(content string) (pair.Dataset, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV: %w", err)
	}
	if len(rows) == 0 {
		return pair.Dataset{}, nil
	}

	promptIdx, completionIdx := -1, -1
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		if promptIdx == -1 && (strings.Contains(name, "prompt") || strings.Contains(name, "input")) {
			promptIdx = i
		}
		if completionIdx == -1 && (strings.Contains(name, "completion") || strings.Contains(name, "output") || strings.Contains(name, "response")) {
			completionIdx = i
		}
	}
	if promptIdx == -1 || completionIdx == -1 {
		return nil, fmt.Errorf("CSV must have prompt/input and completion/output/response columns")
	}

	var ds pair.Dataset
	for _, row := range rows[1:] {
		if len(row) <= promptIdx || len(row) <= completionIdx {
			continue
		}
		ds = append(ds, pair.Pair{
			Prompt:     strings.TrimSpace(row[promptIdx]),
			Completion: strings.TrimSpace(row[completionIdx]),
			Tags:       []string{},
		})
	}

	log.Debug().Int("rows", len(rows)-1).Int("imported", len(ds)).Msg("CSV import parsed")
	return ds, nil
}

// ImportTextBlocks parses pasted plain text: blocks separated by blank
// lines, first line the prompt and the remaining lines joined by spaces as
// the completion. Single-line blocks are skipped.
func ImportTextBlocks(content string) pair.Dataset {
	var ds pair.Dataset

	for _, block := range strings.Split(strings.TrimSpace(content), "\n\n") {
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, strings.TrimSpace(line))
			}
		}
		if len(lines) < 2 {
			continue
		}
		ds = append(ds, pair.Pair{
			Prompt:     lines[0],
			Completion: strings.Join(lines[1:], " "),
			Tags:       []string{},
		})
	}
	return ds
}
