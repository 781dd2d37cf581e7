// Package export serializes datasets for training consumers and parses
// the dataset interchange formats back into pairs.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Caia-Tech/pairforge/pkg/pair"
	"github.com/rs/zerolog/log"
)

// Format names a dataset serialization format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatCSV   Format = "csv"
)

// Options controls the pre-export filtering passes. Validation defaults
// on: most training toolchains reject pairs with empty fields.
type Options struct {
	RemoveDuplicates bool `json:"remove_duplicates"`
	Validate         bool `json:"validate"`
}

// DefaultOptions returns the standard export configuration.
func DefaultOptions() Options {
	return Options{RemoveDuplicates: false, Validate: true}
}

// exportRecord is the on-wire pair shape. Internal fields (ID, timestamp)
// stay out of exports; training consumers only want the text.
type exportRecord struct {
	Prompt     string   `json:"prompt"`
	Completion string   `json:"completion"`
	Tags       []string `json:"tags,omitempty"`
}

// Export serializes the dataset in the requested format after applying
// the option passes. Exporting an empty dataset is an error so callers
// surface it instead of shipping an empty file.
func Export(ds pair.Dataset, format Format, opts Options) ([]byte, string, error) {
	if len(ds) == 0 {
		return nil, "", fmt.Errorf("no pairs to export")
	}

	if opts.RemoveDuplicates {
		ds = pair.RemoveExactDuplicates(ds)
	}
	if opts.Validate {
		ds = pair.FilterComplete(ds)
	}

	var (
		data []byte
		mime string
		err  error
	)
	switch format {
	case FormatJSONL:
		data, err = exportJSONL(ds)
		mime = "application/jsonl"
	case FormatCSV:
		data, err = exportCSV(ds)
		mime = "text/csv"
	case FormatJSON:
		data, err = exportJSON(ds)
		mime = "application/json"
	default:
		return nil, "", fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return nil, "", err
	}

	log.Debug().
		Str("format", string(format)).
		Int("pairs", len(ds)).
		Int("bytes", len(data)).
		Msg("Dataset exported")
	return data, mime, nil
}

func exportJSON(ds pair.Dataset) ([]byte, error) {
	records := make([]exportRecord, len(ds))
	for i, p := range ds {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		records[i] = exportRecord{Prompt: p.Prompt, Completion: p.Completion, Tags: tags}
	}
	return json.MarshalIndent(records, "", "  ")
}

// exportJSONL emits one prompt/completion object per line, tags omitted:
// the JSONL consumers are fine-tuning jobs that only read the two fields.
func exportJSONL(ds pair.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	for i, p := range ds {
		line, err := json.Marshal(struct {
			Prompt     string `json:"prompt"`
			Completion string `json:"completion"`
		}{p.Prompt, p.Completion})
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(line)
	}
	return buf.Bytes(), nil
}

func exportCSV(ds pair.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"prompt", "completion"}); err != nil {
		return nil, err
	}
	for _, p := range ds {
		if err := w.Write([]string{p.Prompt, p.Completion}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename suggests a download name for the format.
func Filename(format Format) string {
	switch format {
	case FormatJSONL:
		return "dataset.jsonl"
	case FormatCSV:
		return "dataset.csv"
	default:
		return "dataset.json"
	}
}

// ParseFormat resolves a format name, defaulting to JSON for the empty
// string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatJSONL:
		return FormatJSONL, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}
