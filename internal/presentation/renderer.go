// Package presentation renders analytics reports for human consumption
// and serves them over a small read-only HTTP API.
package presentation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Caia-Tech/pairforge/internal/analytics"
	"github.com/rs/zerolog/log"
)

// OutputFormat represents the report output format
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatPlain    OutputFormat = "plain"
	FormatJSON     OutputFormat = "json"
)

// RendererConfig configures the renderer
type RendererConfig struct {
	DefaultFormat OutputFormat `json:"default_format"`
	TopWordLimit  int          `json:"top_word_limit"`
}

// DefaultRendererConfig returns the standard renderer configuration.
func DefaultRendererConfig() *RendererConfig {
	return &RendererConfig{
		DefaultFormat: FormatMarkdown,
		TopWordLimit:  10,
	}
}

// RenderedReport is a formatted analytics report ready for display.
type RenderedReport struct {
	Format     OutputFormat `json:"format"`
	Content    string       `json:"content"`
	RenderTime time.Time    `json:"render_time"`
}

// Renderer formats analytics reports.
type Renderer struct {
	config *RendererConfig
}

// NewRenderer creates a report renderer
func NewRenderer(config *RendererConfig) *Renderer {
	if config == nil {
		config = DefaultRendererConfig()
	}
	return &Renderer{config: config}
}

// Render formats a report in the requested format. A nil report renders
// as a short "no data" notice rather than failing.
func (r *Renderer) Render(report *analytics.Report, format OutputFormat) (*RenderedReport, error) {
	if format == "" {
		format = r.config.DefaultFormat
	}

	log.Debug().Str("format", string(format)).Msg("Rendering analytics report")

	var (
		content string
		err     error
	)
	switch format {
	case FormatJSON:
		content, err = r.renderJSON(report)
	case FormatMarkdown:
		content = r.renderText(report, true)
	case FormatPlain:
		content = r.renderText(report, false)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	return &RenderedReport{
		Format:     format,
		Content:    content,
		RenderTime: time.Now().UTC(),
	}, nil
}

func (r *Renderer) renderJSON(report *analytics.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}

// renderText produces the markdown and plain renderings, which share
// structure and differ only in heading and emphasis markers.
func (r *Renderer) renderText(report *analytics.Report, markdown bool) string {
	h := func(text string) string {
		if markdown {
			return "## " + text
		}
		return strings.ToUpper(text)
	}
	bullet := func(text string) string {
		if markdown {
			return "- " + text
		}
		return "  * " + text
	}

	var b strings.Builder
	if markdown {
		b.WriteString("# Dataset Report\n\n")
	} else {
		b.WriteString("DATASET REPORT\n\n")
	}

	if report == nil {
		b.WriteString("No data to analyze. Add some training pairs first.\n")
		return b.String()
	}

	b.WriteString(h("Overview") + "\n")
	b.WriteString(bullet(fmt.Sprintf("Pairs: %d", report.Overview.TotalPairs)) + "\n")
	b.WriteString(bullet(fmt.Sprintf("Estimated tokens: %d", report.Overview.EstimatedTokens)) + "\n")
	b.WriteString(bullet(fmt.Sprintf("Avg prompt length: %d chars", report.Overview.AvgPromptLength)) + "\n")
	b.WriteString(bullet(fmt.Sprintf("Avg completion length: %d chars", report.Overview.AvgCompletionLength)) + "\n")
	b.WriteString(bullet(fmt.Sprintf("Unique tags: %d", report.Overview.UniqueTags)) + "\n\n")

	b.WriteString(h("Quality") + "\n")
	b.WriteString(bullet(fmt.Sprintf("Overall: %.0f/100 (%s - %s)",
		report.Quality.OverallScore, report.Quality.Grade.Letter, report.Quality.Grade.Message)) + "\n")
	b.WriteString(bullet(fmt.Sprintf("Completeness: %.1f", report.Quality.Scores.Completeness)) + "\n")
	b.WriteString(bullet(fmt.Sprintf("Consistency: %.1f", report.Quality.Scores.Consistency)) + "\n")
	b.WriteString(bullet(fmt.Sprintf("Uniqueness: %.1f", report.Quality.Scores.Uniqueness)) + "\n")
	b.WriteString(bullet(fmt.Sprintf("Length quality: %.1f", report.Quality.Scores.LengthQuality)) + "\n")
	for _, issue := range report.Quality.Issues {
		b.WriteString(bullet("Issue: "+issue) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(h("Diversity") + "\n")
	b.WriteString(bullet(fmt.Sprintf("Vocabulary size: %d", report.Diversity.VocabularySize)) + "\n")
	b.WriteString(bullet(fmt.Sprintf("Lexical diversity: %.2f%%", report.Diversity.LexicalDiversity)) + "\n")
	if len(report.Diversity.TagDistribution) > 0 {
		b.WriteString(bullet("Tags: "+formatTagDistribution(report.Diversity.TagDistribution)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(h("Readability & Balance") + "\n")
	b.WriteString(bullet(fmt.Sprintf("Flesch score: %d (%s)",
		report.Readability.FleschScore, report.Readability.ReadabilityLevel)) + "\n")
	b.WriteString(bullet(fmt.Sprintf("Sentence complexity: %s", report.Readability.Complexity)) + "\n")
	b.WriteString(bullet(fmt.Sprintf("Completion/prompt ratio: %.2f (%s)",
		report.Balance.AvgCompletionToPromptRatio, report.Balance.Recommendation)) + "\n\n")

	if len(report.Trends) > 0 {
		b.WriteString(h("Trends") + "\n")
		for _, bucket := range report.Trends {
			b.WriteString(bullet(fmt.Sprintf("%s: %d pairs, avg completion %d chars",
				bucket.Period, bucket.Count, bucket.AvgLength)) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(h("Insights") + "\n")
	for _, insight := range report.Insights {
		b.WriteString(bullet(fmt.Sprintf("[%s] %s", insight.Type, insight.Message)) + "\n")
	}

	if len(report.Recommendations) > 0 {
		b.WriteString("\n" + h("Recommendations") + "\n")
		for _, rec := range report.Recommendations {
			b.WriteString(bullet(fmt.Sprintf("(%s) %s: %s %s",
				rec.Priority, rec.Title, rec.Description, rec.Action)) + "\n")
		}
	}

	return b.String()
}

// formatTagDistribution renders tag counts deterministically, sorted by
// count descending then name.
func formatTagDistribution(tags map[string]int) string {
	type tagCount struct {
		name  string
		count int
	}
	entries := make([]tagCount, 0, len(tags))
	for name, count := range tags {
		entries = append(entries, tagCount{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s (%d)", e.name, e.count)
	}
	return strings.Join(parts, ", ")
}

// ParseOutputFormat resolves a format name; empty selects the default.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatPlain:
		return FormatPlain, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}
