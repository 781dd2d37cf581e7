package extraction

import (
	"github.com/Caia-Tech/pairforge/pkg/logging"
	"github.com/Caia-Tech/pairforge/pkg/pair"
)

// Strategy turns normalized text into raw extraction candidates. Strategies
// are pure and never fail: unparseable input yields an empty slice.
type Strategy func(text string) []pair.Candidate

// strategies dispatches on the classified format. Every format label has a
// handler, so dispatch is total.
var strategies = map[pair.Format]Strategy{
	pair.FormatCV:           ExtractCV,
	pair.FormatFAQ:          ExtractFAQ,
	pair.FormatConversation: ExtractConversation,
	pair.FormatJSON:         ExtractJSON,
	pair.FormatEmail:        ExtractEmail,
	pair.FormatGeneric:      ExtractGeneric,
}

// Pipeline runs normalize → classify → strategy → dedupe.
type Pipeline struct {
	normalizer *Normalizer
}

// NewPipeline creates a pipeline with the default normalizer.
func NewPipeline() *Pipeline {
	return &Pipeline{normalizer: NewNormalizer()}
}

// Result carries the outcome of one extraction run.
type Result struct {
	Format     pair.Format      `json:"format"`
	Candidates []pair.Candidate `json:"candidates"`
}

// Extract converts raw text into deduplicated candidates. An empty override
// means auto-detect; an unrecognized override also falls back to detection.
func (p *Pipeline) Extract(raw string, override string) Result {
	text := p.normalizer.Normalize(raw)

	format, forced := pair.ParseFormat(override)
	if !forced {
		format = Classify(text)
	}

	candidates := Deduplicate(strategies[format](text))

	logger := logging.GetExtractionLogger(string(format), "pipeline")
	logger.Debug().
		Bool("format_forced", forced).
		Int("input_length", len(raw)).
		Int("candidates", len(candidates)).
		Msg("Extraction run completed")

	return Result{Format: format, Candidates: candidates}
}

// Extract runs a one-off extraction with the default pipeline.
func Extract(raw string, override string) Result {
	return NewPipeline().Extract(raw, override)
}
