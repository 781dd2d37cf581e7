// Package extractor pulls plain text out of uploaded source files so the
// extraction pipeline can mine them for training pairs.
package extractor

import (
	"context"
	"fmt"
	"strings"
)

// ExtractionError is a non-retryable file processing error: the content
// itself is unusable, so retrying the same bytes cannot help.
type ExtractionError struct {
	Message string
}

func (e *ExtractionError) Error() string {
	return e.Message
}

// Extractor converts one file format into plain text plus metadata.
type Extractor interface {
	Extract(ctx context.Context, content []byte) (string, map[string]string, error)
}

// Engine dispatches on file type. Unknown types fall back to plain text,
// which is the right call for the many text-like extensions in the wild.
type Engine struct {
	extractors map[string]Extractor
}

func NewEngine() *Engine {
	text := &TextExtractor{}
	return &Engine{
		extractors: map[string]Extractor{
			"text": text,
			"txt":  text,
			"md":   text,
			"csv":  text,
			"json": text,
			"html": NewHTMLExtractor(),
			"htm":  NewHTMLExtractor(),
			"pdf":  &PDFExtractor{MaxPages: 1000},
			"docx": &DOCXExtractor{},
			"doc":  &DOCXExtractor{}, // treat .doc as .docx (best effort)
		},
	}
}

// SupportedTypes lists the file types the engine handles natively.
func (e *Engine) SupportedTypes() []string {
	types := make([]string, 0, len(e.extractors))
	for t := range e.extractors {
		types = append(types, t)
	}
	return types
}

func (e *Engine) Extract(ctx context.Context, content []byte, contentType string) (string, map[string]string, error) {
	extractor, ok := e.extractors[strings.ToLower(strings.TrimPrefix(contentType, "."))]
	if !ok {
		extractor = e.extractors["text"]
	}

	return extractor.Extract(ctx, content)
}

// TextExtractor handles plain text files and text-like formats
type TextExtractor struct{}

func (t *TextExtractor) Extract(ctx context.Context, content []byte) (string, map[string]string, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	metadata := map[string]string{
		"type":       "text",
		"characters": fmt.Sprintf("%d", len(text)),
		"lines":      fmt.Sprintf("%d", strings.Count(text, "\n")+1),
	}
	return text, metadata, nil
}
