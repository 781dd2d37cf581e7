package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// DOCXExtractor handles DOCX file extraction
type DOCXExtractor struct{}

// Extract extracts text and metadata from DOCX content
func (d *DOCXExtractor) Extract(ctx context.Context, content []byte) (string, map[string]string, error) {
	metadata := map[string]string{
		"type": "docx",
		"size": fmt.Sprintf("%d", len(content)),
	}

	if len(content) < 4 {
		return "", metadata, &ExtractionError{
			Message: "file too small to be a valid DOCX document",
		}
	}

	// DOCX files are ZIP archives, check for the ZIP signature
	if content[0] != 0x50 || content[1] != 0x4B {
		return "", metadata, &ExtractionError{
			Message: fmt.Sprintf("not a valid DOCX file - missing ZIP signature: %x", content[:4]),
		}
	}

	reader := bytes.NewReader(content)
	doc, err := docx.ReadDocxFromMemory(reader, int64(len(content)))
	if err != nil {
		return "", metadata, &ExtractionError{
			Message: fmt.Sprintf("failed to parse DOCX: %v", err),
		}
	}

	text := doc.Editable().GetContent()
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	metadata["text_length"] = fmt.Sprintf("%d", len(text))
	metadata["word_count"] = fmt.Sprintf("%d", len(strings.Fields(text)))
	metadata["line_count"] = fmt.Sprintf("%d", strings.Count(text, "\n")+1)

	if text == "" {
		return "", metadata, &ExtractionError{
			Message: "DOCX document contains no extractable text",
		}
	}

	metadata["status"] = "success"
	return text, metadata, nil
}
