// Package main provides the PairForge command line tool for extracting,
// analyzing, and exporting training pair datasets without running a server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Caia-Tech/pairforge/internal/analytics"
	"github.com/Caia-Tech/pairforge/internal/export"
	"github.com/Caia-Tech/pairforge/internal/extraction"
	"github.com/Caia-Tech/pairforge/internal/presentation"
	"github.com/Caia-Tech/pairforge/pkg/extractor"
	"github.com/Caia-Tech/pairforge/pkg/pair"
)

func main() {
	if len(os.Args) < 2 {
		showHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "extract":
		if len(os.Args) < 3 {
			fmt.Println("❌ Usage: pairforge extract <file|-> [format]")
			os.Exit(1)
		}
		format := ""
		if len(os.Args) > 3 {
			format = os.Args[3]
		}
		extractCommand(os.Args[2], format)

	case "analyze":
		if len(os.Args) < 3 {
			fmt.Println("❌ Usage: pairforge analyze <dataset.json> [markdown|plain|json]")
			os.Exit(1)
		}
		format := ""
		if len(os.Args) > 3 {
			format = os.Args[3]
		}
		analyzeCommand(os.Args[2], format)

	case "convert":
		if len(os.Args) < 4 {
			fmt.Println("❌ Usage: pairforge convert <dataset.json> <json|jsonl|csv>")
			os.Exit(1)
		}
		convertCommand(os.Args[2], os.Args[3])

	case "scan":
		if len(os.Args) < 3 {
			fmt.Println("❌ Usage: pairforge scan <dataset.json>")
			os.Exit(1)
		}
		scanCommand(os.Args[2])

	default:
		showHelp()
	}
}

// extractCommand runs the extraction pipeline on a file (or stdin) and
// prints the resulting pairs as JSON.
func extractCommand(path, format string) {
	text, err := readInput(path)
	if err != nil {
		fmt.Printf("❌ Failed to read input: %v\n", err)
		os.Exit(1)
	}

	result := extraction.Extract(text, format)
	fmt.Printf("🔄 Detected format: %s\n", result.Format)
	fmt.Printf("✅ Extracted %d pair(s)\n", len(result.Candidates))

	data, err := json.MarshalIndent(result.Candidates, "", "  ")
	if err != nil {
		fmt.Printf("❌ Failed to encode pairs: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func analyzeCommand(path, format string) {
	ds, err := loadDataset(path)
	if err != nil {
		fmt.Printf("❌ Failed to load dataset: %v\n", err)
		os.Exit(1)
	}

	outputFormat, err := presentation.ParseOutputFormat(format)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	renderer := presentation.NewRenderer(nil)
	rendered, err := renderer.Render(analytics.Analyze(ds), outputFormat)
	if err != nil {
		fmt.Printf("❌ Failed to render report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(rendered.Content)
}

func convertCommand(path, formatName string) {
	ds, err := loadDataset(path)
	if err != nil {
		fmt.Printf("❌ Failed to load dataset: %v\n", err)
		os.Exit(1)
	}

	format, err := export.ParseFormat(formatName)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	data, _, err := export.Export(ds, format, export.DefaultOptions())
	if err != nil {
		fmt.Printf("❌ Export failed: %v\n", err)
		os.Exit(1)
	}

	outPath := export.Filename(format)
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		fmt.Printf("❌ Failed to write %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("✅ Wrote %d pair(s) to %s\n", len(ds), outPath)
}

func scanCommand(path string) {
	ds, err := loadDataset(path)
	if err != nil {
		fmt.Printf("❌ Failed to load dataset: %v\n", err)
		os.Exit(1)
	}

	issues := analytics.ScanForIssues(ds)
	if len(issues) == 0 {
		fmt.Println("🎉 No issues found. Dataset is clean.")
		return
	}
	for _, issue := range issues {
		fmt.Printf("⚠️  [%s] %s\n", issue.Type, issue.Description)
	}
}

// readInput reads raw text from a file or stdin ("-"). Binary document
// formats go through the file extractor first.
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	text, _, err := extractor.NewEngine().Extract(context.Background(), data, ext)
	return text, err
}

func loadDataset(path string) (pair.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return export.ImportJSON(string(data))
}

func showHelp() {
	fmt.Println("PairForge - turn raw text into training pairs")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pairforge extract <file|->  [format]          Extract pairs from text, PDF, DOCX, or HTML")
	fmt.Println("  pairforge analyze <dataset.json> [format]     Render a quality report (markdown, plain, json)")
	fmt.Println("  pairforge convert <dataset.json> <format>     Convert a dataset to json, jsonl, or csv")
	fmt.Println("  pairforge scan <dataset.json>                 Scan for duplicates, short text, and empty fields")
	fmt.Println()
	fmt.Println("Formats for extract: cv, faq, conversation, json, email, generic (default: auto-detect)")
}
