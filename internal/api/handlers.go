// Package api exposes the dataset builder over HTTP: extraction, pair
// management, analytics, import/export, and file upload.
package api

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Caia-Tech/pairforge/internal/analytics"
	"github.com/Caia-Tech/pairforge/internal/export"
	"github.com/Caia-Tech/pairforge/internal/extraction"
	"github.com/Caia-Tech/pairforge/internal/storage"
	"github.com/Caia-Tech/pairforge/pkg/extractor"
	"github.com/Caia-Tech/pairforge/pkg/pair"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// maxUploadSize caps uploaded source files at 50MB.
const maxUploadSize = 50 * 1024 * 1024

// Handlers contains the HTTP handlers for the API
type Handlers struct {
	store    storage.Store
	pipeline *extraction.Pipeline
	files    *extractor.Engine
}

// NewHandlers creates a new handlers instance
func NewHandlers(store storage.Store) *Handlers {
	return &Handlers{
		store:    store,
		pipeline: extraction.NewPipeline(),
		files:    extractor.NewEngine(),
	}
}

// Health returns the service health status
func (h *Handlers) Health(c *fiber.Ctx) error {
	if err := h.store.Health(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"service":   "pairforge",
		"version":   "0.1.0",
		"timestamp": time.Now().UTC(),
	})
}

// ExtractRequest asks for training pairs to be mined from raw text.
type ExtractRequest struct {
	Text   string `json:"text"`
	Format string `json:"format"` // optional override, empty means auto-detect
	Store  bool   `json:"store"`  // append accepted candidates to the dataset
}

// ExtractResponse carries the detected format and extracted candidates.
type ExtractResponse struct {
	Format     pair.Format      `json:"format"`
	Candidates []pair.Candidate `json:"candidates"`
	Extracted  int              `json:"extracted"`
	Stored     int              `json:"stored"`
}

// Extract runs the extraction pipeline on submitted text.
func (h *Handlers) Extract(c *fiber.Ctx) error {
	var req ExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}
	if req.Format != "" {
		if _, ok := pair.ParseFormat(req.Format); !ok {
			log.Warn().Str("format", req.Format).Msg("Unknown format override, auto-detecting")
		}
	}

	result := h.pipeline.Extract(req.Text, req.Format)

	stored := 0
	if req.Store {
		for _, cand := range result.Candidates {
			if _, err := h.store.Add(c.Context(), pair.Pair{
				Prompt:     cand.Prompt,
				Completion: cand.Completion,
				Tags:       cand.Tags,
			}); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to store extracted pairs",
					"details": err.Error(),
				})
			}
			stored++
		}
	}

	return c.JSON(ExtractResponse{
		Format:     result.Format,
		Candidates: result.Candidates,
		Extracted:  len(result.Candidates),
		Stored:     stored,
	})
}

// ListPairs returns the full dataset plus display stats.
func (h *Handlers) ListPairs(c *fiber.Ctx) error {
	ds, err := h.store.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"pairs": ds,
		"stats": pair.ComputeStats(ds),
	})
}

// GetPair returns the pair at a position.
func (h *Handlers) GetPair(c *fiber.Ctx) error {
	index, err := parseIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	p, err := h.store.Get(c.Context(), index)
	if err != nil {
		return indexError(c, err)
	}
	return c.JSON(p)
}

// AddPair appends a manually authored pair to the dataset.
func (h *Handlers) AddPair(c *fiber.Ctx) error {
	var p pair.Pair
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}
	if err := p.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	stored, err := h.store.Add(c.Context(), p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
}

// UpdatePair replaces the pair at a position.
func (h *Handlers) UpdatePair(c *fiber.Ctx) error {
	index, err := parseIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var p pair.Pair
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}
	if err := p.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	updated, err := h.store.Update(c.Context(), index, p)
	if err != nil {
		return indexError(c, err)
	}
	return c.JSON(updated)
}

// DeletePair removes the pair at a position.
func (h *Handlers) DeletePair(c *fiber.Ctx) error {
	index, err := parseIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.store.Delete(c.Context(), index); err != nil {
		return indexError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": index})
}

// ClearPairs drops the whole dataset.
func (h *Handlers) ClearPairs(c *fiber.Ctx) error {
	if err := h.store.Clear(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "All data cleared successfully"})
}

// DedupePairs removes exact duplicates from the stored dataset.
func (h *Handlers) DedupePairs(c *fiber.Ctx) error {
	ds, err := h.store.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	deduped := pair.RemoveExactDuplicates(ds)
	if err := h.store.Replace(c.Context(), deduped); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"removed":   len(ds) - len(deduped),
		"remaining": len(deduped),
	})
}

// ValidatePairs drops pairs with empty fields from the stored dataset.
func (h *Handlers) ValidatePairs(c *fiber.Ctx) error {
	ds, err := h.store.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	valid := pair.FilterComplete(ds)
	if err := h.store.Replace(c.Context(), valid); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"removed":   len(ds) - len(valid),
		"remaining": len(valid),
	})
}

// Analyze returns the full analytics report. An empty dataset yields a
// null report with an explanatory message, not an error.
func (h *Handlers) Analyze(c *fiber.Ctx) error {
	ds, err := h.store.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	report := analytics.Analyze(ds)
	if report == nil {
		return c.JSON(fiber.Map{
			"report":  nil,
			"message": "No data to analyze. Add some training pairs first.",
		})
	}
	return c.JSON(fiber.Map{"report": report})
}

// CleaningScan reports duplicate, short-text, and empty-field issues.
func (h *Handlers) CleaningScan(c *fiber.Ctx) error {
	ds, err := h.store.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	issues := analytics.ScanForIssues(ds)
	return c.JSON(fiber.Map{
		"issues": issues,
		"clean":  len(issues) == 0,
	})
}

// ExportDataset streams the dataset as a downloadable file.
func (h *Handlers) ExportDataset(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	opts := export.Options{
		RemoveDuplicates: c.QueryBool("remove_duplicates", false),
		Validate:         c.QueryBool("validate", true),
	}

	ds, err := h.store.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	data, mime, err := export.Export(ds, format, opts)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename(format)))
	return c.Send(data)
}

// ImportRequest carries dataset content in one of the interchange formats.
type ImportRequest struct {
	Format  string `json:"format"` // json, csv, text
	Content string `json:"content"`
}

// ImportDataset parses submitted content and appends the resulting pairs.
func (h *Handlers) ImportDataset(c *fiber.Ctx) error {
	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	var (
		ds  pair.Dataset
		err error
	)
	switch strings.ToLower(req.Format) {
	case "json", "jsonl", "":
		ds, err = export.ImportJSON(req.Content)
	case "csv":
		ds, err = export.ImportCSV(req.Content)
	case "text":
		ds = export.ImportTextBlocks(req.Content)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("unsupported import format: %s", req.Format),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	imported := 0
	for _, p := range ds {
		if _, err := h.store.Add(c.Context(), p); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		imported++
	}
	return c.JSON(fiber.Map{"imported": imported})
}

// UploadFile accepts a source document, extracts its text, mines it for
// pairs, and appends them to the dataset.
func (h *Handlers) UploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "No file uploaded or invalid file format",
			"details": err.Error(),
		})
	}
	if file.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large: %d bytes. Maximum size is %d bytes (50MB)", file.Size, maxUploadSize),
		})
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if ext == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File must have a valid extension",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to process uploaded file",
			"details": err.Error(),
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to read file content",
			"details": err.Error(),
		})
	}

	text, metadata, err := h.files.Extract(c.Context(), content, ext)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "Failed to extract text from file",
			"details": err.Error(),
		})
	}

	result := h.pipeline.Extract(text, c.FormValue("format"))

	stored := 0
	for _, cand := range result.Candidates {
		if _, err := h.store.Add(c.Context(), pair.Pair{
			Prompt:     cand.Prompt,
			Completion: cand.Completion,
			Tags:       cand.Tags,
		}); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		stored++
	}

	log.Info().
		Str("filename", file.Filename).
		Str("file_type", ext).
		Int64("size", file.Size).
		Str("format", string(result.Format)).
		Int("pairs", stored).
		Msg("File processed into training pairs")

	return c.JSON(fiber.Map{
		"filename":  file.Filename,
		"file_type": ext,
		"size":      file.Size,
		"format":    result.Format,
		"extracted": len(result.Candidates),
		"stored":    stored,
		"metadata":  metadata,
	})
}

// SeedData loads the starter pairs into an empty dataset.
func (h *Handlers) SeedData(c *fiber.Ctx) error {
	n, err := storage.SeedSampleData(c.Context(), h.store)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if n == 0 {
		return c.JSON(fiber.Map{"seeded": 0, "message": "Dataset already has data; seed skipped"})
	}
	return c.JSON(fiber.Map{
		"seeded":  n,
		"message": fmt.Sprintf("Loaded %d sample training pairs!", n),
	})
}

func parseIndex(c *fiber.Ctx) (int, error) {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return 0, fmt.Errorf("invalid pair index: %s", c.Params("index"))
	}
	return index, nil
}

func indexError(c *fiber.Ctx, err error) error {
	if errors.Is(err, storage.ErrIndexOutOfRange) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
