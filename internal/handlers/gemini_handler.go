package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-enhancer/internal/services"
)

type GeminiAnalyzeHandler struct {
	extractor   services.ExtractorService
	analyzer    services.AnalyzerService
	maxFileSize int64
}

func NewGeminiAnalyzeHandler(
	extractor services.ExtractorService,
	analyzer services.AnalyzerService,
	maxFileSize int64,
) *GeminiAnalyzeHandler {
	return &GeminiAnalyzeHandler{
		extractor:   extractor,
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
	}
}

// HandleGeminiAnalyze handles POST /gemini-analyze: the three-step Gemini
// analysis of the uploaded resume against the job description.
func (h *GeminiAnalyzeHandler) HandleGeminiAnalyze(c *fiber.Ctx) error {
	analysisID := uuid.New()

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	jobDescription := c.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	if !h.extractor.SupportedExtension(file.Filename, ".pdf", ".docx", ".txt") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid file type. Please upload a PDF, DOCX or TXT file",
		})
	}

	log.Printf("📄 [%s] extracting text from %s\n", analysisID, file.Filename)
	resumeText, err := h.extractor.ExtractText(file)
	if err != nil {
		// Empty or unreadable documents are rejected before contacting Gemini.
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("could not extract text: %v", err),
		})
	}

	log.Printf("🤖 [%s] starting Gemini analysis\n", analysisID)
	result, err := h.analyzer.Analyze(c.UserContext(), resumeText, jobDescription)
	if err != nil {
		return h.handleAnalyzerError(c, analysisID, err)
	}

	log.Printf("✅ [%s] Gemini analysis completed\n", analysisID)
	return c.JSON(result)
}

func (h *GeminiAnalyzeHandler) handleAnalyzerError(c *fiber.Ctx, analysisID uuid.UUID, err error) error {
	var upstreamErr *services.UpstreamError
	if errors.As(err, &upstreamErr) {
		log.Printf("❌ [%s] upstream failure: %v\n", analysisID, upstreamErr)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": upstreamErr.Error(),
		})
	}

	var parseErr *services.ResponseParseError
	if errors.As(err, &parseErr) {
		// Detail may contain the raw upstream body; log it, never return it.
		log.Printf("❌ [%s] response parse failure: %s\n", analysisID, parseErr.Detail)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to parse the analysis response. Please try again later",
		})
	}

	log.Printf("❌ [%s] analysis failed: %v\n", analysisID, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "analysis failed due to an internal error",
	})
}
