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

type AnalyzeHandler struct {
	extractor   services.ExtractorService
	matcher     services.MatcherService
	maxFileSize int64
}

func NewAnalyzeHandler(
	extractor services.ExtractorService,
	matcher services.MatcherService,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		extractor:   extractor,
		matcher:     matcher,
		maxFileSize: maxFileSize,
	}
}

// HandleAnalyze handles POST /analyze: lexical TF-IDF match between the
// uploaded resume and the job description.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
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

	// Reject unsupported extensions before any parsing is attempted.
	if !h.extractor.SupportedExtension(file.Filename, ".pdf", ".docx") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid file type. Please upload a PDF or DOCX file",
		})
	}

	log.Printf("📄 [%s] extracting text from %s\n", analysisID, file.Filename)
	resumeText, err := h.extractor.ExtractText(file)
	if err != nil {
		var invalidErr *services.InvalidInputError
		if errors.As(err, &invalidErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": invalidErr.Message,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("error reading file: %v", err),
		})
	}

	result, err := h.matcher.Score(resumeText, jobDescription)
	if err != nil {
		log.Printf("❌ [%s] lexical match failed: %v\n", analysisID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Printf("✅ [%s] lexical match completed: score %.2f\n", analysisID, result.MatchScore)
	return c.JSON(result)
}
