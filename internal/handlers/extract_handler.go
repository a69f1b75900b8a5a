package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/api/internal/models"
	"resumatch/api/internal/repositories"
	"resumatch/api/internal/services"
)

type ExtractHandler struct {
	extractor services.ExtractorService
	documents services.DocumentService
	storage   services.StorageService
	docRepo   repositories.DocumentRepository
	indexer   services.Indexer
}

func NewExtractHandler(
	extractor services.ExtractorService,
	documents services.DocumentService,
	storage services.StorageService,
	docRepo repositories.DocumentRepository,
	indexer services.Indexer,
) *ExtractHandler {
	return &ExtractHandler{
		extractor: extractor,
		documents: documents,
		storage:   storage,
		docRepo:   docRepo,
		indexer:   indexer,
	}
}

// HandleExtractResume handles POST /resumes/extract. The resume arrives
// either as an uploaded "resume" file (PDF, DOCX or TXT) or as raw text in a
// JSON body.
func (h *ExtractHandler) HandleExtractResume(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid or missing actor id",
		})
	}

	text, err := h.resumeText(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no resume content supplied",
		})
	}

	resume, err := h.extractor.ExtractResume(c.Context(), actor, text)
	if err != nil {
		return workflowError(c, err)
	}

	h.indexer.Enqueue(resume.ID)

	return c.Status(fiber.StatusCreated).JSON(resume)
}

// HandleExtractJob handles POST /jobs/extract with a JSON {"text": ...} body.
func (h *ExtractHandler) HandleExtractJob(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid or missing actor id",
		})
	}

	var req models.ExtractRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}

	job, err := h.extractor.ExtractJob(c.Context(), actor, req.Text)
	if err != nil {
		return workflowError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// resumeText resolves the request's resume content: an uploaded file is
// saved, recorded and rendered to text, otherwise the JSON body's text field
// is used directly.
func (h *ExtractHandler) resumeText(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("resume")
	if err != nil {
		// No upload; fall back to raw text.
		var req models.ExtractRequest
		if err := c.BodyParser(&req); err != nil {
			return "", err
		}
		return req.Text, nil
	}

	filename, filePath, err := h.storage.SaveFile(file, "resume")
	if err != nil {
		return "", err
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FileType:         "resume",
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := h.docRepo.Create(&doc); err != nil {
		h.storage.DeleteFile(filename)
		return "", err
	}

	return h.documents.RenderToText(filePath)
}
