package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/services"
)

// IngestHandler accepts an uploaded scheme document and/or pasted text and
// feeds it through the extraction bridge.
type IngestHandler struct {
	extractor      services.ExtractorService
	docParser      services.DocumentParserService
	storageService services.StorageService
	maxFileSize    int64
}

func NewIngestHandler(
	extractor services.ExtractorService,
	docParser services.DocumentParserService,
	storageService services.StorageService,
	maxFileSize int64,
) *IngestHandler {
	return &IngestHandler{
		extractor:      extractor,
		docParser:      docParser,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleAddScheme handles POST /add-scheme.
func (h *IngestHandler) HandleAddScheme(c *fiber.Ctx) error {
	text := c.FormValue("text")

	if file, err := c.FormFile("file"); err == nil && file != nil {
		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "File too large",
			})
		}

		filename, filePath, err := h.storageService.SaveDocument(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		defer h.storageService.DeleteDocument(filename)

		fileText, err := h.docParser.ExtractText(filePath)
		if err != nil {
			log.Printf("❌ Failed to extract document text: %v\n", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Could not extract text from file",
			})
		}

		text += "\n" + fileText
	}

	if strings.TrimSpace(text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "No input",
		})
	}

	result, err := h.extractor.ExtractAndStore(c.Context(), text)
	if err != nil {
		log.Printf("❌ Extraction failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "AI failed",
		})
	}

	if !result.OK {
		return c.JSON(fiber.Map{
			"success": false,
			"raw":     result.Raw,
			"message": result.Message,
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": result.Record})
}
