package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
	"github.com/codebuddy1234/Kisan-Sahay1/internal/repositories"
)

// CatalogHandler serves direct catalog lookups: single records and plain
// category listings. No evaluation happens here.
type CatalogHandler struct {
	catalog repositories.CatalogRepository
}

func NewCatalogHandler(catalog repositories.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// HandleSingleScheme handles GET /single-scheme/:slug.
func (h *CatalogHandler) HandleSingleScheme(c *fiber.Ctx) error {
	rec, err := h.catalog.FindBySlug(c.Context(), models.ProgramSchemes, c.Params("slug"))
	if err != nil {
		log.Printf("❌ Failed to fetch scheme: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching Scheme",
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": recordFields(rec)})
}

// HandleSingleInsurance handles GET /single-insurance/:id.
func (h *CatalogHandler) HandleSingleInsurance(c *fiber.Ctx) error {
	rec, err := h.catalog.FindByID(c.Context(), models.ProgramInsurance, c.Params("id"))
	if err != nil {
		log.Printf("❌ Failed to fetch insurance: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching insurance",
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": recordFields(rec)})
}

// HandleSingleFinance handles GET /single-finance/:slug.
func (h *CatalogHandler) HandleSingleFinance(c *fiber.Ctx) error {
	rec, err := h.catalog.FindBySlug(c.Context(), models.ProgramFinance, c.Params("slug"))
	if err != nil {
		log.Printf("❌ Failed to fetch finance support: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching finance support",
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": recordFields(rec)})
}

// HandleSchemesByCategory handles GET /schemes/:category (exact match, no
// eligibility evaluation).
func (h *CatalogHandler) HandleSchemesByCategory(c *fiber.Ctx) error {
	records, err := h.catalog.FindByCategoryExact(c.Context(), models.ProgramSchemes, c.Params("category"))
	if err != nil {
		log.Printf("❌ Failed to fetch schemes: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching schemes",
		})
	}

	data := make([]bson.M, 0, len(records))
	for _, rec := range records {
		data = append(data, rec.Fields)
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func recordFields(rec *models.ProgramRecord) interface{} {
	if rec == nil {
		return nil
	}
	return rec.Fields
}
