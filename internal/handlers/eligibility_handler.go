package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
	"github.com/codebuddy1234/Kisan-Sahay1/internal/services"
)

// EligibilityHandler serves the three eligibility-matching endpoints. They
// always answer with a success flag and a data payload; malformed user input
// is coerced, never rejected.
type EligibilityHandler struct {
	matcher services.MatcherService
}

func NewEligibilityHandler(matcher services.MatcherService) *EligibilityHandler {
	return &EligibilityHandler{matcher: matcher}
}

// HandleEligibleSchemes handles POST /eligible-Schemes.
func (h *EligibilityHandler) HandleEligibleSchemes(c *fiber.Ctx) error {
	var req models.EligibleSchemesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request payload",
		})
	}

	data, err := h.matcher.EligibleSchemes(c.Context(), req)
	if err != nil {
		log.Printf("❌ Scheme eligibility failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": data})
}

// HandleEligibleInsurance handles POST /eligible-insurance.
func (h *EligibilityHandler) HandleEligibleInsurance(c *fiber.Ctx) error {
	var req models.EligibleInsuranceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request payload",
		})
	}

	data, err := h.matcher.EligibleInsurance(c.Context(), req)
	if err != nil {
		log.Printf("❌ Insurance eligibility failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error calculating eligibility",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": data})
}

// HandleEligibleFinance handles POST /eligible-financial-support.
func (h *EligibilityHandler) HandleEligibleFinance(c *fiber.Ctx) error {
	var req models.EligibleFinanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request payload",
		})
	}

	data, err := h.matcher.EligibleFinance(c.Context(), req)
	if err != nil {
		log.Printf("❌ Financial support eligibility failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error calculating financial support eligibility",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": data})
}
