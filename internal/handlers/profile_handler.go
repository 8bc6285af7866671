package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
	"github.com/codebuddy1234/Kisan-Sahay1/internal/repositories"
	"github.com/codebuddy1234/Kisan-Sahay1/internal/services"
)

// ProfileHandler stores the profile-form submissions. Values are normalized
// to canonical tokens before persistence so later queries see English terms.
type ProfileHandler struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileHandler(profileRepo repositories.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

// HandleSchemeProfile handles POST /userSchemesData.
func (h *ProfileHandler) HandleSchemeProfile(c *fiber.Ctx) error {
	var req models.SchemeProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Failed to store Data",
		})
	}

	profile := &models.SchemeProfile{
		ID:            uuid.New(),
		State:         services.Normalize(req.State, services.FieldState),
		LandOwnership: services.Normalize(req.LandOwnership, services.FieldLandOwnership),
		AnnualIncome:  fieldToString(req.AnnualIncome),
		Age:           fieldToString(req.Age),
		CreatedAt:     time.Now(),
	}

	if err := h.profileRepo.CreateSchemeProfile(profile); err != nil {
		log.Printf("❌ Failed to store scheme profile: %v\n", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Failed to store Data",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Successfully Stored Data",
		"userId":  profile.ID.String(),
	})
}

// HandleInsuranceProfile handles POST /userInsuranceData.
func (h *ProfileHandler) HandleInsuranceProfile(c *fiber.Ctx) error {
	var req models.InsuranceProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Error saving Insurance Data",
		})
	}

	profile := &models.InsuranceProfile{
		ID:            uuid.New(),
		State:         services.Normalize(req.State, services.FieldState),
		LandOwnership: services.Normalize(req.LandOwnership, services.FieldLandOwnership),
		LandSize:      req.LandSize,
		AnnualIncome:  fieldToString(req.AnnualIncome),
		CropType:      services.Normalize(req.CropType, services.FieldCropType),
		CreatedAt:     time.Now(),
	}

	if err := h.profileRepo.CreateInsuranceProfile(profile); err != nil {
		log.Printf("❌ Failed to store insurance profile: %v\n", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Error saving Insurance Data",
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Successfully Saved Data"})
}

// HandleFinancialProfile handles POST /userFinancialData.
func (h *ProfileHandler) HandleFinancialProfile(c *fiber.Ctx) error {
	var req models.FinancialProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Error in saving details!",
		})
	}

	profile := &models.FinancialProfile{
		ID:            uuid.New(),
		State:         services.Normalize(req.State, services.FieldState),
		LandOwnership: services.Normalize(req.LandOwnership, services.FieldLandOwnership),
		LandSize:      fieldToString(req.LandSize),
		AnnualIncome:  fieldToString(req.AnnualIncome),
		Age:           fieldToString(req.Age),
		CreatedAt:     time.Now(),
	}

	if err := h.profileRepo.CreateFinancialProfile(profile); err != nil {
		log.Printf("❌ Failed to store financial profile: %v\n", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Error in saving details!",
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Profile Created"})
}

// fieldToString keeps whatever the form sent, number or text, as text.
func fieldToString(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return fmt.Sprintf("%g", n)
	default:
		return fmt.Sprintf("%v", n)
	}
}
