package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
)

// ProfileRepository persists the profile-form submissions that precede an
// eligibility check.
type ProfileRepository interface {
	CreateSchemeProfile(profile *models.SchemeProfile) error
	CreateInsuranceProfile(profile *models.InsuranceProfile) error
	CreateFinancialProfile(profile *models.FinancialProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// CreateSchemeProfile implements ProfileRepository.
func (r *profileRepository) CreateSchemeProfile(profile *models.SchemeProfile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create scheme profile: %w", err)
	}
	return nil
}

// CreateInsuranceProfile implements ProfileRepository.
func (r *profileRepository) CreateInsuranceProfile(profile *models.InsuranceProfile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create insurance profile: %w", err)
	}
	return nil
}

// CreateFinancialProfile implements ProfileRepository.
func (r *profileRepository) CreateFinancialProfile(profile *models.FinancialProfile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create financial profile: %w", err)
	}
	return nil
}
