package services

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
	"github.com/codebuddy1234/Kisan-Sahay1/internal/repositories"
)

// MatcherService orchestrates one eligibility request: normalize the profile,
// fetch candidate records for the category, evaluate each and rank the result.
// Everything is request-scoped; nothing is persisted.
type MatcherService interface {
	EligibleSchemes(ctx context.Context, req models.EligibleSchemesRequest) ([]bson.M, error)
	EligibleInsurance(ctx context.Context, req models.EligibleInsuranceRequest) ([]bson.M, error)
	EligibleFinance(ctx context.Context, req models.EligibleFinanceRequest) ([]bson.M, error)
	RankAll(programType models.ProgramType, profile models.UserProfile, records []models.ProgramRecord) []bson.M
}

type matcherService struct {
	catalog   repositories.CatalogRepository
	evaluator EvaluatorService
}

func NewMatcherService(catalog repositories.CatalogRepository, evaluator EvaluatorService) MatcherService {
	return &matcherService{
		catalog:   catalog,
		evaluator: evaluator,
	}
}

// EligibleSchemes implements MatcherService.
func (m *matcherService) EligibleSchemes(ctx context.Context, req models.EligibleSchemesRequest) ([]bson.M, error) {
	profile := models.UserProfile{
		State:         Normalize(req.State, FieldState),
		LandOwnership: Normalize(req.LandOwnership, FieldLandOwnership),
		AnnualIncome:  CoerceNumber(req.AnnualIncome),
		LandSize:      CoerceNumber(req.LandSize),
		Age:           CoerceNumber(req.Age),
	}

	records, err := m.catalog.FindByCategory(ctx, models.ProgramSchemes, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scheme candidates: %w", err)
	}

	return m.RankAll(models.ProgramSchemes, profile, records), nil
}

// EligibleInsurance implements MatcherService. A request with no usable raw
// input short-circuits to an empty result; no meaningful evaluation is
// possible and the catalog is not queried.
func (m *matcherService) EligibleInsurance(ctx context.Context, req models.EligibleInsuranceRequest) ([]bson.M, error) {
	if req.Empty() {
		return []bson.M{}, nil
	}

	profile := models.UserProfile{
		State:        Normalize(req.State, FieldState),
		CropType:     Normalize(req.CropType, FieldCropType),
		AnnualIncome: CoerceNumber(req.AnnualIncome),
		LandSize:     ExtractFirstNumber(req.LandSize),
	}

	records, err := m.catalog.FindByCategory(ctx, models.ProgramInsurance, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch insurance candidates: %w", err)
	}

	return m.RankAll(models.ProgramInsurance, profile, records), nil
}

// EligibleFinance implements MatcherService.
func (m *matcherService) EligibleFinance(ctx context.Context, req models.EligibleFinanceRequest) ([]bson.M, error) {
	profile := models.UserProfile{
		State:         Normalize(req.State, FieldState),
		LandOwnership: Normalize(req.LandOwnership, FieldLandOwnership),
		AnnualIncome:  CoerceNumber(req.AnnualIncome),
		LandSize:      CoerceNumber(req.LandSize),
		Age:           CoerceNumber(req.Age),
	}

	records, err := m.catalog.FindByCategory(ctx, models.ProgramFinance, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch financial support candidates: %w", err)
	}

	return m.RankAll(models.ProgramFinance, profile, records), nil
}

// RankAll evaluates every candidate and sorts by descending eligibility
// percentage. The sort is stable so ties keep the catalog's original order;
// source records are not mutated.
func (m *matcherService) RankAll(programType models.ProgramType, profile models.UserProfile, records []models.ProgramRecord) []bson.M {
	type scored struct {
		doc        bson.M
		percentage int
	}

	evaluated := make([]scored, 0, len(records))
	for _, rec := range records {
		verdict := m.evaluator.Evaluate(programType, profile, rec)
		evaluated = append(evaluated, scored{
			doc:        verdict.Attach(rec),
			percentage: verdict.EligibilityPercentage,
		})
	}

	sort.SliceStable(evaluated, func(i, j int) bool {
		return evaluated[i].percentage > evaluated[j].percentage
	})

	out := make([]bson.M, len(evaluated))
	for i, s := range evaluated {
		out[i] = s.doc
	}
	return out
}
