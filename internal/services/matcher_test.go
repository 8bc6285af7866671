package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
)

type fakeCatalog struct {
	records       []models.ProgramRecord
	err           error
	categoryCalls int
	lastCategory  string
	inserted      []interface{}
}

func (f *fakeCatalog) FindByCategory(ctx context.Context, programType models.ProgramType, category string) ([]models.ProgramRecord, error) {
	f.categoryCalls++
	f.lastCategory = category
	return f.records, f.err
}

func (f *fakeCatalog) FindByCategoryExact(ctx context.Context, programType models.ProgramType, category string) ([]models.ProgramRecord, error) {
	return f.records, f.err
}

func (f *fakeCatalog) FindBySlug(ctx context.Context, programType models.ProgramType, slug string) (*models.ProgramRecord, error) {
	if len(f.records) == 0 {
		return nil, f.err
	}
	return &f.records[0], f.err
}

func (f *fakeCatalog) FindByID(ctx context.Context, programType models.ProgramType, id string) (*models.ProgramRecord, error) {
	return f.FindBySlug(ctx, programType, id)
}

func (f *fakeCatalog) Insert(ctx context.Context, programType models.ProgramType, doc interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, doc)
	return nil
}

func TestEligibleSchemesRanksDescending(t *testing.T) {
	catalog := &fakeCatalog{
		records: []models.ProgramRecord{
			models.NewProgramRecord(bson.M{
				"scheme_name": "Tenant Only",
				"criteria":    bson.M{"land_owner_type": "Tenant"},
			}),
			models.NewProgramRecord(bson.M{
				"scheme_name": "Open To All",
				"criteria":    bson.M{"state": primitive.A{"All"}},
			}),
		},
	}
	m := NewMatcherService(catalog, NewEvaluatorService())

	out, err := m.EligibleSchemes(context.Background(), models.EligibleSchemesRequest{
		Category:      "agriculture",
		State:         "Maharashtra",
		LandOwnership: "Owner",
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Open To All", out[0]["scheme_name"])
	assert.Equal(t, 100, out[0]["eligibilityPercentage"])
	assert.Equal(t, "Tenant Only", out[1]["scheme_name"])
	assert.Equal(t, 0, out[1]["eligibilityPercentage"])
	assert.Equal(t, "agriculture", catalog.lastCategory)
}

func TestEligibleSchemesNormalizesProfile(t *testing.T) {
	catalog := &fakeCatalog{
		records: []models.ProgramRecord{
			models.NewProgramRecord(bson.M{
				"scheme_name": "Owner Scheme",
				"criteria":    bson.M{"land_owner_type": "Owner"},
			}),
		},
	}
	m := NewMatcherService(catalog, NewEvaluatorService())

	// Localized land ownership is canonicalized before evaluation.
	out, err := m.EligibleSchemes(context.Background(), models.EligibleSchemesRequest{
		Category:      "agriculture",
		LandOwnership: "मालिक",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 100, out[0]["eligibilityPercentage"])
}

func TestEligibleSchemesPropagatesCatalogError(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("mongo down")}
	m := NewMatcherService(catalog, NewEvaluatorService())

	_, err := m.EligibleSchemes(context.Background(), models.EligibleSchemesRequest{Category: "agriculture"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo down")
}

func TestEligibleInsuranceEmptyProfileShortCircuits(t *testing.T) {
	catalog := &fakeCatalog{}
	m := NewMatcherService(catalog, NewEvaluatorService())

	out, err := m.EligibleInsurance(context.Background(), models.EligibleInsuranceRequest{
		Category: "crop",
	})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	// The catalog must not be queried for an unusable profile.
	assert.Zero(t, catalog.categoryCalls)

	// Numeric zero is falsy in the form contract, so an income of 0 alone
	// still short-circuits.
	out, err = m.EligibleInsurance(context.Background(), models.EligibleInsuranceRequest{
		Category:     "crop",
		AnnualIncome: 0.0,
	})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, catalog.categoryCalls)
}

func TestEligibleInsuranceShortCircuitUsesRawFields(t *testing.T) {
	catalog := &fakeCatalog{
		records: []models.ProgramRecord{
			models.NewProgramRecord(bson.M{
				"scheme_name": "Crop Cover",
				"criteria":    bson.M{"LandSize": "2-5"},
			}),
		},
	}
	m := NewMatcherService(catalog, NewEvaluatorService())

	// A land-size string with no digits coerces to nothing, but it is still
	// raw input: the catalog is queried and the criterion reported missing.
	out, err := m.EligibleInsurance(context.Background(), models.EligibleInsuranceRequest{
		Category: "crop",
		LandSize: "unknown",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1, catalog.categoryCalls)
	assert.Equal(t, 0, out[0]["eligibilityPercentage"])
}

func TestEligibleInsuranceParsesFreeTextLandSize(t *testing.T) {
	catalog := &fakeCatalog{
		records: []models.ProgramRecord{
			models.NewProgramRecord(bson.M{
				"scheme_name": "Small Holding Cover",
				"criteria":    bson.M{"LandSize": "2-5"},
			}),
		},
	}
	m := NewMatcherService(catalog, NewEvaluatorService())

	out, err := m.EligibleInsurance(context.Background(), models.EligibleInsuranceRequest{
		Category: "crop",
		LandSize: "3 acres",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 100, out[0]["eligibilityPercentage"])
	assert.Equal(t, 1, catalog.categoryCalls)
}

func TestEligibleFinanceRanks(t *testing.T) {
	catalog := &fakeCatalog{
		records: []models.ProgramRecord{
			models.NewProgramRecord(bson.M{
				"scheme_name": "Joint Support",
				"criteria":    bson.M{"land_owner_type": "Owner/Tenant"},
			}),
		},
	}
	m := NewMatcherService(catalog, NewEvaluatorService())

	out, err := m.EligibleFinance(context.Background(), models.EligibleFinanceRequest{
		Category:      "credit",
		LandOwnership: "Tenant",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 100, out[0]["eligibilityPercentage"])
}

func TestRankAllStableOnTies(t *testing.T) {
	records := []models.ProgramRecord{
		models.NewProgramRecord(bson.M{"scheme_name": "First", "criteria": bson.M{"state": primitive.A{"All"}}}),
		models.NewProgramRecord(bson.M{"scheme_name": "Second", "criteria": bson.M{"state": primitive.A{"All"}}}),
		models.NewProgramRecord(bson.M{"scheme_name": "Third", "criteria": bson.M{"state": primitive.A{"All"}}}),
	}
	m := NewMatcherService(&fakeCatalog{}, NewEvaluatorService())

	out := m.RankAll(models.ProgramSchemes, baseProfile(), records)
	require.Len(t, out, 3)

	// Equal percentages keep catalog order.
	assert.Equal(t, "First", out[0]["scheme_name"])
	assert.Equal(t, "Second", out[1]["scheme_name"])
	assert.Equal(t, "Third", out[2]["scheme_name"])
}

func TestRankAllAttachesVerdictFields(t *testing.T) {
	records := []models.ProgramRecord{
		models.NewProgramRecord(bson.M{
			"scheme_name": "Partial",
			"criteria": bson.M{
				"state":           primitive.A{"All"},
				"land_owner_type": "Tenant",
			},
		}),
	}
	m := NewMatcherService(&fakeCatalog{}, NewEvaluatorService())

	out := m.RankAll(models.ProgramSchemes, baseProfile(), records)
	require.Len(t, out, 1)

	assert.Equal(t, 50, out[0]["eligibilityPercentage"])
	assert.Contains(t, out[0], "matchedCriteria")
	assert.Contains(t, out[0], "notMatchedCriteria")
	assert.Contains(t, out[0], "missingCriteria")
}
