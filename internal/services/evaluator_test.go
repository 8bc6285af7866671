package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
)

func schemeRecord(criteria bson.M) models.ProgramRecord {
	return models.NewProgramRecord(bson.M{
		"scheme_name":    "Test Scheme",
		"schemeCategory": "agriculture",
		"criteria":       criteria,
	})
}

func baseProfile() models.UserProfile {
	return models.UserProfile{
		State:         "Maharashtra",
		LandOwnership: "Owner",
		AnnualIncome:  models.Num(50000),
		LandSize:      models.Num(2),
		Age:           models.Num(40),
	}
}

func TestEvaluateSchemeFullMatch(t *testing.T) {
	e := NewEvaluatorService()

	rec := schemeRecord(bson.M{
		"state":                   primitive.A{"All"},
		"annual_income_limit_min": 0,
		"annual_income_limit_max": 100000,
		"land_owner_type":         "Owner",
	})

	v := e.Evaluate(models.ProgramSchemes, baseProfile(), rec)

	assert.Equal(t, 100, v.EligibilityPercentage)
	assert.Len(t, v.Matched, 3)
	assert.Empty(t, v.NotMatched)
	assert.Empty(t, v.Missing)

	// Evaluation order is fixed: state, land ownership, income.
	assert.Equal(t, "State", v.Matched[0].Field)
	assert.Equal(t, "Land Ownership", v.Matched[1].Field)
	assert.Equal(t, "Income", v.Matched[2].Field)
}

func TestEvaluateSchemeSingleFailure(t *testing.T) {
	e := NewEvaluatorService()

	rec := schemeRecord(bson.M{
		"state":                   primitive.A{"All"},
		"annual_income_limit_min": 0,
		"annual_income_limit_max": 100000,
		"land_owner_type":         "Tenant",
	})

	v := e.Evaluate(models.ProgramSchemes, baseProfile(), rec)

	// 2 of 3 → round(66.67) = 67.
	assert.Equal(t, 67, v.EligibilityPercentage)
	require.Len(t, v.NotMatched, 1)
	assert.Equal(t, "Land Ownership", v.NotMatched[0].Field)
	assert.Equal(t, "Tenant", v.NotMatched[0].Required)
	// Schemes do not record the user's value on failures.
	assert.Nil(t, v.NotMatched[0].User)
	assert.Empty(t, v.Missing)
}

func TestEvaluateSchemeLandOwnershipIsExact(t *testing.T) {
	e := NewEvaluatorService()

	profile := baseProfile()
	profile.LandOwnership = "Owner"

	// Exact comparison: a containing string is not a match for schemes.
	rec := schemeRecord(bson.M{"land_owner_type": "Owner or Tenant"})
	v := e.Evaluate(models.ProgramSchemes, profile, rec)
	assert.Equal(t, 0, v.EligibilityPercentage)

	// Case differences are forgiven.
	rec = schemeRecord(bson.M{"land_owner_type": "owner"})
	v = e.Evaluate(models.ProgramSchemes, profile, rec)
	assert.Equal(t, 100, v.EligibilityPercentage)
}

func TestEvaluateFinanceLandOwnershipIsSubstring(t *testing.T) {
	e := NewEvaluatorService()

	profile := baseProfile()
	profile.LandOwnership = "Tenant"

	rec := models.NewProgramRecord(bson.M{
		"criteria": bson.M{"land_owner_type": "Owner or Tenant"},
	})

	v := e.Evaluate(models.ProgramFinance, profile, rec)
	assert.Equal(t, 100, v.EligibilityPercentage)
}

func TestEvaluateNoCriteriaScoresZero(t *testing.T) {
	e := NewEvaluatorService()

	v := e.Evaluate(models.ProgramSchemes, baseProfile(), schemeRecord(bson.M{}))
	assert.Equal(t, 0, v.EligibilityPercentage)
	assert.NotNil(t, v.Matched)
	assert.NotNil(t, v.NotMatched)
	assert.NotNil(t, v.Missing)
	assert.Empty(t, v.Matched)
}

func TestEvaluateNumericRangeInclusiveBounds(t *testing.T) {
	e := NewEvaluatorService()

	rec := schemeRecord(bson.M{
		"age_limit_min": 18,
		"age_limit_max": 40,
	})

	for _, age := range []float64{18, 40} {
		profile := baseProfile()
		profile.Age = models.Num(age)
		v := e.Evaluate(models.ProgramSchemes, profile, rec)
		assert.Equal(t, 100, v.EligibilityPercentage, "age %v must be inside the inclusive range", age)
	}

	profile := baseProfile()
	profile.Age = models.Num(41)
	v := e.Evaluate(models.ProgramSchemes, profile, rec)
	assert.Equal(t, 0, v.EligibilityPercentage)
}

func TestEvaluateNumericRangeOpenBounds(t *testing.T) {
	e := NewEvaluatorService()

	// Only max set: min defaults to 0.
	rec := schemeRecord(bson.M{"annual_income_limit_max": 100000})
	profile := baseProfile()
	profile.AnnualIncome = models.Num(0)
	v := e.Evaluate(models.ProgramSchemes, profile, rec)
	assert.Equal(t, 100, v.EligibilityPercentage)

	// Only min set: max is unbounded.
	rec = schemeRecord(bson.M{"annual_income_limit_min": 10000})
	profile.AnnualIncome = models.Num(5000000000)
	v = e.Evaluate(models.ProgramSchemes, profile, rec)
	assert.Equal(t, 100, v.EligibilityPercentage)
}

func TestEvaluateInsuranceMissingValue(t *testing.T) {
	e := NewEvaluatorService()

	rec := models.NewProgramRecord(bson.M{
		"criteria": bson.M{"AnnualIncome": "2-5"},
	})

	// Income unset: the criterion is reported missing, not failed.
	profile := models.UserProfile{State: "Maharashtra"}
	v := e.Evaluate(models.ProgramInsurance, profile, rec)

	assert.Equal(t, 0, v.EligibilityPercentage)
	require.Len(t, v.Missing, 1)
	assert.Equal(t, "Income", v.Missing[0].Field)
	assert.Equal(t, "2-5", v.Missing[0].Required)
	assert.Empty(t, v.NotMatched)
}

func TestEvaluateInsuranceLakhScaledIncome(t *testing.T) {
	e := NewEvaluatorService()

	rec := models.NewProgramRecord(bson.M{
		"criteria": bson.M{"AnnualIncome": "2-5"},
	})

	// "2-5" means ₹2–5 lakh.
	profile := models.UserProfile{AnnualIncome: models.Num(300000)}
	v := e.Evaluate(models.ProgramInsurance, profile, rec)

	assert.Equal(t, 100, v.EligibilityPercentage)
	require.Len(t, v.Matched, 1)
	// Insurance records both sides of every comparison.
	assert.Equal(t, 300000.0, v.Matched[0].User)
	assert.Equal(t, "2-5", v.Matched[0].Required)

	profile.AnnualIncome = models.Num(600000)
	v = e.Evaluate(models.ProgramInsurance, profile, rec)
	assert.Equal(t, 0, v.EligibilityPercentage)
	require.Len(t, v.NotMatched, 1)
	assert.Equal(t, 600000.0, v.NotMatched[0].User)
}

func TestEvaluateInsuranceLandSizeRange(t *testing.T) {
	e := NewEvaluatorService()

	rec := models.NewProgramRecord(bson.M{
		"criteria": bson.M{"LandSize": "2-5"},
	})

	// "3 acres" free text has already been reduced to 3 by the matcher.
	profile := models.UserProfile{LandSize: ExtractFirstNumber("3 acres")}
	v := e.Evaluate(models.ProgramInsurance, profile, rec)
	assert.Equal(t, 100, v.EligibilityPercentage)
}

func TestEvaluateInsuranceUnparseableRangeSkipsCheck(t *testing.T) {
	e := NewEvaluatorService()

	rec := models.NewProgramRecord(bson.M{
		"criteria": bson.M{
			"AnnualIncome": "income limits apply",
			"State":        "All States",
		},
	})

	profile := models.UserProfile{
		State:        "Maharashtra",
		AnnualIncome: models.Num(300000),
	}
	v := e.Evaluate(models.ProgramInsurance, profile, rec)

	// The unparseable range still counts toward the total but emits no
	// verdict entry: 1 matched of 2 evaluable.
	assert.Equal(t, 50, v.EligibilityPercentage)
	require.Len(t, v.Matched, 1)
	assert.Equal(t, "State", v.Matched[0].Field)
	assert.Empty(t, v.NotMatched)
	assert.Empty(t, v.Missing)
}

func TestEvaluateInsuranceSubstringComparisons(t *testing.T) {
	e := NewEvaluatorService()

	rec := models.NewProgramRecord(bson.M{
		"criteria": bson.M{
			"State":    "Maharashtra, Madhya Pradesh",
			"CropType": "Wheat, Rice",
		},
	})

	profile := models.UserProfile{State: "maharashtra", CropType: "Rice"}
	v := e.Evaluate(models.ProgramInsurance, profile, rec)
	assert.Equal(t, 100, v.EligibilityPercentage)

	// The "all" sentinel accepts everyone.
	rec = models.NewProgramRecord(bson.M{
		"criteria": bson.M{"State": "All states of India"},
	})
	profile = models.UserProfile{State: "Kerala"}
	v = e.Evaluate(models.ProgramInsurance, profile, rec)
	assert.Equal(t, 100, v.EligibilityPercentage)
}

func TestEvaluateSetMembership(t *testing.T) {
	e := NewEvaluatorService()

	rec := schemeRecord(bson.M{"state": primitive.A{"Maharashtra", "Punjab"}})

	v := e.Evaluate(models.ProgramSchemes, baseProfile(), rec)
	assert.Equal(t, 100, v.EligibilityPercentage)

	profile := baseProfile()
	profile.State = "Kerala"
	v = e.Evaluate(models.ProgramSchemes, profile, rec)
	assert.Equal(t, 0, v.EligibilityPercentage)
	require.Len(t, v.NotMatched, 1)
	assert.Equal(t, []string{"Maharashtra", "Punjab"}, v.NotMatched[0].Required)
}

func TestEvaluateFinanceMissingOutcome(t *testing.T) {
	e := NewEvaluatorService()

	rec := models.NewProgramRecord(bson.M{
		"criteria": bson.M{
			"land_owner_type": "Owner",
			"age_limit_min":   18,
			"age_limit_max":   60,
		},
	})

	// Neither value supplied: both criteria are missing, not failed.
	v := e.Evaluate(models.ProgramFinance, models.UserProfile{}, rec)
	assert.Equal(t, 0, v.EligibilityPercentage)
	assert.Len(t, v.Missing, 2)
	assert.Empty(t, v.NotMatched)
}

func TestEvaluateDoesNotMutateRecord(t *testing.T) {
	e := NewEvaluatorService()

	rec := schemeRecord(bson.M{"state": primitive.A{"All"}})
	v := e.Evaluate(models.ProgramSchemes, baseProfile(), rec)

	out := v.Attach(rec)
	assert.Contains(t, out, "eligibilityPercentage")
	assert.NotContains(t, rec.Fields, "eligibilityPercentage")
	assert.Equal(t, "Test Scheme", out["scheme_name"])
}
