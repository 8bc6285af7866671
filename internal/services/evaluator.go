package services

import (
	"errors"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
)

// EvaluatorService compares a normalized user profile against one program
// record's criteria and produces an itemized verdict. It is pure computation:
// no I/O, no shared state, safe for concurrent use.
type EvaluatorService interface {
	Evaluate(programType models.ProgramType, profile models.UserProfile, record models.ProgramRecord) models.Verdict
	ParseCriteria(programType models.ProgramType, record models.ProgramRecord) []Criterion
}

type evaluatorService struct{}

func NewEvaluatorService() EvaluatorService {
	return &evaluatorService{}
}

// fieldRule binds one criteria key to a profile field and a comparison kind.
// The rule order fixes the evaluation order per program type.
type fieldRule struct {
	field    profileField
	label    string
	kind     models.ComparisonKind
	key      string // criteria key for non-range kinds and text ranges
	minKey   string // numeric range bounds
	maxKey   string
	scale    float64 // text range multiplier (income ranges are in lakhs)
	allowAll bool    // substring comparison honors an "all" sentinel
}

// programTable is the per-program-type comparison table. The three catalog
// types share one engine; only the tables differ. Note the deliberate
// divergence carried over from the product: land ownership is an exact match
// for schemes but substring containment for financial support.
type programTable struct {
	rules []fieldRule
	// recordBothSides includes both the user's and the required value in
	// every verdict entry (insurance behavior).
	recordBothSides bool
	// missingOutcome reports "user supplied no value" separately from
	// "value fails the criterion".
	missingOutcome bool
}

var programTables = map[models.ProgramType]programTable{
	models.ProgramSchemes: {
		rules: []fieldRule{
			{field: pfState, label: "State", kind: models.KindSetMembership, key: "state"},
			{field: pfLandOwnership, label: "Land Ownership", kind: models.KindExact, key: "land_owner_type"},
			{field: pfIncome, label: "Income", kind: models.KindNumericRange, minKey: "annual_income_limit_min", maxKey: "annual_income_limit_max"},
			{field: pfLandSize, label: "Land Size", kind: models.KindNumericRange, minKey: "land_size_limit_min", maxKey: "land_size_limit_max"},
			{field: pfAge, label: "Age", kind: models.KindNumericRange, minKey: "age_limit_min", maxKey: "age_limit_max"},
		},
	},
	models.ProgramInsurance: {
		rules: []fieldRule{
			{field: pfState, label: "State", kind: models.KindSubstring, key: "State", allowAll: true},
			{field: pfIncome, label: "Income", kind: models.KindTextRange, key: "AnnualIncome", scale: 100000},
			{field: pfLandSize, label: "Land Size", kind: models.KindTextRange, key: "LandSize", scale: 1},
			{field: pfCropType, label: "Crop", kind: models.KindSubstring, key: "CropType", allowAll: true},
		},
		recordBothSides: true,
		missingOutcome:  true,
	},
	models.ProgramFinance: {
		rules: []fieldRule{
			{field: pfState, label: "State", kind: models.KindSetMembership, key: "state"},
			{field: pfLandOwnership, label: "Land Ownership", kind: models.KindSubstring, key: "land_owner_type"},
			{field: pfIncome, label: "Income", kind: models.KindNumericRange, minKey: "annual_income_limit_min", maxKey: "annual_income_limit_max"},
			{field: pfLandSize, label: "Land Size", kind: models.KindNumericRange, minKey: "land_size_limit_min", maxKey: "land_size_limit_max"},
			{field: pfAge, label: "Age", kind: models.KindNumericRange, minKey: "age_limit_min", maxKey: "age_limit_max"},
		},
		missingOutcome: true,
	},
}

// ParseCriteria interprets a record's raw criteria block against the program
// type's comparison table, producing the ordered list of evaluable criteria.
// Absent criteria are dropped here so they never count toward the total.
func (e *evaluatorService) ParseCriteria(programType models.ProgramType, record models.ProgramRecord) []Criterion {
	table, ok := programTables[programType]
	if !ok {
		return nil
	}

	var criteria []Criterion
	raw := record.Criteria
	if raw == nil {
		return nil
	}

	for _, rule := range table.rules {
		c := Criterion{Field: rule.field, Label: rule.label, Kind: rule.kind, AllowAll: rule.allowAll}

		switch rule.kind {
		case models.KindSetMembership:
			allowed, ok := stringList(raw[rule.key])
			if !ok {
				continue
			}
			c.Allowed = allowed

		case models.KindExact, models.KindSubstring:
			required, ok := stringValue(raw[rule.key])
			if !ok {
				continue
			}
			c.Required = required

		case models.KindNumericRange:
			min, minErr := parseBound(raw[rule.minKey])
			max, maxErr := parseBound(raw[rule.maxKey])
			if errors.Is(minErr, errBoundAbsent) && errors.Is(maxErr, errBoundAbsent) {
				continue
			}
			// A malformed bound is present but unusable; fall back to
			// the open-ended default rather than zeroing it silently.
			if minErr != nil {
				if !errors.Is(minErr, errBoundAbsent) {
					log.Printf("⚠️  %s criterion %q: %v", programType, rule.label, minErr)
				}
				min = 0
			}
			if maxErr != nil {
				if !errors.Is(maxErr, errBoundAbsent) {
					log.Printf("⚠️  %s criterion %q: %v", programType, rule.label, maxErr)
				}
				max = math.Inf(1)
			}
			c.Min, c.Max = min, max

		case models.KindTextRange:
			rawRange, ok := stringValue(raw[rule.key])
			if !ok {
				continue
			}
			c.RawRange = rawRange
			c.Min, c.Max, c.RangeOK = parseTextRange(rawRange, rule.scale)
		}

		criteria = append(criteria, c)
	}

	return criteria
}

// Evaluate runs every evaluable criterion of the record against the profile.
// A record with no evaluable criteria scores 0, never NaN.
func (e *evaluatorService) Evaluate(programType models.ProgramType, profile models.UserProfile, record models.ProgramRecord) models.Verdict {
	table := programTables[programType]
	criteria := e.ParseCriteria(programType, record)

	verdict := models.Verdict{
		Matched:    []models.CriterionDetail{},
		NotMatched: []models.CriterionDetail{},
		Missing:    []models.CriterionDetail{},
	}

	total := 0
	matched := 0

	for _, c := range criteria {
		total++

		userStr, userNum := profileValue(profile, c.Field)

		if table.missingOutcome && valueMissing(c.Kind, userStr, userNum) {
			verdict.Missing = append(verdict.Missing, models.CriterionDetail{
				Field:    c.Label,
				Required: requiredValue(c),
			})
			continue
		}

		// An unparseable text range counts toward the total but its
		// check is skipped: no matched or not-matched entry.
		if c.Kind == models.KindTextRange && !c.RangeOK {
			continue
		}

		if satisfies(c, userStr, userNum) {
			matched++
			detail := models.CriterionDetail{Field: c.Label, User: userValue(c, userStr, userNum)}
			if table.recordBothSides {
				detail.Required = requiredValue(c)
			}
			verdict.Matched = append(verdict.Matched, detail)
		} else {
			detail := models.CriterionDetail{Field: c.Label, Required: requiredValue(c)}
			if table.recordBothSides {
				detail.User = userValue(c, userStr, userNum)
			}
			verdict.NotMatched = append(verdict.NotMatched, detail)
		}
	}

	if total > 0 {
		verdict.EligibilityPercentage = int(math.Round(float64(matched) / float64(total) * 100))
	}

	return verdict
}

func profileValue(p models.UserProfile, field profileField) (string, models.NumericValue) {
	switch field {
	case pfState:
		return p.State, models.NumericValue{}
	case pfLandOwnership:
		return p.LandOwnership, models.NumericValue{}
	case pfCropType:
		return p.CropType, models.NumericValue{}
	case pfIncome:
		return "", p.AnnualIncome
	case pfLandSize:
		return "", p.LandSize
	case pfAge:
		return "", p.Age
	}
	return "", models.NumericValue{}
}

// valueMissing reports the user value as absent. Numeric fields follow the
// product's falsy convention: an unsupplied or zero value counts as missing.
func valueMissing(kind models.ComparisonKind, userStr string, userNum models.NumericValue) bool {
	switch kind {
	case models.KindNumericRange, models.KindTextRange:
		return !userNum.Present || userNum.Value == 0
	default:
		return userStr == ""
	}
}

func satisfies(c Criterion, userStr string, userNum models.NumericValue) bool {
	switch c.Kind {
	case models.KindSetMembership:
		for _, allowed := range c.Allowed {
			if allowed == "All" || allowed == userStr {
				return true
			}
		}
		return false

	case models.KindExact:
		return strings.EqualFold(c.Required, userStr)

	case models.KindSubstring:
		if userStr == "" {
			return false
		}
		required := strings.ToLower(c.Required)
		if c.AllowAll && strings.Contains(required, "all") {
			return true
		}
		return strings.Contains(required, strings.ToLower(userStr))

	case models.KindNumericRange, models.KindTextRange:
		return userNum.Value >= c.Min && userNum.Value <= c.Max
	}
	return false
}

func userValue(c Criterion, userStr string, userNum models.NumericValue) interface{} {
	switch c.Kind {
	case models.KindNumericRange, models.KindTextRange:
		return userNum.Value
	default:
		return userStr
	}
}

func requiredValue(c Criterion) interface{} {
	switch c.Kind {
	case models.KindSetMembership:
		return c.Allowed
	case models.KindExact, models.KindSubstring:
		return c.Required
	case models.KindTextRange:
		return c.RawRange
	case models.KindNumericRange:
		return formatRange(c.Min, c.Max)
	}
	return nil
}

func formatRange(min, max float64) string {
	upper := "Infinity"
	if !math.IsInf(max, 1) {
		upper = strconv.FormatFloat(max, 'f', -1, 64)
	}
	return strconv.FormatFloat(min, 'f', -1, 64) + " - " + upper
}
