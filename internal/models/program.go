package models

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ProgramType selects which catalog collection a record belongs to and which
// criteria schema applies to it.
type ProgramType string

const (
	ProgramSchemes   ProgramType = "schemes"
	ProgramInsurance ProgramType = "insurance"
	ProgramFinance   ProgramType = "finance"
)

// Collection returns the MongoDB collection backing this program type.
func (t ProgramType) Collection() string {
	switch t {
	case ProgramInsurance:
		return "Insurance"
	case ProgramFinance:
		return "Finance"
	default:
		return "Schemes"
	}
}

// CategoryField returns the document field holding the category tag.
func (t ProgramType) CategoryField() string {
	switch t {
	case ProgramInsurance:
		return "insurance_category"
	case ProgramFinance:
		return "finance_category"
	default:
		return "schemeCategory"
	}
}

// ProgramRecord is one welfare-program entry as stored in the catalog. The
// documents are heterogeneous (each program type has its own criteria keys), so
// the record keeps the raw document and exposes the criteria block separately.
type ProgramRecord struct {
	Fields   bson.M
	Criteria bson.M
}

// NewProgramRecord wraps a raw catalog document.
func NewProgramRecord(doc bson.M) ProgramRecord {
	rec := ProgramRecord{Fields: doc}
	if c, ok := doc["criteria"].(bson.M); ok {
		rec.Criteria = c
	} else if c, ok := doc["criteria"].(map[string]interface{}); ok {
		rec.Criteria = bson.M(c)
	}
	return rec
}

// ComparisonKind tags how one criterion is compared against the profile.
type ComparisonKind int

const (
	// KindSetMembership: an allowed list, satisfied by an "All" sentinel or
	// by containing the user's value.
	KindSetMembership ComparisonKind = iota
	// KindExact: case-insensitive equality against a required string.
	KindExact
	// KindSubstring: the required string contains the user's value,
	// case-insensitively.
	KindSubstring
	// KindNumericRange: inclusive [min, max] with open bounds defaulting to
	// 0 and +Inf.
	KindNumericRange
	// KindTextRange: a human-readable range like "2-5"; the first two
	// integers are extracted and compared inclusively, optionally scaled.
	KindTextRange
)

// CriterionDetail is one entry in the matched/not-matched/missing lists.
// User and Required are both populated only for program types that record
// both sides of the comparison.
type CriterionDetail struct {
	Field    string      `json:"field" bson:"field"`
	User     interface{} `json:"user,omitempty" bson:"user,omitempty"`
	Required interface{} `json:"required,omitempty" bson:"required,omitempty"`
}

// Verdict is the outcome of evaluating one profile against one record.
type Verdict struct {
	EligibilityPercentage int
	Matched               []CriterionDetail
	NotMatched            []CriterionDetail
	Missing               []CriterionDetail
}

// Attach produces a copy of the record's fields augmented with the verdict,
// matching the response shape of the eligibility endpoints. The source record
// is not mutated.
func (v Verdict) Attach(rec ProgramRecord) bson.M {
	out := make(bson.M, len(rec.Fields)+4)
	for k, val := range rec.Fields {
		out[k] = val
	}
	out["eligibilityPercentage"] = v.EligibilityPercentage
	out["matchedCriteria"] = v.Matched
	out["notMatchedCriteria"] = v.NotMatched
	out["missingCriteria"] = v.Missing
	return out
}
