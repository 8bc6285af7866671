package models

// Numeric fields arrive as numbers or free-text strings depending on the
// client form, so they are carried as interface{} and coerced by the matcher.

type EligibleSchemesRequest struct {
	State         string      `json:"state"`
	AnnualIncome  interface{} `json:"annualIncome"`
	LandOwnership string      `json:"landOwnership"`
	LandSize      interface{} `json:"landSize"`
	Age           interface{} `json:"age"`
	Category      string      `json:"category"`
}

type EligibleInsuranceRequest struct {
	State        string      `json:"state"`
	LandSize     string      `json:"landSize"`
	AnnualIncome interface{} `json:"AnnualIncome"`
	CropType     string      `json:"cropType"`
	Category     string      `json:"category"`
}

// Empty reports whether the request supplies no usable value at all, using the
// form's falsy convention on the raw fields: absent, empty string or numeric
// zero. Insurance matching short-circuits in that case.
func (r EligibleInsuranceRequest) Empty() bool {
	return r.State == "" && r.CropType == "" && r.LandSize == "" && numericFalsy(r.AnnualIncome)
}

func numericFalsy(v interface{}) bool {
	switch n := v.(type) {
	case nil:
		return true
	case string:
		return n == ""
	case float64:
		return n == 0
	case float32:
		return n == 0
	case int:
		return n == 0
	case int64:
		return n == 0
	default:
		return false
	}
}

type EligibleFinanceRequest struct {
	State         string      `json:"state"`
	AnnualIncome  interface{} `json:"annualIncome"`
	LandOwnership string      `json:"landOwnership"`
	LandSize      interface{} `json:"landSize"`
	Age           interface{} `json:"age"`
	Category      string      `json:"category"`
}

type SchemeProfileRequest struct {
	State         string      `json:"state"`
	LandOwnership string      `json:"landOwnership"`
	AnnualIncome  interface{} `json:"AnnualIncome"`
	Age           interface{} `json:"age"`
}

type InsuranceProfileRequest struct {
	State         string      `json:"state"`
	LandOwnership string      `json:"landOwnership"`
	LandSize      string      `json:"landSize"`
	AnnualIncome  interface{} `json:"AnnualIncome"`
	CropType      string      `json:"cropType"`
}

type FinancialProfileRequest struct {
	State         string      `json:"state"`
	LandOwnership string      `json:"landOwnership"`
	LandSize      interface{} `json:"landSize"`
	AnnualIncome  interface{} `json:"annualIncome"`
	Age           interface{} `json:"age"`
}

type SchemeChatRequest struct {
	Message string `json:"message"`
	Slug    string `json:"slug"`
}
