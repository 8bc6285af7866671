package models

// ExtractedCriteria is the fixed criteria block the extraction prompt asks the
// model to fill. Values are free-text ranges/lists as they appear in the
// source document ("2-5", "Wheat, Rice", "All").
type ExtractedCriteria struct {
	AnnualIncome string `json:"AnnualIncome"`
	LandSize     string `json:"LandSize"`
	CropType     string `json:"CropType"`
	State        string `json:"State"`
}

// ExtractedScheme is the structured record produced by the ingestion bridge.
type ExtractedScheme struct {
	SchemeName        string            `json:"scheme_name"`
	InsuranceCategory string            `json:"insurance_category"`
	EligibilityText   string            `json:"eligibility_text"`
	Criteria          ExtractedCriteria `json:"criteria"`
}

// ExtractionResult carries either a validated record or the raw model output
// for operator review. A failed extraction is a normal outcome, not an error.
type ExtractionResult struct {
	OK      bool
	Record  ExtractedScheme
	Raw     string
	Message string
}
