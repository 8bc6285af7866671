package models

import (
	"time"

	"github.com/google/uuid"
)

// NumericValue distinguishes "the user supplied no value" from "the value is
// zero". Coercion never fails; malformed input falls back to a present zero.
type NumericValue struct {
	Value   float64
	Present bool
}

// Num is a convenience constructor for a present value.
func Num(v float64) NumericValue {
	return NumericValue{Value: v, Present: true}
}

// UserProfile is the normalized, request-scoped view of the farmer's data used
// by the evaluator. It is never persisted by the matching engine.
type UserProfile struct {
	State         string
	LandOwnership string
	CropType      string
	AnnualIncome  NumericValue
	LandSize      NumericValue
	Age           NumericValue
}

// SchemeProfile stores a /userSchemesData submission.
type SchemeProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	State         string    `gorm:"type:text" json:"state"`
	LandOwnership string    `gorm:"type:text" json:"land_ownership"`
	AnnualIncome  string    `gorm:"type:text" json:"annual_income"`
	Age           string    `gorm:"type:text" json:"age"`
	CreatedAt     time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (SchemeProfile) TableName() string {
	return "scheme_profiles"
}

// InsuranceProfile stores a /userInsuranceData submission.
type InsuranceProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	State         string    `gorm:"type:text" json:"state"`
	LandOwnership string    `gorm:"type:text" json:"land_ownership"`
	LandSize      string    `gorm:"type:text" json:"land_size"`
	AnnualIncome  string    `gorm:"type:text" json:"annual_income"`
	CropType      string    `gorm:"type:text" json:"crop_type"`
	CreatedAt     time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (InsuranceProfile) TableName() string {
	return "insurance_profiles"
}

// FinancialProfile stores a /userFinancialData submission.
type FinancialProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	State         string    `gorm:"type:text" json:"state"`
	LandOwnership string    `gorm:"type:text" json:"land_ownership"`
	LandSize      string    `gorm:"type:text" json:"land_size"`
	AnnualIncome  string    `gorm:"type:text" json:"annual_income"`
	Age           string    `gorm:"type:text" json:"age"`
	CreatedAt     time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (FinancialProfile) TableName() string {
	return "financial_profiles"
}

// IndexJobStatus tracks a document-indexing job through the worker.
type IndexJobStatus string

const (
	IndexStatusQueued     IndexJobStatus = "queued"
	IndexStatusProcessing IndexJobStatus = "processing"
	IndexStatusCompleted  IndexJobStatus = "completed"
	IndexStatusFailed     IndexJobStatus = "failed"
)

// IndexJob queues the text of an ingested scheme document for chunking,
// embedding and upsert into the vector store.
type IndexJob struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SchemeRef    string         `gorm:"type:text;not null" json:"scheme_ref"`
	DocumentText string         `gorm:"type:text" json:"-"`
	Status       IndexJobStatus `gorm:"not null;default:'queued'" json:"status"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (IndexJob) TableName() string {
	return "index_jobs"
}
