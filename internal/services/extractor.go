package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
	"github.com/codebuddy1234/Kisan-Sahay1/internal/repositories"
)

// ExtractorService is the ingestion bridge: it turns unstructured scheme text
// into a validated catalog record via the LLM. Model-output problems are a
// normal outcome carried in the result, never an error; the raw output is
// preserved for operator review.
type ExtractorService interface {
	ExtractAndStore(ctx context.Context, rawText string) (models.ExtractionResult, error)
}

type extractorService struct {
	catalog       repositories.CatalogRepository
	indexJobRepo  repositories.IndexJobRepository
	geminiService GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
	timeout       time.Duration
}

func NewExtractorService(
	catalog repositories.CatalogRepository,
	indexJobRepo repositories.IndexJobRepository,
	geminiService GeminiService,
	maxRetries int,
	timeout time.Duration,
) ExtractorService {
	return &extractorService{
		catalog:       catalog,
		indexJobRepo:  indexJobRepo,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		timeout:       timeout,
	}
}

// extractionSchema is the contract the model output must satisfy before a
// record is persisted. Records missing required fields are rejected and
// flagged instead of trusted verbatim.
var extractionSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"scheme_name", "insurance_category", "eligibility_text", "criteria"},
	"properties": map[string]interface{}{
		"scheme_name":        map[string]interface{}{"type": "string", "minLength": 1},
		"insurance_category": map[string]interface{}{"type": "string"},
		"eligibility_text":   map[string]interface{}{"type": "string"},
		"criteria": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"AnnualIncome": map[string]interface{}{"type": "string"},
				"LandSize":     map[string]interface{}{"type": "string"},
				"CropType":     map[string]interface{}{"type": "string"},
				"State":        map[string]interface{}{"type": "string"},
			},
		},
	},
}

// ExtractAndStore implements ExtractorService.
func (e *extractorService) ExtractAndStore(ctx context.Context, rawText string) (models.ExtractionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := e.promptBuilder.BuildExtractionPrompt(rawText)

	// Temperature 0: extraction should be deterministic.
	response, err := e.geminiService.GenerateTextWithRetry(ctx, prompt, 0, e.maxRetries)
	if err != nil {
		return models.ExtractionResult{}, fmt.Errorf("extraction model call failed: %w", err)
	}

	jsonStr := extractJSON(response)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		log.Printf("⚠️  Extraction returned invalid JSON: %v", err)
		return models.ExtractionResult{
			Raw:     response,
			Message: "Invalid JSON from model",
		}, nil
	}

	if err := validateExtraction(parsed); err != nil {
		log.Printf("⚠️  Extraction failed schema validation: %v", err)
		return models.ExtractionResult{
			Raw:     response,
			Message: err.Error(),
		}, nil
	}

	var record models.ExtractedScheme
	if err := json.Unmarshal([]byte(jsonStr), &record); err != nil {
		return models.ExtractionResult{
			Raw:     response,
			Message: "Invalid JSON from model",
		}, nil
	}

	doc := bson.M{
		"scheme_name":        record.SchemeName,
		"slug":               Slugify(record.SchemeName),
		"insurance_category": record.InsuranceCategory,
		"eligibility_text":   record.EligibilityText,
		"criteria": bson.M{
			"AnnualIncome": record.Criteria.AnnualIncome,
			"LandSize":     record.Criteria.LandSize,
			"CropType":     record.Criteria.CropType,
			"State":        record.Criteria.State,
		},
	}

	if err := e.catalog.Insert(ctx, models.ProgramSchemes, doc); err != nil {
		return models.ExtractionResult{}, fmt.Errorf("failed to persist extracted record: %w", err)
	}

	// Queue the source text for background indexing so scheme chat can
	// retrieve it later. The record itself is already stored; indexing
	// failure is not fatal here.
	job := &models.IndexJob{
		SchemeRef:    Slugify(record.SchemeName),
		DocumentText: rawText,
		Status:       models.IndexStatusQueued,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := e.indexJobRepo.Create(job); err != nil {
		log.Printf("⚠️  Failed to queue index job for %q: %v", record.SchemeName, err)
	}

	return models.ExtractionResult{OK: true, Record: record}, nil
}

func validateExtraction(doc map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(extractionSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("extracted record failed validation: %v", errs)
	}

	return nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a scheme name.
func Slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// extractJSON pulls the JSON body out of a model response that may wrap it in
// markdown fences or prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")
	if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
