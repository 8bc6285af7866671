package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildExtractionPrompt asks the model to turn an unstructured scheme
// document into the fixed catalog record shape. The schema is frozen; the
// response is validated against it before anything is persisted.
func (pb *PromptBuilder) BuildExtractionPrompt(text string) string {
	return fmt.Sprintf(`Extract the government scheme into structured JSON.

Return ONLY valid JSON.

Schema:
{
  "scheme_name": "",
  "insurance_category": "",
  "eligibility_text": "",
  "criteria": {
    "AnnualIncome": "",
    "LandSize": "",
    "CropType": "",
    "State": ""
  }
}

Text:
%s
`, text)
}

// BuildSchemeChatPrompt grounds an answer on the scheme record itself plus
// any retrieved document chunks. The model is told to stay inside that
// context.
func (pb *PromptBuilder) BuildSchemeChatPrompt(schemeContext, retrievedContext, question string) string {
	var b strings.Builder
	b.WriteString("You are a helpful agriculture assistant. Answer ONLY based on the scheme information provided.\n\n")
	b.WriteString("Scheme Information:\n")
	b.WriteString(schemeContext)
	if retrievedContext != "" {
		b.WriteString("\n\nAdditional context from the scheme's source documents:\n")
		b.WriteString(retrievedContext)
	}
	b.WriteString("\n\nUser Question:\n")
	b.WriteString(question)
	return b.String()
}

// FormatSchemeContext renders the descriptive fields of a catalog record for
// the chat prompt.
func FormatSchemeContext(fields map[string]interface{}) string {
	labels := []struct {
		key   string
		label string
	}{
		{"scheme_name", "Scheme Name"},
		{"details", "Details"},
		{"benefits", "Benefits"},
		{"eligibility", "Eligibility"},
		{"eligibility_text", "Eligibility"},
		{"application", "Application"},
		{"documents", "Documents"},
	}

	var b strings.Builder
	for _, l := range labels {
		if v, ok := fields[l.key]; ok && v != nil {
			fmt.Fprintf(&b, "%s: %v\n", l.label, v)
		}
	}
	return b.String()
}

// FormatRAGContext renders retrieved chunks for prompt injection.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
