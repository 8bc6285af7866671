package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
	"github.com/codebuddy1234/Kisan-Sahay1/internal/repositories"
)

var ErrSchemeNotFound = errors.New("scheme not found")

// ChatService answers questions about one scheme, grounded on the catalog
// record and any indexed source-document chunks.
type ChatService interface {
	Answer(ctx context.Context, slug, message string) (string, error)
}

type chatService struct {
	catalog       repositories.CatalogRepository
	geminiService GeminiService
	qdrantService QdrantService
	promptBuilder *PromptBuilder
	maxRetries    int
	timeout       time.Duration
}

func NewChatService(
	catalog repositories.CatalogRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	maxRetries int,
	timeout time.Duration,
) ChatService {
	return &chatService{
		catalog:       catalog,
		geminiService: geminiService,
		qdrantService: qdrantService,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		timeout:       timeout,
	}
}

// Answer implements ChatService.
func (s *chatService) Answer(ctx context.Context, slug, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	scheme, err := s.catalog.FindBySlug(ctx, models.ProgramSchemes, slug)
	if err != nil {
		return "", fmt.Errorf("failed to fetch scheme: %w", err)
	}
	if scheme == nil {
		return "", ErrSchemeNotFound
	}

	schemeContext := FormatSchemeContext(scheme.Fields)

	// Retrieval is best effort; the record context alone is enough to
	// answer most questions.
	retrievedContext := s.retrieveContext(ctx, slug, message)

	prompt := s.promptBuilder.BuildSchemeChatPrompt(schemeContext, retrievedContext, message)

	reply, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, 0.5, s.maxRetries)
	if err != nil {
		return "", fmt.Errorf("failed to generate chat reply: %w", err)
	}

	return strings.TrimSpace(reply), nil
}

func (s *chatService) retrieveContext(ctx context.Context, slug, message string) string {
	embedding, err := s.geminiService.GenerateEmbedding(ctx, message)
	if err != nil {
		log.Printf("⚠️  Failed to embed chat question: %v\n", err)
		return ""
	}

	results, err := s.qdrantService.SearchSimilar(ctx, embedding, slug, 3)
	if err != nil {
		log.Printf("⚠️  Failed to retrieve scheme document chunks: %v\n", err)
		return ""
	}

	return FormatRAGContext(results)
}
