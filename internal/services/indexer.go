package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
	"github.com/codebuddy1234/Kisan-Sahay1/internal/repositories"
)

// IndexerService processes one queued document-indexing job: chunk the
// ingested text, embed each chunk and upsert it into the vector store keyed
// by the scheme it belongs to.
type IndexerService interface {
	IndexDocument(ctx context.Context, jobID uuid.UUID) error
}

type indexerService struct {
	indexJobRepo  repositories.IndexJobRepository
	geminiService GeminiService
	qdrantService QdrantService
	chunker       TextChunker
}

const (
	chunkSize    = 1000
	chunkOverlap = 150
)

func NewIndexerService(
	indexJobRepo repositories.IndexJobRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
) IndexerService {
	return &indexerService{
		indexJobRepo:  indexJobRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
		chunker:       NewTextChunker(),
	}
}

// IndexDocument implements IndexerService.
func (s *indexerService) IndexDocument(ctx context.Context, jobID uuid.UUID) error {
	if err := s.indexJobRepo.UpdateStatus(jobID, models.IndexStatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	job, err := s.indexJobRepo.FindByID(jobID)
	if err != nil {
		s.indexJobRepo.UpdateError(jobID, err.Error())
		return fmt.Errorf("failed to get index job: %w", err)
	}

	chunks := s.chunker.ChunkText(CleanText(job.DocumentText), chunkSize, chunkOverlap)
	if len(chunks) == 0 {
		s.indexJobRepo.UpdateError(jobID, "document produced no indexable text")
		return fmt.Errorf("document produced no indexable text")
	}

	for i, chunk := range chunks {
		embedding, err := s.geminiService.GenerateEmbedding(ctx, chunk)
		if err != nil {
			s.indexJobRepo.UpdateError(jobID, fmt.Sprintf("failed to embed chunk %d: %v", i, err))
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		if err := s.qdrantService.UpsertChunk(ctx, job.SchemeRef, i, chunk, embedding); err != nil {
			s.indexJobRepo.UpdateError(jobID, fmt.Sprintf("failed to store chunk %d: %v", i, err))
			return fmt.Errorf("failed to store chunk %d: %w", i, err)
		}
	}

	if err := s.indexJobRepo.UpdateStatus(jobID, models.IndexStatusCompleted); err != nil {
		return fmt.Errorf("failed to mark job completed: %w", err)
	}

	log.Printf("✅ Indexed %d chunks for scheme %s\n", len(chunks), job.SchemeRef)
	return nil
}
