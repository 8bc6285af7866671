package repositories

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
)

// CatalogRepository is the query-and-fetch interface over the welfare-program
// catalog. Records come back raw; criteria interpretation happens in the
// evaluator.
type CatalogRepository interface {
	FindByCategory(ctx context.Context, programType models.ProgramType, category string) ([]models.ProgramRecord, error)
	FindByCategoryExact(ctx context.Context, programType models.ProgramType, category string) ([]models.ProgramRecord, error)
	FindBySlug(ctx context.Context, programType models.ProgramType, slug string) (*models.ProgramRecord, error)
	FindByID(ctx context.Context, programType models.ProgramType, id string) (*models.ProgramRecord, error)
	Insert(ctx context.Context, programType models.ProgramType, doc interface{}) error
}

type catalogRepository struct {
	db *mongo.Database
}

func NewCatalogRepository(db *mongo.Database) CatalogRepository {
	return &catalogRepository{db: db}
}

// FindByCategory matches the category as a case-insensitive substring of the
// stored category tag.
func (r *catalogRepository) FindByCategory(ctx context.Context, programType models.ProgramType, category string) ([]models.ProgramRecord, error) {
	filter := bson.M{
		programType.CategoryField(): primitive.Regex{
			Pattern: regexp.QuoteMeta(category),
			Options: "i",
		},
	}
	return r.find(ctx, programType, filter)
}

// FindByCategoryExact matches the stored category tag verbatim.
func (r *catalogRepository) FindByCategoryExact(ctx context.Context, programType models.ProgramType, category string) ([]models.ProgramRecord, error) {
	return r.find(ctx, programType, bson.M{programType.CategoryField(): category})
}

func (r *catalogRepository) find(ctx context.Context, programType models.ProgramType, filter bson.M) ([]models.ProgramRecord, error) {
	cursor, err := r.db.Collection(programType.Collection()).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", programType.Collection(), err)
	}
	defer cursor.Close(ctx)

	var records []models.ProgramRecord
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %w", programType, err)
		}
		records = append(records, models.NewProgramRecord(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error on %s: %w", programType.Collection(), err)
	}

	return records, nil
}

// FindBySlug looks up a single record by its slug field (schemes, finance).
func (r *catalogRepository) FindBySlug(ctx context.Context, programType models.ProgramType, slug string) (*models.ProgramRecord, error) {
	return r.findOne(ctx, programType, bson.M{"slug": slug})
}

// FindByID looks up a single record by its business id field (insurance).
func (r *catalogRepository) FindByID(ctx context.Context, programType models.ProgramType, id string) (*models.ProgramRecord, error) {
	return r.findOne(ctx, programType, bson.M{"id": id})
}

func (r *catalogRepository) findOne(ctx context.Context, programType models.ProgramType, filter bson.M) (*models.ProgramRecord, error) {
	var doc bson.M
	err := r.db.Collection(programType.Collection()).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch %s record: %w", programType, err)
	}
	rec := models.NewProgramRecord(doc)
	return &rec, nil
}

// Insert stores a newly ingested record verbatim.
func (r *catalogRepository) Insert(ctx context.Context, programType models.ProgramType, doc interface{}) error {
	if _, err := r.db.Collection(programType.Collection()).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert %s record: %w", programType, err)
	}
	return nil
}
