package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
)

func TestParseBound(t *testing.T) {
	v, err := parseBound(100000)
	assert.NoError(t, err)
	assert.Equal(t, 100000.0, v)

	v, err = parseBound(int32(5))
	assert.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = parseBound("2.5")
	assert.NoError(t, err)
	assert.Equal(t, 2.5, v)

	_, err = parseBound(nil)
	assert.True(t, errors.Is(err, errBoundAbsent))

	// Malformed is distinguishable from absent.
	_, err = parseBound("lots")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, errBoundAbsent))
}

func TestCoerceNumber(t *testing.T) {
	assert.Equal(t, models.NumericValue{}, CoerceNumber(nil))
	assert.Equal(t, models.NumericValue{}, CoerceNumber(""))
	assert.Equal(t, models.Num(42), CoerceNumber(42.0))
	assert.Equal(t, models.Num(42), CoerceNumber("42"))
	assert.Equal(t, models.Num(1.5), CoerceNumber("1.5"))

	// Malformed input is present with the zero default, never an error.
	assert.Equal(t, models.NumericValue{Value: 0, Present: true}, CoerceNumber("three"))
}

func TestExtractFirstNumber(t *testing.T) {
	assert.Equal(t, models.Num(3), ExtractFirstNumber("3 acres"))
	assert.Equal(t, models.Num(12), ExtractFirstNumber("about 12 to 15 acres"))
	assert.Equal(t, models.NumericValue{}, ExtractFirstNumber("no digits here"))
	assert.Equal(t, models.NumericValue{}, ExtractFirstNumber(""))
}

func TestParseTextRange(t *testing.T) {
	min, max, ok := parseTextRange("2-5", 100000)
	assert.True(t, ok)
	assert.Equal(t, 200000.0, min)
	assert.Equal(t, 500000.0, max)

	min, max, ok = parseTextRange("10 to 20 acres", 1)
	assert.True(t, ok)
	assert.Equal(t, 10.0, min)
	assert.Equal(t, 20.0, max)

	_, _, ok = parseTextRange("unspecified", 1)
	assert.False(t, ok)

	// A single integer is not enough for a range.
	_, _, ok = parseTextRange("5", 1)
	assert.False(t, ok)
}

func TestStringList(t *testing.T) {
	// bson.A and primitive.A are the same type; both spellings must decode.
	list, ok := stringList(bson.A{"Maharashtra", "Punjab"})
	assert.True(t, ok)
	assert.Equal(t, []string{"Maharashtra", "Punjab"}, list)

	list, ok = stringList(primitive.A{"Kerala"})
	assert.True(t, ok)
	assert.Equal(t, []string{"Kerala"}, list)

	_, ok = stringList(primitive.A{})
	assert.False(t, ok)

	_, ok = stringList("not a list")
	assert.False(t, ok)

	_, ok = stringList(nil)
	assert.False(t, ok)
}

func TestParseCriteriaDropsAbsentAndMalformed(t *testing.T) {
	e := NewEvaluatorService()

	rec := models.NewProgramRecord(bson.M{
		"criteria": bson.M{
			"state":                   primitive.A{"Maharashtra"},
			"annual_income_limit_max": 100000,
			// age bounds absent entirely, land size only garbage
			"land_size_limit_min": "plenty",
		},
	})

	criteria := e.ParseCriteria(models.ProgramSchemes, rec)

	labels := make([]string, 0, len(criteria))
	for _, c := range criteria {
		labels = append(labels, c.Label)
	}
	// Land size is present (one bound exists, malformed falls back to the
	// default); age is absent.
	assert.Equal(t, []string{"State", "Income", "Land Size"}, labels)

	// Open bounds default to 0 / +Inf.
	income := criteria[1]
	assert.Equal(t, 0.0, income.Min)
	assert.Equal(t, 100000.0, income.Max)
}

func TestParseCriteriaNilBlock(t *testing.T) {
	e := NewEvaluatorService()
	rec := models.NewProgramRecord(bson.M{"scheme_name": "No criteria at all"})
	assert.Empty(t, e.ParseCriteria(models.ProgramSchemes, rec))
}
