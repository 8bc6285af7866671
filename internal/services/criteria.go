package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
)

// profileField identifies which UserProfile attribute a criterion compares
// against.
type profileField int

const (
	pfState profileField = iota
	pfLandOwnership
	pfCropType
	pfIncome
	pfLandSize
	pfAge
)

// Criterion is one eligibility rule parsed out of a record's raw criteria
// block into its typed form. The raw block is interpreted exactly once per
// record instead of ad hoc on every comparison.
type Criterion struct {
	Field profileField
	Label string
	Kind  models.ComparisonKind

	// KindSetMembership
	Allowed []string

	// KindExact / KindSubstring
	Required string
	AllowAll bool

	// KindNumericRange, bounds resolved to defaults (0 / +Inf)
	Min float64
	Max float64

	// KindTextRange
	RawRange string
	RangeOK  bool
}

var errBoundAbsent = errors.New("bound absent")

// parseBound coerces a numeric criteria bound. It distinguishes an absent
// bound from a malformed one so the caller can apply the open-ended default
// knowingly instead of silently zeroing garbage.
func parseBound(v interface{}) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, errBoundAbsent
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("malformed numeric bound %q: %w", n, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("malformed numeric bound of type %T", v)
	}
}

func stringValue(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func stringList(v interface{}) ([]string, bool) {
	var raw []interface{}
	switch a := v.(type) {
	case bson.A:
		raw = a
	case []interface{}:
		raw = a
	case []string:
		return a, len(a) > 0
	default:
		return nil, false
	}

	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, len(out) > 0
}

var integerPattern = regexp.MustCompile(`\d+`)

// parseTextRange extracts the first two integers from a human-readable range
// like "2-5 acres" and scales them (income ranges are written in lakhs). A
// range with fewer than two integers is unparseable; the criterion still
// counts but its check is skipped.
func parseTextRange(raw string, scale float64) (min, max float64, ok bool) {
	nums := integerPattern.FindAllString(raw, 2)
	if len(nums) < 2 {
		return 0, 0, false
	}
	lo, err1 := strconv.ParseFloat(nums[0], 64)
	hi, err2 := strconv.ParseFloat(nums[1], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lo * scale, hi * scale, true
}

// ExtractFirstNumber pulls the leading integer out of free text such as
// "3 acres". Used for insurance land-size input.
func ExtractFirstNumber(s string) models.NumericValue {
	match := integerPattern.FindString(s)
	if match == "" {
		return models.NumericValue{}
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return models.NumericValue{}
	}
	return models.Num(f)
}

// CoerceNumber turns a request field of unknown JSON type into a numeric
// value. Absent and empty inputs are reported as not present; malformed input
// is present with the zero default, never an error.
func CoerceNumber(v interface{}) models.NumericValue {
	switch n := v.(type) {
	case nil:
		return models.NumericValue{}
	case float64:
		return models.Num(n)
	case float32:
		return models.Num(float64(n))
	case int:
		return models.Num(float64(n))
	case int64:
		return models.Num(float64(n))
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return models.NumericValue{}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.NumericValue{Value: 0, Present: true}
		}
		return models.Num(f)
	default:
		return models.NumericValue{}
	}
}
