package services

// FieldKind selects which alias table normalization uses.
type FieldKind string

const (
	FieldLandOwnership FieldKind = "landOwnership"
	FieldCropType      FieldKind = "cropType"
	FieldState         FieldKind = "state"
)

// The tables map localized terms (Hindi, Marathi) and canonical tokens alike
// to the canonical English token, so normalization is idempotent.

var landOwnershipAliases = map[string]string{
	"मालिक":           "Owner",
	"किराएदार":        "Tenant",
	"साझा-फसलकर्ता":   "Sharecropper",
	"भाडेकरू":         "Tenant",
	"साझा पिकवणारा":   "Sharecropper",
	"Owner":           "Owner",
	"Tenant":          "Tenant",
	"Sharecropper":    "Sharecropper",
}

var cropTypeAliases = map[string]string{
	"गेहूं": "Wheat",
	"धान":   "Rice",
	"मका":   "Maize",
	"Wheat": "Wheat",
	"Rice":  "Rice",
	"Maize": "Maize",
}

var stateAliases = map[string]string{
	"महाराष्ट्र":     "Maharashtra",
	"उत्तर प्रदेश":   "Uttar Pradesh",
	"मध्य प्रदेश":    "Madhya Pradesh",
	"Maharashtra":    "Maharashtra",
	"Uttar Pradesh":  "Uttar Pradesh",
	"Madhya Pradesh": "Madhya Pradesh",
}

// Normalize maps a localized or aliased user input to its canonical English
// token. Unknown and empty values pass through unchanged; normalization never
// fails.
func Normalize(value string, kind FieldKind) string {
	if value == "" {
		return value
	}

	var table map[string]string
	switch kind {
	case FieldLandOwnership:
		table = landOwnershipAliases
	case FieldCropType:
		table = cropTypeAliases
	case FieldState:
		table = stateAliases
	default:
		return value
	}

	if canonical, ok := table[value]; ok {
		return canonical
	}
	return value
}
