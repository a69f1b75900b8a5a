package models

// GradeKind tags the four-state grade domain. The legacy integer encoding
// (-1 ungradable, -2 irrelevant, -3 validation failed, else a score) only
// appears at the storage and wire edges.
type GradeKind string

const (
	GradeScored           GradeKind = "scored"
	GradeUngradable       GradeKind = "ungradable"
	GradeIrrelevant       GradeKind = "irrelevant"
	GradeValidationFailed GradeKind = "validation_failed"
)

const (
	LegacyUngradable       = -1.0
	LegacyIrrelevant       = -2.0
	LegacyValidationFailed = -3.0
)

type Grade struct {
	Kind  GradeKind `json:"kind"`
	Score float64   `json:"score,omitempty"`
}

// GradeFromScore converts the legacy integer encoding into the tagged variant.
func GradeFromScore(v float64) Grade {
	switch v {
	case LegacyUngradable:
		return Grade{Kind: GradeUngradable}
	case LegacyIrrelevant:
		return Grade{Kind: GradeIrrelevant}
	case LegacyValidationFailed:
		return Grade{Kind: GradeValidationFailed}
	default:
		return Grade{Kind: GradeScored, Score: v}
	}
}

// Legacy converts back to the integer encoding used by storage.
func (g Grade) Legacy() float64 {
	switch g.Kind {
	case GradeUngradable:
		return LegacyUngradable
	case GradeIrrelevant:
		return LegacyIrrelevant
	case GradeValidationFailed:
		return LegacyValidationFailed
	default:
		return g.Score
	}
}
