package models

import (
	"time"

	"github.com/RaheesAhmed/growthcompass/internal/assessment"
)

// Assessment is a persisted assessment: the classification outcome, the
// aggregated questionnaire responses, and the generated growth plan. Plan is
// empty until generation finishes.
type Assessment struct {
	ID         string
	RoleName   string
	LevelIndex int
	Records    []assessment.Record
	Plan       string
	CreatedAt  time.Time
}

// AssessmentSummary is the listing row: everything except the response and
// plan bodies.
type AssessmentSummary struct {
	ID         string    `db:"id"`
	RoleName   string    `db:"role_name"`
	LevelIndex int       `db:"level_index"`
	HasPlan    bool      `db:"has_plan"`
	CreatedAt  time.Time `db:"created_at"`
}
