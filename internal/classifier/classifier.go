// Package classifier maps a structured job description to one of the ten
// responsibility levels in the catalog.
//
// The scoring function is a weighted sum of five bucketed sub-scores,
// adjusted by a role-complexity bonus and a per-tier minimum floor, and then
// thresholded into a catalog level. The bucket boundaries, weights, floors,
// and thresholds are hand-tuned against the catalog; changing any of them
// silently reclassifies respondents, so they must be kept exactly in sync
// with each other.
package classifier

import (
	"log/slog"
	"strings"

	"github.com/RaheesAhmed/growthcompass/internal/errors"
	"github.com/RaheesAhmed/growthcompass/internal/levels"
)

// Result is the outcome of a classification: a position in the level catalog
// together with that level's narrative fields.
type Result struct {
	LevelIndex  int
	RoleName    string
	Description string
	NarrativeV1 string
	NarrativeV2 string
}

// Breakdown exposes the intermediate sub-scores for diagnostics. All values
// are unweighted except WeightedTotal, which is the weighted sum before the
// bonus and floor, and Final, which is the score matched against the
// threshold table.
type Breakdown struct {
	DirectReports       float64
	JobFunction         float64
	DecisionScope       float64
	OrganizationalDepth float64
	Budget              float64
	WeightedTotal       float64
	RoleBonus           float64
	Floor               float64
	Final               float64
}

// ErrNoCatalogEntry signals that the threshold table produced a role name
// missing from the level catalog. The two tables are maintained together, so
// this is a programming error, not a bad request.
var ErrNoCatalogEntry = errors.NewSentinel("no matching catalog entry")

const (
	weightDirectReports = 0.30
	weightJobFunction   = 0.25
	weightDecisionScope = 0.20
	weightOrgDepth      = 0.15
	weightBudget        = 0.10
)

var jobFunctionScores = map[JobFunction]float64{
	JobFunctionIndividualContributor: 0.2,
	JobFunctionTeamLead:              0.4,
	JobFunctionDepartmentManager:     0.6,
	JobFunctionSeniorManager:         0.7,
	JobFunctionDirector:              0.8,
	JobFunctionExecutive:             0.9,
	JobFunctionCLevel:                1.0,
}

var decisionScopeScores = map[DecisionScope]float64{
	DecisionScopeOperational: 0.3,
	DecisionScopeTactical:    0.6,
	DecisionScopeStrategic:   1.0,
}

var budgetScores = map[BudgetScope]float64{
	BudgetScopeNone:                0.2,
	BudgetScopeDepartment:          0.6,
	BudgetScopeMultipleDepartments: 0.8,
	BudgetScopeCompanyWide:         1.0,
}

// jobFunctionFloors guarantees a minimum final score per tier so that, for
// example, a C-level respondent with few reports still lands near the top of
// the catalog.
var jobFunctionFloors = map[JobFunction]float64{
	JobFunctionCLevel:                0.85,
	JobFunctionExecutive:             0.75,
	JobFunctionDirector:              0.65,
	JobFunctionSeniorManager:         0.55,
	JobFunctionDepartmentManager:     0.45,
	JobFunctionTeamLead:              0.35,
	JobFunctionIndividualContributor: 0.25,
}

// roleBonuses are additive, not mutually exclusive: a titles string matching
// several keywords accumulates several bonuses.
var roleBonuses = []struct {
	keywords []string
	bonus    float64
}{
	{keywords: []string{"supervisor"}, bonus: 0.02},
	{keywords: []string{"manager"}, bonus: 0.03},
	{keywords: []string{"director"}, bonus: 0.04},
	{keywords: []string{"vice president", "vp"}, bonus: 0.05},
}

// thresholds maps ascending score boundaries to catalog level names. The
// first boundary that is >= the final score wins. A score above every
// boundary resolves to the top level; the direct-report clamp keeps the
// weighted sum within range, but the bonus can nudge past 1.0, so the
// terminal case is explicit rather than an emergent fallthrough.
var thresholds = []struct {
	bound float64
	name  string
}{
	{bound: 0.30, name: "Individual Contributor"},
	{bound: 0.34, name: "Team Lead"},
	{bound: 0.38, name: "Supervisor"},
	{bound: 0.43, name: "Manager"},
	{bound: 0.55, name: "Senior Manager / Associate Director"},
	{bound: 0.68, name: "Director"},
	{bound: 0.78, name: "Senior Director / VP"},
	{bound: 0.86, name: "Senior Vice President"},
	{bound: 0.92, name: "Executive Vice President"},
	{bound: 1.0, name: "Chief Officer"},
}

// Classify maps the input to a responsibility level. It is a pure function:
// safe to call concurrently and total for every input within the domain
// constraints. Out-of-enum values and negative counts fail with
// [ErrInvalidInput].
func Classify(input Input) (Result, error) {
	result, _, err := ClassifyWithBreakdown(input)
	return result, err
}

// ClassifyWithBreakdown is [Classify] plus the intermediate sub-scores, so
// callers and tests can inspect how a score came together without the
// classifier writing to an output stream.
func ClassifyWithBreakdown(input Input) (Result, Breakdown, error) {
	if err := input.Validate(); err != nil {
		return Result{}, Breakdown{}, err
	}

	breakdown := Breakdown{
		DirectReports:       directReportScore(input.DirectReportCount, input.HasIndirectReports),
		JobFunction:         jobFunctionScores[input.JobFunction],
		DecisionScope:       decisionScopeScores[input.DecisionScope],
		OrganizationalDepth: organizationalDepthScore(input.LevelsToCEO),
		Budget:              budgetScores[input.BudgetScope],
	}

	breakdown.WeightedTotal = breakdown.DirectReports*weightDirectReports +
		breakdown.JobFunction*weightJobFunction +
		breakdown.DecisionScope*weightDecisionScope +
		breakdown.OrganizationalDepth*weightOrgDepth +
		breakdown.Budget*weightBudget

	// Respondents with purely operational decision authority do not get
	// credit for managing other managers.
	if input.DecisionScope != DecisionScopeOperational {
		breakdown.RoleBonus = roleComplexityBonus(input.ReportingRoleTitles)
	}

	breakdown.Floor = jobFunctionFloors[input.JobFunction]
	breakdown.Final = breakdown.WeightedTotal + breakdown.RoleBonus
	if breakdown.Final < breakdown.Floor {
		breakdown.Final = breakdown.Floor
	}

	name := thresholds[len(thresholds)-1].name
	for _, threshold := range thresholds {
		if breakdown.Final <= threshold.bound {
			name = threshold.name
			break
		}
	}

	level, index, err := levels.ByName(name)
	if err != nil {
		return Result{}, Breakdown{}, errors.Wrap(ErrNoCatalogEntry, "threshold table out of sync",
			slog.String("name", name))
	}

	result := Result{
		LevelIndex:  index,
		RoleName:    level.Name,
		Description: level.Description,
		NarrativeV1: level.NarrativeV1,
		NarrativeV2: level.NarrativeV2,
	}
	return result, breakdown, nil
}

func directReportScore(count int, hasIndirectReports bool) float64 {
	var score float64
	switch {
	case count == 0:
		score = 0.10
	case count <= 5:
		score = 0.25
	case count <= 8:
		score = 0.35
	case count <= 12:
		score = 0.45
	case count <= 20:
		score = 0.60
	default:
		score = 0.70
	}
	if hasIndirectReports {
		score += 0.10
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func organizationalDepthScore(levelsToCEO int) float64 {
	switch {
	case levelsToCEO <= 1:
		return 1.0
	case levelsToCEO <= 2:
		return 0.8
	case levelsToCEO <= 3:
		return 0.6
	case levelsToCEO <= 4:
		return 0.4
	default:
		return 0.2
	}
}

func roleComplexityBonus(titles string) float64 {
	lowered := strings.ToLower(titles)
	var bonus float64
	for _, candidate := range roleBonuses {
		for _, keyword := range candidate.keywords {
			if strings.Contains(lowered, keyword) {
				bonus += candidate.bonus
				break
			}
		}
	}
	return bonus
}
