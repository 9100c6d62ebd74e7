package classifier

import (
	"log/slog"

	"github.com/RaheesAhmed/growthcompass/internal/errors"
)

// JobFunction is the self-reported job function tier, ordered from
// individual contributor to C-level.
type JobFunction string

const (
	JobFunctionIndividualContributor JobFunction = "individual_contributor"
	JobFunctionTeamLead              JobFunction = "team_lead"
	JobFunctionDepartmentManager     JobFunction = "department_manager"
	JobFunctionSeniorManager         JobFunction = "senior_manager"
	JobFunctionDirector              JobFunction = "director"
	JobFunctionExecutive             JobFunction = "executive"
	JobFunctionCLevel                JobFunction = "c_level"
)

// JobFunctions lists the tiers in ascending order of scope.
func JobFunctions() []JobFunction {
	return []JobFunction{
		JobFunctionIndividualContributor,
		JobFunctionTeamLead,
		JobFunctionDepartmentManager,
		JobFunctionSeniorManager,
		JobFunctionDirector,
		JobFunctionExecutive,
		JobFunctionCLevel,
	}
}

// DecisionScope is the self-reported decision-making horizon.
type DecisionScope string

const (
	DecisionScopeOperational DecisionScope = "operational"
	DecisionScopeTactical    DecisionScope = "tactical"
	DecisionScopeStrategic   DecisionScope = "strategic"
)

// BudgetScope is the breadth of budget the respondent is responsible for.
type BudgetScope string

const (
	BudgetScopeNone                BudgetScope = "none"
	BudgetScopeDepartment          BudgetScope = "department"
	BudgetScopeMultipleDepartments BudgetScope = "multiple_departments"
	BudgetScopeCompanyWide         BudgetScope = "company_wide"
)

// Input is the structured description of a person's job that the classifier
// maps to a responsibility level.
type Input struct {
	// DirectReportCount is the number of people reporting directly to the respondent.
	DirectReportCount int
	// HasIndirectReports is true when people report through the respondent's reports.
	HasIndirectReports bool
	// JobFunction is the respondent's job function tier.
	JobFunction JobFunction
	// DecisionScope is the horizon of decisions the respondent typically makes.
	DecisionScope DecisionScope
	// LevelsToCEO is the number of organizational levels between the
	// respondent and the CEO. Smaller means closer to the top.
	LevelsToCEO int
	// BudgetScope is the breadth of budget responsibility.
	BudgetScope BudgetScope
	// ReportingRoleTitles is free text naming the titles of direct reports,
	// e.g. "Site Supervisors, Project Engineers".
	ReportingRoleTitles string
}

// ErrInvalidInput signals that an input field holds a value outside its
// domain. Classification never proceeds with a guessed default: an
// unrecognized enum value or a negative count fails the request so that the
// caller re-collects the answer instead of the respondent being silently
// misclassified.
var ErrInvalidInput = errors.NewSentinel("invalid classification input")

// Validate checks the domain constraints of the input and reports the first
// offending field.
func (in Input) Validate() error {
	if in.DirectReportCount < 0 {
		return errors.Wrap(ErrInvalidInput, "negative value",
			slog.String("field", "directReportCount"), slog.Int("value", in.DirectReportCount))
	}
	if in.LevelsToCEO < 0 {
		return errors.Wrap(ErrInvalidInput, "negative value",
			slog.String("field", "levelsToCEO"), slog.Int("value", in.LevelsToCEO))
	}
	switch in.JobFunction {
	case JobFunctionIndividualContributor, JobFunctionTeamLead, JobFunctionDepartmentManager,
		JobFunctionSeniorManager, JobFunctionDirector, JobFunctionExecutive, JobFunctionCLevel:
	default:
		return errors.Wrap(ErrInvalidInput, "unrecognized value",
			slog.String("field", "jobFunctionTier"), slog.String("value", string(in.JobFunction)))
	}
	switch in.DecisionScope {
	case DecisionScopeOperational, DecisionScopeTactical, DecisionScopeStrategic:
	default:
		return errors.Wrap(ErrInvalidInput, "unrecognized value",
			slog.String("field", "decisionScope"), slog.String("value", string(in.DecisionScope)))
	}
	switch in.BudgetScope {
	case BudgetScopeNone, BudgetScopeDepartment, BudgetScopeMultipleDepartments, BudgetScopeCompanyWide:
	default:
		return errors.Wrap(ErrInvalidInput, "unrecognized value",
			slog.String("field", "budgetScope"), slog.String("value", string(in.BudgetScope)))
	}
	return nil
}
