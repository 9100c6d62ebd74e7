package classifier_test

import (
	"testing"

	"github.com/RaheesAhmed/growthcompass/internal/classifier"
	"github.com/RaheesAhmed/growthcompass/internal/levels"
	"github.com/stretchr/testify/require"
)

func validInput() classifier.Input {
	return classifier.Input{
		DirectReportCount:   3,
		HasIndirectReports:  false,
		JobFunction:         classifier.JobFunctionTeamLead,
		DecisionScope:       classifier.DecisionScopeOperational,
		LevelsToCEO:         4,
		BudgetScope:         classifier.BudgetScopeNone,
		ReportingRoleTitles: "Technicians",
	}
}

func TestClassifyReturnsCatalogEntry(t *testing.T) {
	t.Parallel()
	catalog := levels.Catalog()

	// Sweep the enumerated dimensions: every combination must classify to a
	// valid catalog position whose narrative fields match the catalog entry.
	for _, jobFunction := range classifier.JobFunctions() {
		for _, decisionScope := range []classifier.DecisionScope{
			classifier.DecisionScopeOperational,
			classifier.DecisionScopeTactical,
			classifier.DecisionScopeStrategic,
		} {
			for _, budgetScope := range []classifier.BudgetScope{
				classifier.BudgetScopeNone,
				classifier.BudgetScopeDepartment,
				classifier.BudgetScopeMultipleDepartments,
				classifier.BudgetScopeCompanyWide,
			} {
				for _, reports := range []int{0, 1, 6, 9, 13, 25} {
					input := validInput()
					input.JobFunction = jobFunction
					input.DecisionScope = decisionScope
					input.BudgetScope = budgetScope
					input.DirectReportCount = reports

					result, err := classifier.Classify(input)
					require.NoError(t, err)
					require.GreaterOrEqual(t, result.LevelIndex, 0)
					require.Less(t, result.LevelIndex, levels.Count)
					entry := catalog[result.LevelIndex]
					require.Equal(t, entry.Name, result.RoleName)
					require.Equal(t, entry.Description, result.Description)
					require.Equal(t, entry.NarrativeV1, result.NarrativeV1)
					require.Equal(t, entry.NarrativeV2, result.NarrativeV2)
				}
			}
		}
	}
}

func TestClassifyJobFunctionMonotonicity(t *testing.T) {
	t.Parallel()
	for _, reports := range []int{0, 5, 10, 30} {
		previous := -1
		for _, jobFunction := range classifier.JobFunctions() {
			input := validInput()
			input.DirectReportCount = reports
			input.JobFunction = jobFunction

			result, err := classifier.Classify(input)
			require.NoError(t, err)
			require.GreaterOrEqual(t, result.LevelIndex, previous,
				"tier %s decreased the level", jobFunction)
			previous = result.LevelIndex
		}
	}
}

func TestClassifyCLevelFloor(t *testing.T) {
	t.Parallel()
	// The c_level floor of 0.85 lands in the <=0.86 bucket, so even the
	// weakest C-level input resolves to at least Senior Vice President.
	_, svpIndex, err := levels.ByName("Senior Vice President")
	require.NoError(t, err)

	input := classifier.Input{
		DirectReportCount:   0,
		HasIndirectReports:  false,
		JobFunction:         classifier.JobFunctionCLevel,
		DecisionScope:       classifier.DecisionScopeOperational,
		LevelsToCEO:         9,
		BudgetScope:         classifier.BudgetScopeNone,
		ReportingRoleTitles: "",
	}
	result, breakdown, err := classifier.ClassifyWithBreakdown(input)
	require.NoError(t, err)
	require.InDelta(t, 0.85, breakdown.Final, 1e-9)
	require.GreaterOrEqual(t, result.LevelIndex, svpIndex)
}

func TestClassifySeniorOperationsManager(t *testing.T) {
	t.Parallel()
	input := classifier.Input{
		DirectReportCount:   8,
		HasIndirectReports:  true,
		JobFunction:         classifier.JobFunctionSeniorManager,
		DecisionScope:       classifier.DecisionScopeTactical,
		LevelsToCEO:         2,
		BudgetScope:         classifier.BudgetScopeMultipleDepartments,
		ReportingRoleTitles: "Site Supervisors, Project Engineers, Safety Officers",
	}
	result, breakdown, err := classifier.ClassifyWithBreakdown(input)
	require.NoError(t, err)

	// Sub-scores: reports 0.35+0.10, job 0.7, decision 0.6, depth 0.8, budget 0.8.
	require.InDelta(t, 0.45, breakdown.DirectReports, 1e-9)
	require.InDelta(t, 0.7, breakdown.JobFunction, 1e-9)
	require.InDelta(t, 0.6, breakdown.DecisionScope, 1e-9)
	require.InDelta(t, 0.8, breakdown.OrganizationalDepth, 1e-9)
	require.InDelta(t, 0.8, breakdown.Budget, 1e-9)
	require.InDelta(t, 0.63, breakdown.WeightedTotal, 1e-9)
	// "Site Supervisors" matches the supervisor keyword.
	require.InDelta(t, 0.02, breakdown.RoleBonus, 1e-9)
	require.InDelta(t, 0.65, breakdown.Final, 1e-9)

	// 0.65 falls in the <=0.68 bucket.
	require.Equal(t, "Director", result.RoleName)
	require.Equal(t, 5, result.LevelIndex)
}

func TestClassifyRoleComplexityBonus(t *testing.T) {
	t.Parallel()
	input := validInput()
	input.DecisionScope = classifier.DecisionScopeStrategic
	input.ReportingRoleTitles = "VP of Engineering, Director of Operations, Plant Manager"

	_, breakdown, err := classifier.ClassifyWithBreakdown(input)
	require.NoError(t, err)
	// Bonuses accumulate: vp 0.05 + director 0.04 + manager 0.03.
	require.InDelta(t, 0.12, breakdown.RoleBonus, 1e-9)

	// Operational decision scope suppresses the bonus entirely.
	input.DecisionScope = classifier.DecisionScopeOperational
	_, breakdown, err = classifier.ClassifyWithBreakdown(input)
	require.NoError(t, err)
	require.Zero(t, breakdown.RoleBonus)
}

func TestClassifyFailsClosedOnInvalidInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*classifier.Input)
	}{
		{
			name:   "invalid decision scope",
			mutate: func(in *classifier.Input) { in.DecisionScope = "invalid_value" },
		},
		{
			name:   "invalid job function",
			mutate: func(in *classifier.Input) { in.JobFunction = "intern" },
		},
		{
			name:   "invalid budget scope",
			mutate: func(in *classifier.Input) { in.BudgetScope = "petty_cash" },
		},
		{
			name:   "negative direct reports",
			mutate: func(in *classifier.Input) { in.DirectReportCount = -1 },
		},
		{
			name:   "negative levels to CEO",
			mutate: func(in *classifier.Input) { in.LevelsToCEO = -3 },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			input := validInput()
			tt.mutate(&input)
			_, err := classifier.Classify(input)
			require.ErrorIs(t, err, classifier.ErrInvalidInput)
		})
	}
}

func TestClassifyTopOfScale(t *testing.T) {
	t.Parallel()
	input := classifier.Input{
		DirectReportCount:   40,
		HasIndirectReports:  true,
		JobFunction:         classifier.JobFunctionCLevel,
		DecisionScope:       classifier.DecisionScopeStrategic,
		LevelsToCEO:         0,
		BudgetScope:         classifier.BudgetScopeCompanyWide,
		ReportingRoleTitles: "Executive Vice Presidents, Senior Directors",
	}
	result, breakdown, err := classifier.ClassifyWithBreakdown(input)
	require.NoError(t, err)
	// The bonus pushes the score above every boundary; the terminal case
	// resolves to the top level.
	require.Greater(t, breakdown.Final, 1.0)
	require.Equal(t, "Chief Officer", result.RoleName)
	require.Equal(t, levels.Count-1, result.LevelIndex)
}
