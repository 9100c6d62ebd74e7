// Package classify exposes the responsibility-level classifier on the
// command line for trying out inputs without running the web app.
package classify

import (
	"fmt"
	"os"

	"github.com/RaheesAhmed/growthcompass/internal/classifier"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "classify",
	Title: "Classification operations",
}

func init() {
	Classify.Flags().Int("direct-reports", 0, "number of direct reports")
	Classify.Flags().Bool("indirect-reports", false, "people report through your direct reports")
	Classify.Flags().String("job-function", "individual_contributor", "job function tier")
	Classify.Flags().String("decision-scope", "operational", "decision scope: operational, tactical, or strategic")
	Classify.Flags().Int("levels-to-ceo", 0, "organizational levels between you and the CEO")
	Classify.Flags().String("budget-scope", "none", "budget scope: none, department, multiple_departments, or company_wide")
	Classify.Flags().String("reporting-titles", "", "job titles of your direct reports")
}

var Classify = &cobra.Command{
	Use:     "classify",
	GroupID: "classify",
	Short:   "Classify a role",
	Long:    `Maps a role description to one of the ten responsibility levels and prints the score breakdown.`,
	Run: func(cmd *cobra.Command, _ []string) {
		input := classifier.Input{}
		flags := cmd.Flags()
		input.DirectReportCount, _ = flags.GetInt("direct-reports")
		input.HasIndirectReports, _ = flags.GetBool("indirect-reports")
		jobFunction, _ := flags.GetString("job-function")
		input.JobFunction = classifier.JobFunction(jobFunction)
		decisionScope, _ := flags.GetString("decision-scope")
		input.DecisionScope = classifier.DecisionScope(decisionScope)
		input.LevelsToCEO, _ = flags.GetInt("levels-to-ceo")
		budgetScope, _ := flags.GetString("budget-scope")
		input.BudgetScope = classifier.BudgetScope(budgetScope)
		input.ReportingRoleTitles, _ = flags.GetString("reporting-titles")

		result, breakdown, err := classifier.ClassifyWithBreakdown(input)
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Printf("Level %d: %s\n", result.LevelIndex+1, result.RoleName)
		fmt.Printf("%s\n\n", result.Description)
		fmt.Println("Score breakdown:")
		fmt.Printf("  direct reports        %.2f\n", breakdown.DirectReports)
		fmt.Printf("  job function          %.2f\n", breakdown.JobFunction)
		fmt.Printf("  decision scope        %.2f\n", breakdown.DecisionScope)
		fmt.Printf("  organizational depth  %.2f\n", breakdown.OrganizationalDepth)
		fmt.Printf("  budget                %.2f\n", breakdown.Budget)
		fmt.Printf("  weighted total        %.2f\n", breakdown.WeightedTotal)
		fmt.Printf("  role bonus            %.2f\n", breakdown.RoleBonus)
		fmt.Printf("  floor                 %.2f\n", breakdown.Floor)
		fmt.Printf("  final score           %.2f\n", breakdown.Final)
	},
}
