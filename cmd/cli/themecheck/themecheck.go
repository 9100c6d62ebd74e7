// Package themecheck previews which deep-dive themes a narrative yields,
// which is handy when editing the question bank content.
package themecheck

import (
	"fmt"
	"os"

	"github.com/RaheesAhmed/growthcompass/internal/levels"
	"github.com/RaheesAhmed/growthcompass/internal/questions"
	"github.com/RaheesAhmed/growthcompass/internal/themes"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "themes",
	Title: "Question bank operations",
}

func init() {
	Themes.Flags().Int("level", 0, "responsibility level index (0-9)")
}

var Themes = &cobra.Command{
	Use:     "themes [capability]",
	GroupID: "themes",
	Short:   "Preview deep-dive themes",
	Long:    `Parses the capability narrative for the given level and prints the themes and generated questions.`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetInt("level")
		if level < 0 || level >= levels.Count {
			_, _ = fmt.Fprintf(os.Stderr, "level must be between 0 and %d\n", levels.Count-1)
			os.Exit(1)
		}

		bank, err := questions.Load()
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		narrative, err := bank.Narrative(args[0], level)
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		deepDive := themes.BuildQuestions(args[0], narrative)
		if len(deepDive) == 0 {
			fmt.Println("no themes found")
			return
		}
		for _, question := range deepDive {
			fmt.Printf("%s\n  theme: %s\n  %s\n", question.ID, question.Theme, question.Prompt)
		}
	},
}
