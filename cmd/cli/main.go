package main

import (
	"fmt"
	"os"

	"github.com/RaheesAhmed/growthcompass/cmd/cli/classify"
	"github.com/RaheesAhmed/growthcompass/cmd/cli/themecheck"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func init() {
	_ = godotenv.Load()
	rootCmd.AddGroup(classify.Group)
	rootCmd.AddCommand(classify.Classify)
	rootCmd.AddGroup(themecheck.Group)
	rootCmd.AddCommand(themecheck.Themes)
}

var rootCmd = &cobra.Command{
	Use:  "growthcompass-cli",
	Long: `Command line utilities for GrowthCompass`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
