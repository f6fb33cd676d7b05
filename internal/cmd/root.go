package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for screening
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screening",
		Short: "Self-administered mental health screening assessments",
		Long: `Screening runs self-administered assessments such as the substance use
screener: it walks through each question, collects follow-up answers on the
final step, scores the result, and shows tiered recommendations with any
safety guidance that applies.

Completed results are recorded as leads for the scheduling team unless
recording is turned off.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default $SCREENING_HOME/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().String("color", "", "Color output: auto, always, never")

	cmd.AddCommand(NewTakeCommand())
	cmd.AddCommand(NewScoreCommand())
	cmd.AddCommand(NewCatalogCommand())
	cmd.AddCommand(NewLeadsCommand())

	return cmd
}
