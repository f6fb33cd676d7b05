package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/screening/internal/catalog"
)

// NewCatalogCommand creates the catalog subcommand
func NewCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the assessment questions and answer scale",
		Args:  cobra.NoArgs,
		RunE:  runCatalog,
	}
}

func runCatalog(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd, nil, nil)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	cat := catalog.SubstanceUse()

	heading := color.New(color.FgCyan, color.Bold)
	gray := color.New(color.FgHiBlack)
	if a.useColor(out) {
		heading.EnableColor()
		gray.EnableColor()
	} else {
		heading.DisableColor()
		gray.DisableColor()
	}

	heading.Fprintf(out, "%s (%s)\n", cat.Title(), cat.ID())
	fmt.Fprintf(out, "%d questions, maximum score %d\n\n", cat.Len(), cat.MaxScore())

	heading.Fprintln(out, "Scale:")
	for _, opt := range cat.Scale() {
		fmt.Fprintf(out, "  %d  %s\n", opt.Value, opt.Label)
	}
	fmt.Fprintln(out)

	heading.Fprintln(out, "Questions:")
	for _, q := range cat.Questions() {
		fmt.Fprintf(out, "  %d. %s ", q.Index+1, q.Prompt)
		gray.Fprintf(out, "[%s]\n", q.ID)
	}
	return nil
}
