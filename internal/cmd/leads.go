package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/screening/internal/config"
	"github.com/harrison/screening/internal/leads"
	"github.com/harrison/screening/internal/models"
)

// NewLeadsCommand creates the leads parent command
func NewLeadsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Inspect recorded assessment leads",
		Long: `Leads are the result summaries handed to the scheduling team when an
assessment is completed with recording enabled.`,
	}

	cmd.AddCommand(newLeadsListCommand())
	cmd.AddCommand(newLeadsExportCommand())

	return cmd
}

func newLeadsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent leads",
		Args:  cobra.NoArgs,
		RunE:  runLeadsList,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of leads to show (0 for all)")

	return cmd
}

func runLeadsList(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd, nil, nil)
	if err != nil {
		return err
	}
	defer a.close()
	out := cmd.OutOrStdout()

	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("--limit must be zero or positive, got %d", limit)
	}

	store, err := openLeadStore(a, out)
	if err != nil || store == nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	list, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No leads recorded yet.")
		return nil
	}

	priorityTotal, err := store.CountPriority(ctx)
	if err != nil {
		return err
	}

	red := color.New(color.FgRed, color.Bold)
	gray := color.New(color.FgHiBlack)
	if a.useColor(out) {
		red.EnableColor()
		gray.EnableColor()
	} else {
		red.DisableColor()
		gray.DisableColor()
	}

	for _, l := range list {
		gray.Fprintf(out, "%s ", l.CompletedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintf(out, "%-8s %2d/%-2d %s", models.Tier(l.Severity).Title(), l.Score, l.MaxScore, l.SessionID)
		if l.Priority {
			red.Fprint(out, "  PRIORITY")
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "\n%d shown, %d priority overall\n", len(list), priorityTotal)
	return nil
}

// openLeadStore opens the configured lead database. It returns a nil store,
// after telling the user why, when there is nothing to read.
func openLeadStore(a *app, out io.Writer) (*leads.SQLiteStore, error) {
	dbPath := config.ResolvePath(a.home, a.cfg.Leads.DBPath)
	if dbPath == "" {
		fmt.Fprintln(out, "No lead database configured.")
		return nil, nil
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(out, "No leads recorded yet (%s).\n", dbPath)
		return nil, nil
	}

	store, err := leads.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open lead store: %w", err)
	}
	return store, nil
}

func newLeadsExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy stored leads into the JSON export file",
		Long: `Append every lead in the database that the JSON export file does not
already hold, oldest first. Leads are matched by session id, so running the
export again only adds what is new.

The file defaults to leads.export_path from the config.`,
		Args: cobra.NoArgs,
		RunE: runLeadsExport,
	}

	cmd.Flags().String("to", "", "Export file, relative to the screening home (overrides leads.export_path)")

	return cmd
}

func runLeadsExport(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd, nil, nil)
	if err != nil {
		return err
	}
	defer a.close()
	out := cmd.OutOrStdout()

	target := a.cfg.Leads.ExportPath
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		target = to
	}
	if target == "" {
		return fmt.Errorf("no export file: set leads.export_path or pass --to")
	}
	sink := leads.NewFileSink(config.ResolvePath(a.home, target))

	store, err := openLeadStore(a, out)
	if err != nil || store == nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	stored, err := store.List(ctx, 0)
	if err != nil {
		return err
	}
	existing, err := sink.ReadAll()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s.SessionID] = true
	}

	added := 0
	// List is newest first
	for i := len(stored) - 1; i >= 0; i-- {
		s := stored[i].Summary
		if s.SessionID != "" && seen[s.SessionID] {
			continue
		}
		if err := sink.Record(ctx, s); err != nil {
			return fmt.Errorf("export lead %s: %w", s.SessionID, err)
		}
		seen[s.SessionID] = true
		added++
	}

	a.log.LogInfo(fmt.Sprintf("exported %d of %d leads to %s", added, len(stored), sink.Path()))
	fmt.Fprintf(out, "Exported %d new leads to %s\n", added, sink.Path())
	return nil
}
