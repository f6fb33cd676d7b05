package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/screening/internal/assessment"
	"github.com/harrison/screening/internal/config"
	"github.com/harrison/screening/internal/leads"
	"github.com/harrison/screening/internal/logger"
	"github.com/harrison/screening/internal/render"
	"github.com/harrison/screening/internal/scoring"
)

// app bundles what every command needs after flags and config are resolved
type app struct {
	cfg     *config.Config
	home    string
	log     logger.Logger
	closers []func() error
}

// loadApp resolves config from file then flags, and builds the logger
func loadApp(cmd *cobra.Command, format *string, record *bool) (*app, error) {
	home, err := config.GetHome()
	if err != nil {
		return nil, err
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path, err = config.ConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	cfg.MergeWithFlags(stringFlag(cmd, "log-level"), format, stringFlag(cmd, "color"), record)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &app{
		cfg:  cfg,
		home: home,
		log:  logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel),
	}

	if cfg.LogDir != "" {
		fl, err := logger.NewFileLogger(config.ResolvePath(home, cfg.LogDir), cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		a.log = logger.MultiLogger{a.log, fl}
		a.closers = append(a.closers, fl.Close)
		a.log.LogDebug("file logging to " + fl.RunFile())
	}
	a.log.LogTrace(fmt.Sprintf("home %s, config %s", home, path))

	return a, nil
}

// close releases anything loadApp opened
func (a *app) close() {
	for _, c := range a.closers {
		c()
	}
}

// stringFlag returns the flag value only when the user set it
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

// useColor decides whether output to w gets ANSI colors
func (a *app) useColor(w io.Writer) bool {
	switch a.cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return logger.IsTerminal(w)
	}
}

// openSinks builds the configured lead sinks and names them for logging.
// The returned close func is always safe to call.
func (a *app) openSinks() (leads.Sink, string, func(), error) {
	noop := func() {}
	if !a.cfg.Leads.Enabled {
		return nil, "", noop, nil
	}

	dbPath := config.ResolvePath(a.home, a.cfg.Leads.DBPath)
	store, err := leads.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, "", noop, fmt.Errorf("open lead store: %w", err)
	}
	sinks := leads.Multi{store}
	names := []string{dbPath}
	if a.cfg.Leads.ExportPath != "" {
		export := leads.NewFileSink(config.ResolvePath(a.home, a.cfg.Leads.ExportPath))
		sinks = append(sinks, export)
		names = append(names, export.Path())
	}
	return sinks, strings.Join(names, ", "), func() { store.Close() }, nil
}

// finish scores a completed session, renders it to out, and hands the
// summary to the lead sinks.
func (a *app) finish(ctx context.Context, sess *assessment.Session, out io.Writer) error {
	verdict, err := sess.Verdict()
	if err != nil {
		return err
	}
	summary, err := sess.Summary()
	if err != nil {
		return err
	}
	a.log.LogVerdict(summary, verdict.Flags)

	view := scoring.BuildRecommendations(verdict)
	switch a.cfg.OutputFormat {
	case config.FormatHTML:
		if err := render.NewHTMLRenderer(a.cfg.ContactURL).Render(out, verdict, view); err != nil {
			return err
		}
	default:
		if err := render.Text(out, verdict, view, a.useColor(out)); err != nil {
			return err
		}
	}

	sink, sinkNames, closeSinks, err := a.openSinks()
	if err != nil {
		a.log.LogError(err.Error())
		return err
	}
	defer closeSinks()
	if sink == nil {
		a.log.LogDebug("lead recording disabled")
		return nil
	}

	if err := sink.Record(ctx, summary); err != nil {
		a.log.LogError(fmt.Sprintf("failed to record lead: %v", err))
		return fmt.Errorf("record lead: %w", err)
	}
	a.log.LogLeadRecorded(summary, sinkNames)
	return nil
}
