package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/screening/internal/assessment"
	"github.com/harrison/screening/internal/catalog"
	"github.com/harrison/screening/internal/models"
)

// NewScoreCommand creates the non-interactive score subcommand
func NewScoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a full set of answers without prompting",
		Long: `Score answers supplied on the command line, one value per question in
catalog order. Follow-up answers are optional flags.

Substances: alcohol, cannabis, opioids, stimulants, benzodiazepines, other
Routes:     swallow, smoke, snort, inject

Examples:
  screening score --answers 0,1,0,0,0,0,0,0
  screening score --answers 3,3,3,3,3,3,3,3 --primary opioids --route inject --naloxone=false
  screening score --answers 2,2,2,2,0,2,2,2 --co-use alcohol,benzodiazepines --format html`,
		Args: cobra.NoArgs,
		RunE: runScore,
	}

	cmd.Flags().String("answers", "", "Comma-separated answer values in question order (required)")
	cmd.Flags().String("primary", "", "Primary substance")
	cmd.Flags().String("route", "", "Primary route of use")
	cmd.Flags().String("co-use", "", "Comma-separated substances also used")
	cmd.Flags().Bool("past-overdose", false, "Has had an overdose")
	cmd.Flags().Bool("naloxone", false, "Has naloxone on hand")
	cmd.Flags().Bool("pregnant", false, "Is currently pregnant")
	cmd.Flags().Bool("collapse", false, "Use has made basic daily life hard to keep up with")
	cmd.Flags().String("format", "", "Result format: text or html")
	cmd.Flags().Bool("record", false, "Record the result summary as a lead")
	_ = cmd.MarkFlagRequired("answers")

	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	cat := catalog.SubstanceUse()
	answers, err := parseAnswers(mustString(cmd, "answers"), cat.Len())
	if err != nil {
		return err
	}

	// Scripted scoring records leads only with --record
	record, _ := cmd.Flags().GetBool("record")
	a, err := loadApp(cmd, stringFlag(cmd, "format"), &record)
	if err != nil {
		return err
	}
	defer a.close()

	sess := assessment.NewSession(cat)
	a.log.LogSessionStart(sess.ID(), cat.ID(), cat.Len())

	for i, v := range answers {
		if err := sess.SetAnswer(i, v); err != nil {
			return err
		}
		if sess.OnFinalQuestion() {
			if err := applyFollowUpFlags(cmd, sess); err != nil {
				return err
			}
		}
		if err := sess.Advance(); err != nil {
			return err
		}
	}

	return a.finish(cmd.Context(), sess, cmd.OutOrStdout())
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

// parseAnswers reads exactly n comma-separated integers
func parseAnswers(raw string, n int) ([]int, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d answers, got %d", n, len(parts))
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("answer %d: %q is not a number", i+1, p)
		}
		out[i] = v
	}
	return out, nil
}

// applyFollowUpFlags copies any follow-up flags the user set onto the session
func applyFollowUpFlags(cmd *cobra.Command, sess *assessment.Session) error {
	if v := stringFlag(cmd, "primary"); v != nil {
		sub, err := matchSubstance(*v)
		if err != nil {
			return err
		}
		if err := sess.SetPrimarySubstance(sub); err != nil {
			return err
		}
	}

	if v := stringFlag(cmd, "route"); v != nil {
		route, err := matchRoute(*v)
		if err != nil {
			return err
		}
		if err := sess.SetRoute(route); err != nil {
			return err
		}
	}

	if v := stringFlag(cmd, "co-use"); v != nil && strings.TrimSpace(*v) != "" {
		for _, name := range strings.Split(*v, ",") {
			sub, err := matchSubstance(name)
			if err != nil {
				return err
			}
			if err := sess.ToggleCoUse(sub, true); err != nil {
				return err
			}
		}
	}

	setters := []struct {
		flag string
		set  func(bool) error
	}{
		{"past-overdose", sess.SetPastOverdose},
		{"naloxone", sess.SetNaloxoneAccess},
		{"pregnant", sess.SetPregnancy},
		{"collapse", sess.SetFunctionalCollapse},
	}
	for _, s := range setters {
		if v := boolFlag(cmd, s.flag); v != nil {
			if err := s.set(*v); err != nil {
				return err
			}
		}
	}
	return nil
}

// matchOption finds the single label that starts with name, ignoring case
func matchOption(kind, name string, labels []string) (int, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return -1, fmt.Errorf("empty %s", kind)
	}

	found := -1
	for i, label := range labels {
		if !strings.HasPrefix(strings.ToLower(label), needle) {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("ambiguous %s %q", kind, name)
		}
		found = i
	}
	if found < 0 {
		return -1, fmt.Errorf("unknown %s %q, must be one of: %s", kind, name, strings.Join(labels, ", "))
	}
	return found, nil
}

func matchSubstance(name string) (models.Substance, error) {
	i, err := matchOption("substance", name, substanceLabels())
	if err != nil {
		return "", err
	}
	return models.Substances[i], nil
}

func matchRoute(name string) (models.Route, error) {
	i, err := matchOption("route", name, routeLabels())
	if err != nil {
		return "", err
	}
	return models.Routes[i], nil
}
