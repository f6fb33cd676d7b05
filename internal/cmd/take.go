package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/screening/internal/assessment"
	"github.com/harrison/screening/internal/catalog"
	"github.com/harrison/screening/internal/models"
	"github.com/harrison/screening/internal/render"
)

// errInputEnded is returned when stdin closes before the assessment completes
var errInputEnded = errors.New("input ended before the assessment was complete")

// errQuit is returned when the user quits part way through
var errQuit = errors.New("assessment abandoned")

// errBackToQuestion leaves the follow-ups for the final question again
var errBackToQuestion = errors.New("back to the final question")

// NewTakeCommand creates the interactive take subcommand
func NewTakeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "take",
		Short: "Take the substance use assessment interactively",
		Long: `Walk through each question and answer with the number of the option
that fits best. Enter "b" to go back one question or "q" to quit.

The final question is followed by a few unscored follow-up questions that
tailor the safety guidance. Press Enter to skip any follow-up, "b" to return
to the final question, or "q" to quit.

Nothing is saved except the result summary, and only when lead recording
is enabled.`,
		Args: cobra.NoArgs,
		RunE: runTake,
	}

	cmd.Flags().String("format", "", "Result format: text or html")
	cmd.Flags().Bool("record", true, "Record the result summary as a lead")

	return cmd
}

func runTake(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd, stringFlag(cmd, "format"), boolFlag(cmd, "record"))
	if err != nil {
		return err
	}
	defer a.close()

	cat := catalog.SubstanceUse()
	sess := assessment.NewSession(cat)
	a.log.LogSessionStart(sess.ID(), cat.ID(), cat.Len())

	out := cmd.OutOrStdout()
	p := &prompter{
		in:  bufio.NewScanner(cmd.InOrStdin()),
		out: out,
		bar: render.NewProgressBar(24, a.useColor(out)),
	}
	if err := runQuestions(p, sess); err != nil {
		return err
	}

	fmt.Fprintln(p.out)
	return a.finish(cmd.Context(), sess, p.out)
}

// prompter reads one line of input per prompt
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
	bar *render.ProgressBar
}

func (p *prompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errInputEnded
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// askFollowUp is ask with the "q" and "b" commands every follow-up accepts
func (p *prompter) askFollowUp(prompt string) (string, error) {
	line, err := p.ask(prompt)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(line) {
	case "q", "quit":
		return "", errQuit
	case "b", "back":
		return "", errBackToQuestion
	}
	return line, nil
}

// runQuestions drives the session from the first question to completion
func runQuestions(p *prompter, sess *assessment.Session) error {
	cat := sess.Catalog()
	fmt.Fprintf(p.out, "%s\n\n%s\n", cat.Title(), cat.Intro())

	for !sess.IsComplete() {
		idx := sess.CurrentIndex()
		q := sess.CurrentQuestion()
		if p.bar != nil {
			fmt.Fprintf(p.out, "\n%s", p.bar.Render(len(sess.Responses()), cat.Len()))
		}
		fmt.Fprintf(p.out, "\nQuestion %d of %d: %s\n", idx+1, cat.Len(), q.Prompt)
		for _, opt := range q.Scale {
			marker := " "
			if v, ok := sess.Answer(idx); ok && v == opt.Value {
				marker = "*"
			}
			fmt.Fprintf(p.out, " %s %d) %s\n", marker, opt.Value, opt.Label)
		}

		line, err := p.ask("> ")
		if err != nil {
			return err
		}

		switch strings.ToLower(line) {
		case "q", "quit":
			return errQuit
		case "b", "back":
			if err := sess.Retreat(); err != nil {
				fmt.Fprintln(p.out, "You are on the first question.")
			}
			continue
		case "":
			// Keep an earlier answer when going forward again
			v, ok := sess.Answer(idx)
			if !ok {
				fmt.Fprintln(p.out, "Please choose an option.")
				continue
			}
			fmt.Fprintf(p.out, "Keeping: %s\n", q.Label(v))
		default:
			value, convErr := strconv.Atoi(line)
			if convErr != nil || sess.SetAnswer(idx, value) != nil {
				fmt.Fprintf(p.out, "Please enter a number from %d to %d.\n", q.Scale[0].Value, q.MaxValue())
				continue
			}
		}

		if sess.OnFinalQuestion() {
			err := askFollowUps(p, sess)
			if errors.Is(err, errBackToQuestion) {
				continue
			}
			if err != nil {
				return err
			}
			printFollowUpRecap(p, sess)
		}
		if err := sess.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// askFollowUps collects the unscored follow-up answers on the final question.
// Nothing reaches the session until every prompt has been answered or skipped,
// so going back part way leaves the follow-ups untouched.
func askFollowUps(p *prompter, sess *assessment.Session) error {
	fmt.Fprintln(p.out, "\nA few more questions help tailor your results. Press Enter to skip any of them, or \"b\" to go back.")
	var apply []func() error

	primary, err := chooseOne(p, "Which substance do you use most?", substanceLabels())
	if err != nil {
		return err
	}
	if primary >= 0 {
		sub := models.Substances[primary]
		apply = append(apply, func() error { return sess.SetPrimarySubstance(sub) })
	}

	route, err := chooseOne(p, "How do you usually take it?", routeLabels())
	if err != nil {
		return err
	}
	if route >= 0 {
		r := models.Routes[route]
		apply = append(apply, func() error { return sess.SetRoute(r) })
	}

	coUse, err := chooseMany(p, "Do you also use any of these? (comma-separated numbers)", substanceLabels())
	if err != nil {
		return err
	}
	for _, i := range coUse {
		sub := models.Substances[i]
		apply = append(apply, func() error { return sess.ToggleCoUse(sub, true) })
	}

	yesNo := []struct {
		prompt string
		set    func(bool) error
	}{
		{"Have you ever had an overdose? (y/n)", sess.SetPastOverdose},
		{"Do you have naloxone (Narcan) on hand? (y/n)", sess.SetNaloxoneAccess},
		{"Are you currently pregnant? (y/n)", sess.SetPregnancy},
		{"Has use made it hard to keep up with basic daily life, like work, bills, or eating? (y/n)", sess.SetFunctionalCollapse},
	}
	for _, item := range yesNo {
		item := item
		answer, answered, err := askYesNo(p, item.prompt)
		if err != nil {
			return err
		}
		if answered {
			apply = append(apply, func() error { return item.set(answer) })
		}
	}

	for _, fn := range apply {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// printFollowUpRecap echoes the follow-up answers back before scoring
func printFollowUpRecap(p *prompter, sess *assessment.Session) {
	f := sess.FollowUps()
	var parts []string
	if f.PrimarySubstance != "" {
		parts = append(parts, "primary "+string(f.PrimarySubstance))
	}
	if f.Route != "" {
		parts = append(parts, "route "+string(f.Route))
	}
	if len(f.CoUse) > 0 {
		names := make([]string, len(f.CoUse))
		for i, c := range f.CoUse {
			names[i] = string(c)
		}
		parts = append(parts, "also "+strings.Join(names, ", "))
	}
	if models.IsTrue(f.PastOverdose) {
		parts = append(parts, "past overdose")
	}
	if f.NaloxoneAccess != nil {
		if *f.NaloxoneAccess {
			parts = append(parts, "naloxone on hand")
		} else {
			parts = append(parts, "no naloxone on hand")
		}
	}
	if models.IsTrue(f.Pregnancy) {
		parts = append(parts, "pregnant")
	}
	if sess.FunctionalCollapse() {
		parts = append(parts, "daily life affected")
	}
	if len(parts) == 0 {
		return
	}
	fmt.Fprintf(p.out, "\nNoted: %s.\n", strings.Join(parts, "; "))
}

func substanceLabels() []string {
	out := make([]string, len(models.Substances))
	for i, s := range models.Substances {
		out[i] = string(s)
	}
	return out
}

func routeLabels() []string {
	out := make([]string, len(models.Routes))
	for i, r := range models.Routes {
		out[i] = string(r)
	}
	return out
}

func printOptions(p *prompter, prompt string, options []string) {
	fmt.Fprintf(p.out, "\n%s\n", prompt)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
}

// chooseOne returns a zero-based option index, or -1 when skipped
func chooseOne(p *prompter, prompt string, options []string) (int, error) {
	printOptions(p, prompt, options)
	for {
		line, err := p.askFollowUp("> ")
		if err != nil {
			return -1, err
		}
		if line == "" {
			return -1, nil
		}
		n, convErr := strconv.Atoi(line)
		if convErr == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "Please enter a number from 1 to %d, or press Enter to skip.\n", len(options))
	}
}

// chooseMany returns zero-based option indexes in the order entered
func chooseMany(p *prompter, prompt string, options []string) ([]int, error) {
	printOptions(p, prompt, options)
	for {
		line, err := p.askFollowUp("> ")
		if err != nil {
			return nil, err
		}
		if line == "" {
			return nil, nil
		}

		var picked []int
		valid := true
		for _, part := range strings.Split(line, ",") {
			n, convErr := strconv.Atoi(strings.TrimSpace(part))
			if convErr != nil || n < 1 || n > len(options) {
				valid = false
				break
			}
			picked = append(picked, n-1)
		}
		if valid {
			return picked, nil
		}
		fmt.Fprintf(p.out, "Please enter numbers from 1 to %d separated by commas, or press Enter to skip.\n", len(options))
	}
}

// askYesNo returns the answer and whether one was given
func askYesNo(p *prompter, prompt string) (bool, bool, error) {
	for {
		line, err := p.askFollowUp(prompt + " ")
		if err != nil {
			return false, false, err
		}
		switch strings.ToLower(line) {
		case "":
			return false, false, nil
		case "y", "yes":
			return true, true, nil
		case "n", "no":
			return false, true, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n, or press Enter to skip.")
	}
}
