// Package render formats assessment results for the terminal and for HTML.
//
// Both renderers take the same inputs: the verdict and the recommendation view
// built from it. The crisis resource block is always included.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/screening/internal/models"
	"github.com/harrison/screening/internal/scoring"
)

// colorScheme mirrors the tier and panel palette used in the terminal.
// Green: low tiers, Yellow: moderate, Red: severe and safety panels, Cyan: labels.
type colorScheme struct {
	ok      *color.Color
	warn    *color.Color
	danger  *color.Color
	label   *color.Color
	heading *color.Color
}

func newColorScheme(enabled bool) *colorScheme {
	cs := &colorScheme{
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		danger:  color.New(color.FgRed, color.Bold),
		label:   color.New(color.FgCyan),
		heading: color.New(color.Bold),
	}
	for _, c := range []*color.Color{cs.ok, cs.warn, cs.danger, cs.label, cs.heading} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return cs
}

func (cs *colorScheme) forTier(t models.Tier) *color.Color {
	switch t {
	case models.TierSevere:
		return cs.danger
	case models.TierModerate:
		return cs.warn
	default:
		return cs.ok
	}
}

// Text writes a plain-text result panel. Color codes are emitted only when
// useColor is true.
func Text(w io.Writer, v models.Verdict, view scoring.RecommendationView, useColor bool) error {
	cs := newColorScheme(useColor)
	var b strings.Builder

	tierColor := cs.forTier(v.Tier)
	fmt.Fprintf(&b, "%s %s\n", cs.label.Sprint("Result:"), tierColor.Sprint(v.Tier.Title()))
	fmt.Fprintf(&b, "%s %d / %d\n\n", cs.label.Sprint("Score:"), v.TotalScore, v.MaxScore)

	b.WriteString(cs.heading.Sprint(view.Headline))
	b.WriteString("\n")
	b.WriteString(view.Summary)
	b.WriteString("\n\n")

	writeList(&b, cs.label.Sprint("Today:"), view.Today)
	writeList(&b, cs.label.Sprint("This week:"), view.ThisWeek)

	for _, p := range view.Panels {
		b.WriteString(cs.danger.Sprint("! " + p.Title))
		b.WriteString("\n")
		for _, line := range strings.Split(plainMarkdown(p.Body), "\n") {
			if line == "" {
				continue
			}
			b.WriteString("    ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	cta := view.CTA.Label
	if view.CTA.Priority {
		b.WriteString(cs.danger.Sprint(">> " + cta))
	} else {
		b.WriteString(cs.ok.Sprint(">> " + cta))
	}
	b.WriteString("\n\n")

	b.WriteString(cs.heading.Sprint(crisisHeading))
	b.WriteString("\n")
	for _, r := range CrisisResources {
		fmt.Fprintf(&b, "  %s: %s\n", r.Name, r.Contact)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString("\n")
	for i, item := range items {
		fmt.Fprintf(b, "  %d. %s\n", i+1, item)
	}
	b.WriteString("\n")
}

// plainMarkdown strips the inline emphasis used in panel bodies
func plainMarkdown(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
