package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ProgressBar renders how far through an assessment the respondent is
type ProgressBar struct {
	width    int
	useColor bool
}

// NewProgressBar creates a bar width characters wide. Widths below 1 use 10.
func NewProgressBar(width int, useColor bool) *ProgressBar {
	if width < 1 {
		width = 10
	}
	return &ProgressBar{width: width, useColor: useColor}
}

// Render returns "[===   ] answered/total (pct%)". Out of range counts are clamped.
func (pb *ProgressBar) Render(answered, total int) string {
	perc := 0
	if total > 0 {
		perc = answered * 100 / total
	}
	perc = max(0, min(perc, 100))
	filled := perc * pb.width / 100

	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", pb.width-filled) + "]"
	result := fmt.Sprintf("%s %d/%d (%d%%)", bar, answered, total, perc)

	c := color.New(color.FgCyan)
	if perc == 100 {
		c = color.New(color.FgGreen)
	}
	if pb.useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(result)
}
