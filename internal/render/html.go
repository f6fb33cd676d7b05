package render

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/harrison/screening/internal/models"
	"github.com/harrison/screening/internal/scoring"
)

// HTMLRenderer converts a result view to an HTML fragment via Markdown
type HTMLRenderer struct {
	markdown   goldmark.Markdown
	contactURL string
}

// NewHTMLRenderer creates a renderer whose call to action links to contactURL
func NewHTMLRenderer(contactURL string) *HTMLRenderer {
	return &HTMLRenderer{
		markdown:   goldmark.New(),
		contactURL: contactURL,
	}
}

// Markdown builds the Markdown source for the result panel
func (r *HTMLRenderer) Markdown(v models.Verdict, view scoring.RecommendationView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", view.Headline)
	fmt.Fprintf(&b, "**Result:** %s (score %d of %d)\n\n", v.Tier.Title(), v.TotalScore, v.MaxScore)
	b.WriteString(view.Summary)
	b.WriteString("\n\n")

	writeMarkdownList(&b, "Today", view.Today)
	writeMarkdownList(&b, "This week", view.ThisWeek)

	for _, p := range view.Panels {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", p.Title, p.Body)
	}

	fmt.Fprintf(&b, "[%s](%s)\n\n", view.CTA.Label, r.contactLink(view.CTA.Priority))

	fmt.Fprintf(&b, "### %s\n\n", crisisHeading)
	for _, res := range CrisisResources {
		fmt.Fprintf(&b, "- **%s**: %s\n", res.Name, res.Contact)
	}

	return b.String()
}

// contactLink returns the contact URL, adding priority=1 to its query for
// priority requests. An unparseable URL is returned unchanged.
func (r *HTMLRenderer) contactLink(priority bool) string {
	if !priority {
		return r.contactURL
	}
	u, err := url.Parse(r.contactURL)
	if err != nil {
		return r.contactURL
	}
	q := u.Query()
	q.Set("priority", "1")
	u.RawQuery = q.Encode()
	return u.String()
}

// Render writes the result panel as HTML
func (r *HTMLRenderer) Render(w io.Writer, v models.Verdict, view scoring.RecommendationView) error {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(r.Markdown(v, view)), &buf); err != nil {
		return fmt.Errorf("failed to render result markdown: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func writeMarkdownList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
