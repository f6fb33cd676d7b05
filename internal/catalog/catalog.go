// Package catalog holds the compiled-in question catalogs for self-administered
// assessments.
//
// A catalog is an ordered, immutable list of questions that share one ordinal
// answer scale. Catalog files are embedded at build time and validated when
// first parsed, so a malformed catalog is a build defect rather than a runtime
// condition.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/harrison/screening/internal/models"
)

//go:embed substance_use.yaml
var substanceUseYAML []byte

// Catalog is an ordered set of questions sharing a single answer scale
type Catalog struct {
	id         string
	title      string
	intro      string
	scale      []models.ScaleOption
	questions  []models.Question
	hazardous  int
	withdrawal int
}

type catalogYAML struct {
	ID         string               `yaml:"id"`
	Title      string               `yaml:"title"`
	Intro      string               `yaml:"intro"`
	Scale      []models.ScaleOption `yaml:"scale"`
	Designated struct {
		Hazardous  string `yaml:"hazardous"`
		Withdrawal string `yaml:"withdrawal"`
	} `yaml:"designated"`
	Questions []models.Question `yaml:"questions"`
}

var (
	substanceUseOnce sync.Once
	substanceUse     *Catalog
)

// SubstanceUse returns the 8-item substance use catalog.
// It panics if the embedded catalog fails validation.
func SubstanceUse() *Catalog {
	substanceUseOnce.Do(func() {
		cat, err := Parse(substanceUseYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded substance use catalog: %v", err))
		}
		substanceUse = cat
	})
	return substanceUse
}

// Parse decodes and validates a catalog definition.
// The scale must be exactly 0,1,2,3 in ascending order, and both designated
// items must refer to questions in the catalog.
func Parse(data []byte) (*Catalog, error) {
	var raw catalogYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if raw.ID == "" {
		return nil, fmt.Errorf("catalog id is required")
	}
	if err := validateScale(raw.Scale); err != nil {
		return nil, fmt.Errorf("catalog %q: %w", raw.ID, err)
	}
	if len(raw.Questions) == 0 {
		return nil, fmt.Errorf("catalog %q: no questions defined", raw.ID)
	}

	cat := &Catalog{
		id:         raw.ID,
		title:      raw.Title,
		intro:      raw.Intro,
		scale:      raw.Scale,
		questions:  make([]models.Question, len(raw.Questions)),
		hazardous:  -1,
		withdrawal: -1,
	}

	seen := make(map[string]bool, len(raw.Questions))
	for i, q := range raw.Questions {
		q.Index = i
		q.Scale = raw.Scale
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("catalog %q: %w", raw.ID, err)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("catalog %q: duplicate question id %q", raw.ID, q.ID)
		}
		seen[q.ID] = true

		switch q.ID {
		case raw.Designated.Hazardous:
			cat.hazardous = i
		case raw.Designated.Withdrawal:
			cat.withdrawal = i
		}
		cat.questions[i] = q
	}

	if cat.hazardous < 0 {
		return nil, fmt.Errorf("catalog %q: designated hazardous item %q not found", raw.ID, raw.Designated.Hazardous)
	}
	if cat.withdrawal < 0 {
		return nil, fmt.Errorf("catalog %q: designated withdrawal item %q not found", raw.ID, raw.Designated.Withdrawal)
	}

	return cat, nil
}

func validateScale(scale []models.ScaleOption) error {
	if len(scale) != 4 {
		return fmt.Errorf("scale must have 4 options, got %d", len(scale))
	}
	for i, opt := range scale {
		if opt.Value != i {
			return fmt.Errorf("scale option %d has value %d, want %d", i, opt.Value, i)
		}
		if opt.Label == "" {
			return fmt.Errorf("scale option %d has no label", i)
		}
	}
	return nil
}

// ID returns the catalog identifier, used as the assessment type in handoffs
func (c *Catalog) ID() string { return c.id }

// Title returns the human-readable assessment name
func (c *Catalog) Title() string { return c.title }

// Intro returns the instructions shown before the first question
func (c *Catalog) Intro() string { return c.intro }

// Len returns the number of questions
func (c *Catalog) Len() int { return len(c.questions) }

// Question returns the question at index i.
// The boolean is false when i is out of range.
func (c *Catalog) Question(i int) (models.Question, bool) {
	if i < 0 || i >= len(c.questions) {
		return models.Question{}, false
	}
	return c.questions[i], true
}

// Questions returns a copy of the ordered question list
func (c *Catalog) Questions() []models.Question {
	out := make([]models.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Scale returns a copy of the shared answer scale
func (c *Catalog) Scale() []models.ScaleOption {
	out := make([]models.ScaleOption, len(c.scale))
	copy(out, c.scale)
	return out
}

// MaxScore is the highest possible total: questions times the top scale value
func (c *Catalog) MaxScore() int {
	return len(c.questions) * c.scale[len(c.scale)-1].Value
}

// HazardousIndex is the index of the "used in physically risky situations" item
func (c *Catalog) HazardousIndex() int { return c.hazardous }

// WithdrawalIndex is the index of the withdrawal-symptom item
func (c *Catalog) WithdrawalIndex() int { return c.withdrawal }
