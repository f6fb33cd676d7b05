package models

import "fmt"

// ScaleOption is one ordinal answer choice for a question
type ScaleOption struct {
	Value int    `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Question is a single scored item of an assessment.
// Questions are immutable once the catalog has been built.
type Question struct {
	Index  int           `yaml:"-" json:"index"`
	ID     string        `yaml:"id" json:"id"`
	Prompt string        `yaml:"prompt" json:"prompt"`
	Scale  []ScaleOption `yaml:"-" json:"scale"`
}

// Validate checks that the question has an id, a prompt, and a usable scale
func (q *Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question %d: id is required", q.Index)
	}
	if q.Prompt == "" {
		return fmt.Errorf("question %q: prompt is required", q.ID)
	}
	if len(q.Scale) == 0 {
		return fmt.Errorf("question %q: scale is empty", q.ID)
	}
	return nil
}

// HasValue reports whether value is one of the question's scale values
func (q *Question) HasValue(value int) bool {
	for _, opt := range q.Scale {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Label returns the scale label for value, or "" if value is not on the scale
func (q *Question) Label(value int) string {
	for _, opt := range q.Scale {
		if opt.Value == value {
			return opt.Label
		}
	}
	return ""
}

// MaxValue returns the highest value on the question's scale
func (q *Question) MaxValue() int {
	max := 0
	for _, opt := range q.Scale {
		if opt.Value > max {
			max = opt.Value
		}
	}
	return max
}
