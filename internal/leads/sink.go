// Package leads records completed assessment summaries for follow-up by the
// scheduling team.
//
// Sinks receive the handoff summary only; answers and follow-ups never leave
// the assessment session.
package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/harrison/screening/internal/models"
)

// Sink records a completed assessment summary
type Sink interface {
	Record(ctx context.Context, s models.Summary) error
}

// Multi records to every sink in order and joins their errors
type Multi []Sink

// Record implements Sink
func (m Multi) Record(ctx context.Context, s models.Summary) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Record(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validate(s models.Summary) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid summary: %w", err)
	}
	return nil
}
