// Package assessment runs a single self-administered assessment: it stores
// answers, moves through the question catalog, and gates scoring until every
// question has been answered.
//
// A Session is owned by one caller and is not safe for concurrent use. Each
// method completes its state change before returning, so read-modify-write
// updates such as toggling a co-use entry cannot be lost between calls.
package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/harrison/screening/internal/catalog"
	"github.com/harrison/screening/internal/models"
	"github.com/harrison/screening/internal/scoring"
)

// Session holds the answers and navigation state for one run of an assessment
type Session struct {
	id          string
	catalog     *catalog.Catalog
	responses   map[int]int
	followUps   models.FollowUps
	collapse    bool
	current     int
	complete    bool
	completedAt time.Time
	now         func() time.Time
}

// NewSession starts a session at the first question with no answers
func NewSession(cat *catalog.Catalog) *Session {
	return &Session{
		id:        uuid.New().String(),
		catalog:   cat,
		responses: make(map[int]int, cat.Len()),
		now:       time.Now,
	}
}

// ID returns the session's unique identifier
func (s *Session) ID() string { return s.id }

// Catalog returns the catalog the session was started with
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// CurrentIndex returns the zero-based index of the question being shown
func (s *Session) CurrentIndex() int { return s.current }

// CurrentQuestion returns the question being shown
func (s *Session) CurrentQuestion() models.Question {
	q, _ := s.catalog.Question(s.current)
	return q
}

// IsComplete reports whether the session has moved past the final question
func (s *Session) IsComplete() bool { return s.complete }

// OnFinalQuestion reports whether the follow-up form is currently available
func (s *Session) OnFinalQuestion() bool {
	return !s.complete && s.current == s.catalog.Len()-1
}

// SetAnswer records the answer for a question, replacing any earlier answer
func (s *Session) SetAnswer(index, value int) error {
	if s.complete {
		return s.reject("set answer", ErrAlreadyComplete)
	}
	q, ok := s.catalog.Question(index)
	if !ok {
		return s.reject("set answer", ErrIndexOutOfRange)
	}
	if !q.HasValue(value) {
		return s.reject("set answer", ErrValueOutOfRange)
	}
	s.responses[index] = value
	return nil
}

// Answer returns the recorded answer for a question
func (s *Session) Answer(index int) (int, bool) {
	v, ok := s.responses[index]
	return v, ok
}

// IsAnswered reports whether the question at index has an answer
func (s *Session) IsAnswered(index int) bool {
	_, ok := s.responses[index]
	return ok
}

// Responses returns a copy of all recorded answers keyed by question index
func (s *Session) Responses() map[int]int {
	out := make(map[int]int, len(s.responses))
	for k, v := range s.responses {
		out[k] = v
	}
	return out
}

// FollowUps returns a copy of the follow-up answers
func (s *Session) FollowUps() models.FollowUps { return s.followUps.Clone() }

// FunctionalCollapse returns the functional collapse indicator
func (s *Session) FunctionalCollapse() bool { return s.collapse }

// followUpGate rejects follow-up edits unless the final question is showing
func (s *Session) followUpGate(op string) error {
	if s.complete {
		return s.reject(op, ErrAlreadyComplete)
	}
	if !s.OnFinalQuestion() {
		return s.reject(op, ErrFollowUpsUnavailable)
	}
	return nil
}

// SetPrimarySubstance records the primary substance. An empty value clears it.
func (s *Session) SetPrimarySubstance(sub models.Substance) error {
	if err := s.followUpGate("set primary substance"); err != nil {
		return err
	}
	if sub != "" && !sub.Valid() {
		return s.reject("set primary substance", ErrUnknownOption)
	}
	s.followUps.PrimarySubstance = sub
	return nil
}

// SetRoute records how the primary substance is taken. An empty value clears it.
func (s *Session) SetRoute(route models.Route) error {
	if err := s.followUpGate("set route"); err != nil {
		return err
	}
	if route != "" && !route.Valid() {
		return s.reject("set route", ErrUnknownOption)
	}
	s.followUps.Route = route
	return nil
}

// ToggleCoUse checks or unchecks one co-use substance
func (s *Session) ToggleCoUse(sub models.Substance, on bool) error {
	if err := s.followUpGate("toggle co-use"); err != nil {
		return err
	}
	if !sub.Valid() {
		return s.reject("toggle co-use", ErrUnknownOption)
	}
	s.followUps.ToggleCoUse(sub, on)
	return nil
}

// SetPastOverdose records the past-overdose answer
func (s *Session) SetPastOverdose(v bool) error {
	if err := s.followUpGate("set past overdose"); err != nil {
		return err
	}
	s.followUps.PastOverdose = models.BoolPtr(v)
	return nil
}

// SetNaloxoneAccess records whether naloxone is on hand
func (s *Session) SetNaloxoneAccess(v bool) error {
	if err := s.followUpGate("set naloxone access"); err != nil {
		return err
	}
	s.followUps.NaloxoneAccess = models.BoolPtr(v)
	return nil
}

// SetPregnancy records the pregnancy answer
func (s *Session) SetPregnancy(v bool) error {
	if err := s.followUpGate("set pregnancy"); err != nil {
		return err
	}
	s.followUps.Pregnancy = models.BoolPtr(v)
	return nil
}

// SetFunctionalCollapse sets the functional collapse indicator
func (s *Session) SetFunctionalCollapse(v bool) error {
	if err := s.followUpGate("set functional collapse"); err != nil {
		return err
	}
	s.collapse = v
	return nil
}

// Advance moves to the next question, or completes the session from the
// final question. The current question must be answered.
func (s *Session) Advance() error {
	if s.complete {
		return s.reject("advance", ErrAlreadyComplete)
	}
	if !s.IsAnswered(s.current) {
		return s.reject("advance", ErrNotAnswered)
	}

	if s.current < s.catalog.Len()-1 {
		s.current++
		return nil
	}

	s.complete = true
	s.completedAt = s.now()
	return nil
}

// Retreat moves back one question. Answers are kept.
func (s *Session) Retreat() error {
	if s.complete {
		return s.reject("retreat", ErrAlreadyComplete)
	}
	if s.current == 0 {
		return s.reject("retreat", ErrAtFirstQuestion)
	}
	s.current--
	return nil
}

// Verdict scores the completed session
func (s *Session) Verdict() (models.Verdict, error) {
	if !s.complete {
		return models.Verdict{}, s.reject("verdict", ErrNotComplete)
	}
	return scoring.ComputeVerdict(s.catalog, s.responses, s.followUps, s.collapse), nil
}

// Summary builds the handoff record for the scheduling side
func (s *Session) Summary() (models.Summary, error) {
	v, err := s.Verdict()
	if err != nil {
		return models.Summary{}, err
	}
	return models.Summary{
		SessionID:      s.id,
		AssessmentType: s.catalog.ID(),
		Score:          v.TotalScore,
		MaxScore:       v.MaxScore,
		Severity:       string(v.Tier),
		ResultText:     scoring.ResultText(v),
		Priority:       v.Flags.PriorityOutreach,
		CompletedAt:    s.completedAt,
	}, nil
}
