package models

import (
	"fmt"
	"time"
)

// Tier is the severity band derived from the total score
type Tier string

// Severity tiers, lowest to highest
const (
	TierNone     Tier = "none"
	TierMild     Tier = "mild"
	TierModerate Tier = "moderate"
	TierSevere   Tier = "severe"
)

// Tiers lists every tier from lowest to highest
var Tiers = []Tier{TierNone, TierMild, TierModerate, TierSevere}

// Valid reports whether t is one of Tiers
func (t Tier) Valid() bool {
	for _, known := range Tiers {
		if t == known {
			return true
		}
	}
	return false
}

// Title returns the tier name as shown to the user
func (t Tier) Title() string {
	switch t {
	case TierNone:
		return "Minimal"
	case TierMild:
		return "Mild"
	case TierModerate:
		return "Moderate"
	case TierSevere:
		return "Severe"
	default:
		return string(t)
	}
}

// RiskFlag names one independent safety indicator
type RiskFlag string

const (
	FlagWithdrawalRisk   RiskFlag = "withdrawal_risk"
	FlagOpioidRisk       RiskFlag = "opioid_risk"
	FlagInjectionUse     RiskFlag = "injection_use"
	FlagHazardousUse     RiskFlag = "hazardous_use"
	FlagPregnancy        RiskFlag = "pregnancy"
	FlagPriorityOutreach RiskFlag = "priority_outreach"
	FlagStimulantUse     RiskFlag = "stimulant_use"
)

// RiskFlags is the set of safety indicators attached to a verdict.
// Flags are not mutually exclusive and can co-occur with any tier.
type RiskFlags struct {
	WithdrawalRisk   bool `json:"withdrawal_risk"`
	OpioidRisk       bool `json:"opioid_risk"`
	InjectionUse     bool `json:"injection_use"`
	HazardousUse     bool `json:"hazardous_use"`
	Pregnancy        bool `json:"pregnancy"`
	PriorityOutreach bool `json:"priority_outreach"`
	StimulantUse     bool `json:"stimulant_use"`
}

// Active returns the names of all set flags in declaration order
func (f RiskFlags) Active() []RiskFlag {
	var out []RiskFlag
	for _, entry := range []struct {
		set  bool
		flag RiskFlag
	}{
		{f.WithdrawalRisk, FlagWithdrawalRisk},
		{f.OpioidRisk, FlagOpioidRisk},
		{f.InjectionUse, FlagInjectionUse},
		{f.HazardousUse, FlagHazardousUse},
		{f.Pregnancy, FlagPregnancy},
		{f.PriorityOutreach, FlagPriorityOutreach},
		{f.StimulantUse, FlagStimulantUse},
	} {
		if entry.set {
			out = append(out, entry.flag)
		}
	}
	return out
}

// Any reports whether at least one flag is set
func (f RiskFlags) Any() bool {
	return f != RiskFlags{}
}

// CrisisStatus records whether the assessment screens for acute crisis
type CrisisStatus string

// The substance-use assessment does no crisis detection; crisis resources
// are shown unconditionally instead.
const (
	CrisisNotApplicable CrisisStatus = "not_applicable"
)

// Verdict is the scored outcome of a completed assessment.
// It is always derived from the session's answers and never stored.
type Verdict struct {
	TotalScore int          `json:"total_score"`
	MaxScore   int          `json:"max_score"`
	Tier       Tier         `json:"tier"`
	Flags      RiskFlags    `json:"flags"`
	Crisis     CrisisStatus `json:"crisis"`
}

// Summary is the record handed to the scheduling side once an assessment completes
type Summary struct {
	SessionID      string    `json:"session_id"`
	AssessmentType string    `json:"assessment_type"`
	Score          int       `json:"score"`
	MaxScore       int       `json:"max_score"`
	Severity       string    `json:"severity"`
	ResultText     string    `json:"result_text"`
	Priority       bool      `json:"priority"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Validate checks the summary before it is handed to a lead sink
func (s *Summary) Validate() error {
	if s.AssessmentType == "" {
		return fmt.Errorf("assessment_type is required")
	}
	if s.MaxScore <= 0 {
		return fmt.Errorf("max_score must be > 0, got %d", s.MaxScore)
	}
	if s.Score < 0 || s.Score > s.MaxScore {
		return fmt.Errorf("score %d outside range 0..%d", s.Score, s.MaxScore)
	}
	if s.Severity == "" {
		return fmt.Errorf("severity is required")
	}
	if !Tier(s.Severity).Valid() {
		return fmt.Errorf("unknown severity %q", s.Severity)
	}
	return nil
}
