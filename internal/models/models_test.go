package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuestion() Question {
	return Question{
		Index:  0,
		ID:     "more_than_intended",
		Prompt: "Used more than you meant to?",
		Scale: []ScaleOption{
			{Value: 0, Label: "Not at all"},
			{Value: 1, Label: "Several days"},
			{Value: 2, Label: "More than half the days"},
			{Value: 3, Label: "Nearly every day"},
		},
	}
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr string
	}{
		{name: "valid question", mutate: func(q *Question) {}},
		{name: "missing id", mutate: func(q *Question) { q.ID = "" }, wantErr: "id is required"},
		{name: "missing prompt", mutate: func(q *Question) { q.Prompt = "" }, wantErr: "prompt is required"},
		{name: "empty scale", mutate: func(q *Question) { q.Scale = nil }, wantErr: "scale is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := testQuestion()
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestQuestion_ScaleLookups(t *testing.T) {
	q := testQuestion()

	assert.True(t, q.HasValue(0))
	assert.True(t, q.HasValue(3))
	assert.False(t, q.HasValue(4))
	assert.False(t, q.HasValue(-1))
	assert.Equal(t, "Several days", q.Label(1))
	assert.Equal(t, "", q.Label(9))
	assert.Equal(t, 3, q.MaxValue())
}

func TestFollowUps_ToggleCoUse(t *testing.T) {
	t.Run("on then off restores prior state", func(t *testing.T) {
		f := FollowUps{}
		f.ToggleCoUse(SubstanceOpioids, true)
		assert.Equal(t, []Substance{SubstanceOpioids}, f.CoUse)

		f.ToggleCoUse(SubstanceOpioids, false)
		assert.Nil(t, f.CoUse)
	})

	t.Run("no duplicates when toggled on twice", func(t *testing.T) {
		f := FollowUps{}
		f.ToggleCoUse(SubstanceAlcohol, true)
		f.ToggleCoUse(SubstanceAlcohol, true)
		assert.Equal(t, []Substance{SubstanceAlcohol}, f.CoUse)
	})

	t.Run("removes exactly one matching entry", func(t *testing.T) {
		f := FollowUps{}
		f.ToggleCoUse(SubstanceAlcohol, true)
		f.ToggleCoUse(SubstanceOpioids, true)
		f.ToggleCoUse(SubstanceStimulants, true)

		f.ToggleCoUse(SubstanceOpioids, false)
		assert.Equal(t, []Substance{SubstanceAlcohol, SubstanceStimulants}, f.CoUse)
	})

	t.Run("removing missing entry is a no-op", func(t *testing.T) {
		f := FollowUps{CoUse: []Substance{SubstanceAlcohol}}
		f.ToggleCoUse(SubstanceOpioids, false)
		assert.Equal(t, []Substance{SubstanceAlcohol}, f.CoUse)
	})
}

func TestFollowUps_Clone(t *testing.T) {
	orig := FollowUps{
		PrimarySubstance: SubstanceOpioids,
		CoUse:            []Substance{SubstanceAlcohol},
		Pregnancy:        BoolPtr(true),
	}

	clone := orig.Clone()
	clone.CoUse[0] = SubstanceOther
	*clone.Pregnancy = false

	assert.Equal(t, SubstanceAlcohol, orig.CoUse[0])
	assert.True(t, *orig.Pregnancy)
	assert.Nil(t, clone.PastOverdose)
}

func TestSubstanceAndRouteValid(t *testing.T) {
	assert.True(t, SubstanceBenzodiazepines.Valid())
	assert.False(t, Substance("Caffeine").Valid())
	assert.False(t, Substance("").Valid())
	assert.True(t, RouteInject.Valid())
	assert.False(t, Route("Patch").Valid())
}

func TestRiskFlags_Active(t *testing.T) {
	flags := RiskFlags{OpioidRisk: true, Pregnancy: true, WithdrawalRisk: true}

	assert.Equal(t, []RiskFlag{FlagWithdrawalRisk, FlagOpioidRisk, FlagPregnancy}, flags.Active())
	assert.True(t, flags.Any())
	assert.False(t, RiskFlags{}.Any())
	assert.Empty(t, RiskFlags{}.Active())
}

func TestSummary_Validate(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		wantErr bool
	}{
		{
			name:    "valid summary",
			summary: Summary{AssessmentType: "substance_use", Score: 12, MaxScore: 24, Severity: "moderate"},
		},
		{
			name:    "missing type",
			summary: Summary{Score: 1, MaxScore: 24, Severity: "none"},
			wantErr: true,
		},
		{
			name:    "score above max",
			summary: Summary{AssessmentType: "substance_use", Score: 25, MaxScore: 24, Severity: "severe"},
			wantErr: true,
		},
		{
			name:    "zero max",
			summary: Summary{AssessmentType: "substance_use", Severity: "none"},
			wantErr: true,
		},
		{
			name:    "missing severity",
			summary: Summary{AssessmentType: "substance_use", Score: 1, MaxScore: 24},
			wantErr: true,
		},
		{
			name:    "unknown severity",
			summary: Summary{AssessmentType: "substance_use", Score: 1, MaxScore: 24, Severity: "extreme"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.summary.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTier_Title(t *testing.T) {
	assert.Equal(t, "Minimal", TierNone.Title())
	assert.Equal(t, "Severe", TierSevere.Title())
	assert.Equal(t, "odd", Tier("odd").Title())
}

func TestTier_Valid(t *testing.T) {
	for _, tier := range Tiers {
		assert.True(t, tier.Valid(), tier)
	}
	assert.False(t, Tier("odd").Valid())
	assert.False(t, Tier("").Valid())
}
