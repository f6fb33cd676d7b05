// Package scoring turns a completed set of assessment answers into a verdict
// and maps that verdict to recommendation content.
//
// Both entry points are pure: they read their inputs, never mutate them, and
// return the same output for the same input.
package scoring

import (
	"fmt"

	"github.com/harrison/screening/internal/catalog"
	"github.com/harrison/screening/internal/models"
)

// Tier cut points for the 8-item, 0-3 substance use catalog.
// A catalog with a different length or scale needs its own cut points.
const (
	noneMax     = 4
	mildMax     = 9
	moderateMax = 14
)

// TierForScore maps a total score to its severity tier
func TierForScore(score int) models.Tier {
	switch {
	case score <= noneMax:
		return models.TierNone
	case score <= mildMax:
		return models.TierMild
	case score <= moderateMax:
		return models.TierModerate
	default:
		return models.TierSevere
	}
}

// ComputeVerdict scores the responses and evaluates every risk flag.
// Missing answers count as zero and missing follow-ups evaluate to false.
func ComputeVerdict(cat *catalog.Catalog, responses map[int]int, followUps models.FollowUps, functionalCollapse bool) models.Verdict {
	total := 0
	for _, v := range responses {
		total += v
	}
	tier := TierForScore(total)

	flags := models.RiskFlags{
		WithdrawalRisk: answeredAtLeast(responses, cat.WithdrawalIndex(), 1) ||
			followUps.PrimarySubstance == models.SubstanceBenzodiazepines,
		OpioidRisk: followUps.PrimarySubstance == models.SubstanceOpioids ||
			followUps.HasCoUse(models.SubstanceOpioids),
		InjectionUse: followUps.Route == models.RouteInject,
		HazardousUse: answeredAtLeast(responses, cat.HazardousIndex(), 1),
		Pregnancy:    models.IsTrue(followUps.Pregnancy),
		PriorityOutreach: tier == models.TierSevere ||
			(tier == models.TierModerate && functionalCollapse),
		StimulantUse: followUps.PrimarySubstance == models.SubstanceStimulants,
	}

	return models.Verdict{
		TotalScore: total,
		MaxScore:   cat.MaxScore(),
		Tier:       tier,
		Flags:      flags,
		Crisis:     models.CrisisNotApplicable,
	}
}

func answeredAtLeast(responses map[int]int, index, min int) bool {
	v, ok := responses[index]
	return ok && v >= min
}

// ResultText is the one-line outcome passed along with the handoff summary
func ResultText(v models.Verdict) string {
	text := fmt.Sprintf("%s substance use concerns (score %d of %d)", v.Tier.Title(), v.TotalScore, v.MaxScore)
	if v.Flags.PriorityOutreach {
		text += "; priority outreach requested"
	}
	return text
}
