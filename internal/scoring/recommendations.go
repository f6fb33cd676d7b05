package scoring

import "github.com/harrison/screening/internal/models"

// Panel is an add-on safety block attached for one risk flag.
// Body is Markdown.
type Panel struct {
	Flag  models.RiskFlag
	Title string
	Body  string
}

// CTA is the scheduling call to action shown under the results
type CTA struct {
	Label    string
	Priority bool
}

// RecommendationView is the full result content for one verdict:
// one tier variant plus zero or more add-on panels.
type RecommendationView struct {
	Tier     models.Tier
	Headline string
	Summary  string
	Today    []string
	ThisWeek []string
	Panels   []Panel
	CTA      CTA
}

// CTA labels
const (
	StandardCTALabel = "Schedule a consultation"
	PriorityCTALabel = "Request priority scheduling"
)

type tierContent struct {
	headline string
	summary  string
	today    []string
	thisWeek []string
}

var tierVariants = map[models.Tier]tierContent{
	models.TierNone: {
		headline: "Minimal concerns right now",
		summary: "Your answers suggest substance use is not causing significant problems at the moment. " +
			"It is still worth noticing patterns, especially during stressful periods.",
		today: []string{
			"Note any situations where you tend to drink or use more than usual.",
		},
		thisWeek: []string{
			"Check in with yourself about sleep, stress, and mood.",
			"Revisit this screening if anything changes.",
		},
	},
	models.TierMild: {
		headline: "Some early warning signs",
		summary: "Your answers point to mild concerns. Small changes now tend to work well, " +
			"and a short conversation with a clinician can help you set goals that fit your life.",
		today: []string{
			"Pick one situation this week where you will use less or not at all.",
			"Avoid using before driving or other physically risky activities.",
		},
		thisWeek: []string{
			"Track when and how much you use for seven days.",
			"Consider a brief consultation to talk through what you notice.",
		},
	},
	models.TierModerate: {
		headline: "Moderate concerns worth addressing",
		summary: "Your answers suggest substance use is affecting several areas of your life. " +
			"Structured support, such as outpatient therapy, is often effective at this stage.",
		today: []string{
			"Tell one person you trust that you are looking at your use.",
			"Do not stop suddenly without medical advice if you have had withdrawal symptoms.",
		},
		thisWeek: []string{
			"Book an assessment with a licensed clinician.",
			"Remove or reduce easy access to the substance at home.",
		},
	},
	models.TierSevere: {
		headline: "Significant concerns: support is recommended now",
		summary: "Your answers indicate severe problems related to substance use. " +
			"You do not have to handle this alone, and a higher level of care may be the safest next step.",
		today: []string{
			"Reach out to a clinician or a helpline today.",
			"Do not use alone, and keep emergency numbers close.",
		},
		thisWeek: []string{
			"Ask about intensive outpatient or medically supervised programs.",
			"Involve a support person in planning your next steps.",
		},
	},
}

// Add-on panels in the order they are appended
var addOnPanels = []struct {
	applies func(models.RiskFlags) bool
	panel   Panel
}{
	{
		applies: func(f models.RiskFlags) bool { return f.OpioidRisk },
		panel: Panel{
			Flag:  models.FlagOpioidRisk,
			Title: "Opioid overdose safety",
			Body: "Opioids, including anything that may contain fentanyl, carry a real risk of overdose.\n\n" +
				"- Carry **naloxone** (Narcan). Most pharmacies provide it without a prescription.\n" +
				"- Never use alone, and avoid mixing with alcohol or benzodiazepines.\n" +
				"- Tolerance drops quickly after a break; start low if you use again.\n" +
				"- Ask about medications for opioid use disorder such as buprenorphine or methadone.",
		},
	},
	{
		applies: func(f models.RiskFlags) bool { return f.StimulantUse },
		panel: Panel{
			Flag:  models.FlagStimulantUse,
			Title: "Stimulant care",
			Body: "Stimulants can strain the heart and disrupt sleep and mood.\n\n" +
				"- Seek emergency care for chest pain, overheating, or severe agitation.\n" +
				"- Eat, hydrate, and plan rest after use.\n" +
				"- Use fentanyl test strips; stimulant supplies are increasingly contaminated.\n" +
				"- Contingency management and CBT have strong evidence for stimulant use.",
		},
	},
	{
		applies: func(f models.RiskFlags) bool { return f.WithdrawalRisk },
		panel: Panel{
			Flag:  models.FlagWithdrawalRisk,
			Title: "Withdrawal and tapering",
			Body: "Stopping alcohol or benzodiazepines suddenly can cause dangerous withdrawal, including seizures.\n\n" +
				"- Talk to a medical provider before cutting back sharply.\n" +
				"- A supervised taper is the safest way to reduce.\n" +
				"- Seek urgent care for confusion, hallucinations, or seizures.",
		},
	},
	{
		applies: func(f models.RiskFlags) bool { return f.InjectionUse },
		panel: Panel{
			Flag:  models.FlagInjectionUse,
			Title: "Harm reduction for injection",
			Body: "Injecting carries added risks of infection and overdose.\n\n" +
				"- Use new, sterile supplies every time; syringe services programs provide them free.\n" +
				"- Rotate sites and watch for redness, swelling, or fever.\n" +
				"- Get tested for HIV and hepatitis C, and ask about PrEP.",
		},
	},
	{
		applies: func(f models.RiskFlags) bool { return f.Pregnancy },
		panel: Panel{
			Flag:  models.FlagPregnancy,
			Title: "Pregnancy and perinatal care",
			Body: "Support during pregnancy protects both you and the baby, and asking for help will not be held against you.\n\n" +
				"- Tell your prenatal provider so care can be coordinated.\n" +
				"- Do not stop opioids or benzodiazepines abruptly; medical guidance is safer.\n" +
				"- Perinatal specialists can help with treatment that is safe in pregnancy.",
		},
	},
}

// BuildRecommendations maps a verdict to its tier content, add-on panels, and
// call to action. Panels always appear in the same order.
func BuildRecommendations(v models.Verdict) RecommendationView {
	content, ok := tierVariants[v.Tier]
	if !ok {
		content = tierVariants[models.TierNone]
	}

	view := RecommendationView{
		Tier:     v.Tier,
		Headline: content.headline,
		Summary:  content.summary,
		Today:    append([]string(nil), content.today...),
		ThisWeek: append([]string(nil), content.thisWeek...),
		CTA:      CTA{Label: StandardCTALabel},
	}

	for _, addOn := range addOnPanels {
		if addOn.applies(v.Flags) {
			view.Panels = append(view.Panels, addOn.panel)
		}
	}

	if v.Flags.PriorityOutreach {
		view.CTA = CTA{Label: PriorityCTALabel, Priority: true}
	}

	return view
}
