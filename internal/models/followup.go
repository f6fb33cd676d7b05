package models

// Substance is a single-select answer for the primary substance and co-use items
type Substance string

const (
	SubstanceAlcohol         Substance = "Alcohol"
	SubstanceCannabis        Substance = "Cannabis/Marijuana"
	SubstanceOpioids         Substance = "Opioids"
	SubstanceStimulants      Substance = "Stimulants"
	SubstanceBenzodiazepines Substance = "Benzodiazepines"
	SubstanceOther           Substance = "Other"
)

// Substances lists every substance choice in display order
var Substances = []Substance{
	SubstanceAlcohol,
	SubstanceCannabis,
	SubstanceOpioids,
	SubstanceStimulants,
	SubstanceBenzodiazepines,
	SubstanceOther,
}

// Valid reports whether s is one of the known substance choices
func (s Substance) Valid() bool {
	for _, known := range Substances {
		if s == known {
			return true
		}
	}
	return false
}

// Route is how the primary substance is usually taken
type Route string

const (
	RouteSwallow Route = "Swallow/Drink"
	RouteSmoke   Route = "Smoke/Vape"
	RouteSnort   Route = "Snort"
	RouteInject  Route = "Inject (IV/IM)"
)

// Routes lists every route choice in display order
var Routes = []Route{RouteSwallow, RouteSmoke, RouteSnort, RouteInject}

// Valid reports whether r is one of the known route choices
func (r Route) Valid() bool {
	for _, known := range Routes {
		if r == known {
			return true
		}
	}
	return false
}

// FollowUps holds the unscored supplemental answers collected on the final question.
// Zero values mean "not answered": an empty Substance or Route, a nil *bool.
type FollowUps struct {
	PrimarySubstance Substance   `json:"primary_substance,omitempty"`
	Route            Route       `json:"route,omitempty"`
	CoUse            []Substance `json:"co_use,omitempty"`
	PastOverdose     *bool       `json:"past_overdose,omitempty"`
	NaloxoneAccess   *bool       `json:"naloxone_access,omitempty"`
	Pregnancy        *bool       `json:"pregnancy,omitempty"`
}

// HasCoUse reports whether s is in the co-use list
func (f *FollowUps) HasCoUse(s Substance) bool {
	for _, existing := range f.CoUse {
		if existing == s {
			return true
		}
	}
	return false
}

// ToggleCoUse adds or removes s from the co-use list in a single step.
// Adding an existing entry or removing a missing one leaves the list unchanged.
func (f *FollowUps) ToggleCoUse(s Substance, on bool) {
	if on {
		if !f.HasCoUse(s) {
			f.CoUse = append(f.CoUse, s)
		}
		return
	}

	for i, existing := range f.CoUse {
		if existing == s {
			f.CoUse = append(f.CoUse[:i:i], f.CoUse[i+1:]...)
			if len(f.CoUse) == 0 {
				f.CoUse = nil
			}
			return
		}
	}
}

// Clone returns a deep copy so callers can't mutate session state through it
func (f FollowUps) Clone() FollowUps {
	out := f
	if f.CoUse != nil {
		out.CoUse = append([]Substance(nil), f.CoUse...)
	}
	out.PastOverdose = cloneBool(f.PastOverdose)
	out.NaloxoneAccess = cloneBool(f.NaloxoneAccess)
	out.Pregnancy = cloneBool(f.Pregnancy)
	return out
}

// IsTrue reports whether an optional answer was given and is true
func IsTrue(b *bool) bool {
	return b != nil && *b
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
