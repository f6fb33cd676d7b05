package render

// CrisisResource is one fixed contact shown with every result
type CrisisResource struct {
	Name    string
	Contact string
}

// CrisisResources is shown regardless of verdict
var CrisisResources = []CrisisResource{
	{Name: "988 Suicide & Crisis Lifeline", Contact: "Call or text 988"},
	{Name: "Crisis Text Line", Contact: "Text HOME to 741741"},
	{Name: "SAMHSA National Helpline", Contact: "1-800-662-4357 (free, confidential, 24/7)"},
	{Name: "Emergency", Contact: "Call 911 or go to the nearest emergency room"},
}

const crisisHeading = "If you are in crisis"
