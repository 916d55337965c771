package wizard

// ReviewStepID is the id of the final review & submit step.
const ReviewStepID = "review"

// DefaultSteps is the step sequence of the employment application.
var DefaultSteps = []Step{
	{ID: "intro", Label: "Start & Openings", Order: 0},
	{ID: "resume", Label: "Resume Import", Order: 1},
	{ID: "application", Label: "Application Info", Order: 2},
	{ID: "general", Label: "General Info", Order: 3},
	{ID: "employment", Label: "Employment", Order: 4},
	{ID: "education", Label: "Education", Order: 5},
	{ID: "skills", Label: "Skills", Order: 6},
	{ID: "references", Label: "References", Order: 7},
	{ID: "medical", Label: "Medical", Order: 8},
	{ID: "affiliations", Label: "Affiliations", Order: 9},
	{ID: "employment-cert", Label: "Employment Cert.", Order: 10},
	{ID: "eeo", Label: "EEO Self-ID", Order: 11},
	{ID: "disability", Label: "Disability Self-ID", Order: 12},
	{ID: "veteran", Label: "Protected Veteran", Order: 13},
	{ID: "alcohol-drug", Label: "Alcohol & Drug", Order: 14},
	{ID: ReviewStepID, Label: "Review & Submit", Order: 15},
}

// DefaultBranches groups DefaultSteps for the progress indicator.
var DefaultBranches = []Branch{
	{Label: "Employment Application", From: 0, To: 10},
	{Label: "Self-Identification", From: 11, To: 13},
	{Label: "Alcohol & Drug Testing Program", From: 14, To: 14},
	{Label: "Review & Submit", From: 15, To: 15},
}

// DefaultCatalogue returns a copy of the employment application catalogue.
func DefaultCatalogue() Catalogue {
	return Catalogue{
		Steps:    append([]Step(nil), DefaultSteps...),
		Branches: append([]Branch(nil), DefaultBranches...),
		ReviewID: ReviewStepID,
	}
}
