package types

// FieldKind distinguishes text fields from checkboxes.
type FieldKind string

const (
	KindText FieldKind = "text"
	KindBool FieldKind = "bool"
)

// FieldDef describes one scalar form field and the wizard step that owns it.
type FieldDef struct {
	Name  string
	Label string
	Step  string
	Kind  FieldKind
}

// ScalarFields lists every top-level scalar field of the application form in
// display order.
var ScalarFields = []FieldDef{
	{Name: "date", Label: "Date", Step: "application", Kind: KindText},
	{Name: "position", Label: "Position Applying For", Step: "application", Kind: KindText},
	{Name: "location", Label: "Preferred Office Location", Step: "application", Kind: KindText},
	{Name: "referredBy", Label: "Referred By", Step: "application", Kind: KindText},

	{Name: "name", Label: "Full Name", Step: "general", Kind: KindText},
	{Name: "address", Label: "Address", Step: "general", Kind: KindText},
	{Name: "city", Label: "City", Step: "general", Kind: KindText},
	{Name: "state", Label: "State", Step: "general", Kind: KindText},
	{Name: "zip", Label: "ZIP Code", Step: "general", Kind: KindText},
	{Name: "email", Label: "Email", Step: "general", Kind: KindText},
	{Name: "phone", Label: "Telephone No.", Step: "general", Kind: KindText},
	{Name: "cell", Label: "Cellular No.", Step: "general", Kind: KindText},

	{Name: "highestEducationLevel", Label: "Highest Level Completed", Step: "education", Kind: KindText},
	{Name: "educationSchoolName", Label: "School Name", Step: "education", Kind: KindText},
	{Name: "educationSchoolLocation", Label: "School Location", Step: "education", Kind: KindText},
	{Name: "educationDegree", Label: "Degree / Program", Step: "education", Kind: KindText},
	{Name: "educationFieldOfStudy", Label: "Field of Study / Emphasis", Step: "education", Kind: KindText},
	{Name: "educationYears", Label: "Graduation Year / Years Attended", Step: "education", Kind: KindText},
	{Name: "educationAdditional", Label: "Additional Education", Step: "education", Kind: KindText},

	{Name: "skillsYearsExperience", Label: "Years of Relevant Experience", Step: "skills", Kind: KindText},
	{Name: "skillsPrimaryFocus", Label: "Primary Area(s) of Focus", Step: "skills", Kind: KindText},
	{Name: "skillsTechnical", Label: "Technical Skills & Field / Lab Tools", Step: "skills", Kind: KindText},
	{Name: "skillsSoftware", Label: "Software & Programs", Step: "skills", Kind: KindText},
	{Name: "skillsFieldLab", Label: "Field / Laboratory Experience", Step: "skills", Kind: KindText},
	{Name: "skillsCommunication", Label: "Communication & Team Skills", Step: "skills", Kind: KindText},
	{Name: "skillsCertifications", Label: "Certifications / Training", Step: "skills", Kind: KindText},

	{Name: "certifyInitials", Label: "Authorization to Contact References (Initials)", Step: "references", Kind: KindText},

	{Name: "medInitials", Label: "Applicant's Initials (acknowledgment)", Step: "medical", Kind: KindText},
	{Name: "ableToPerformJob", Label: "Able to perform essential functions", Step: "medical", Kind: KindText},

	{Name: "affiliations", Label: "Affiliations / Licenses / Memberships", Step: "affiliations", Kind: KindText},

	{Name: "fcrInitials", Label: "FCRA Initials", Step: "employment-cert", Kind: KindText},
	{Name: "knowEmployee", Label: "Do you know anyone presently working here?", Step: "employment-cert", Kind: KindText},
	{Name: "knowEmployeeName", Label: "If yes, who?", Step: "employment-cert", Kind: KindText},
	{Name: "applicationCertificationDate", Label: "Application Certification Date", Step: "employment-cert", Kind: KindText},
	{Name: "applicationCertificationSignature", Label: "Application Certification Signature (typed)", Step: "employment-cert", Kind: KindText},

	{Name: "eeoName", Label: "Name (optional)", Step: "eeo", Kind: KindText},
	{Name: "eeoDate", Label: "Date (optional)", Step: "eeo", Kind: KindText},
	{Name: "eeoGender", Label: "Gender (voluntary)", Step: "eeo", Kind: KindText},
	{Name: "eeoEthnicity", Label: "Race / Ethnicity (voluntary)", Step: "eeo", Kind: KindText},

	{Name: "disabilityName", Label: "Name (optional)", Step: "disability", Kind: KindText},
	{Name: "disabilityDate", Label: "Date (optional)", Step: "disability", Kind: KindText},
	{Name: "disabilityEmployeeId", Label: "Employee ID (optional)", Step: "disability", Kind: KindText},
	{Name: "disabilityStatus", Label: "Voluntary response", Step: "disability", Kind: KindText},
	{Name: "disabilitySignature", Label: "Signature (typed)", Step: "disability", Kind: KindText},
	{Name: "disabilitySignatureDate", Label: "Signature date", Step: "disability", Kind: KindText},

	{Name: "vetStatus", Label: "Veteran status (voluntary)", Step: "veteran", Kind: KindText},
	{Name: "vetName", Label: "Signature (typed)", Step: "veteran", Kind: KindText},
	{Name: "vetDate", Label: "Date", Step: "veteran", Kind: KindText},

	{Name: "drugAgreementAcknowledge", Label: "I acknowledge the Alcohol & Drug Testing Program", Step: "alcohol-drug", Kind: KindBool},
	{Name: "drugAgreementSignature", Label: "Signature (typed)", Step: "alcohol-drug", Kind: KindText},
	{Name: "drugAgreementDate", Label: "Date", Step: "alcohol-drug", Kind: KindText},
}

// FieldsForStep returns the scalar fields owned by a step, in display order.
func FieldsForStep(stepID string) []FieldDef {
	var out []FieldDef
	for _, f := range ScalarFields {
		if f.Step == stepID {
			out = append(out, f)
		}
	}
	return out
}

// FieldLabel returns the display label for a field name, or the name itself.
func FieldLabel(name string) string {
	for _, f := range ScalarFields {
		if f.Name == name {
			return f.Label
		}
	}
	return name
}
