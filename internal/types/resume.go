package types

// ParsedResume is the structured output of the resume parser.
// Every leaf is optional: nil means the parser could not support a value.
// Sections may be missing entirely when the parser output was partial.
type ParsedResume struct {
	Contact    *ParsedContact     `json:"contact"`
	TargetRole *string            `json:"targetRole"`
	Employment []ParsedEmployment `json:"employment"`
	Education  *ParsedEducation   `json:"education"`
	Skills     *ParsedSkills      `json:"skills"`
	References []ParsedReference  `json:"references"`
}

// ParsedContact holds applicant contact details.
type ParsedContact struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Cell     *string `json:"cell"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Zip      *string `json:"zip"`
	Location *string `json:"location"`
}

// ParsedEmployment holds one employer extracted from the resume.
type ParsedEmployment struct {
	Company          *string `json:"company"`
	Address          *string `json:"address"`
	Phone            *string `json:"phone"`
	Position         *string `json:"position"`
	DateFrom         *string `json:"dateFrom"`
	DateTo           *string `json:"dateTo"`
	Duties           *string `json:"duties"`
	ReasonForLeaving *string `json:"reasonForLeaving"`
	Supervisor       *string `json:"supervisor"`
}

// ParsedEducation holds up to three schools: college, trade, high school.
type ParsedEducation struct {
	Graduate      *string `json:"graduate"`
	GraduateYears *string `json:"graduateYears"`
	GraduateMajor *string `json:"graduateMajor"`
	Trade         *string `json:"trade"`
	TradeYears    *string `json:"tradeYears"`
	TradeMajor    *string `json:"tradeMajor"`
	High          *string `json:"high"`
	HighYears     *string `json:"highYears"`
	HighMajor     *string `json:"highMajor"`
}

// ParsedSkills holds the skills section.
type ParsedSkills struct {
	TypingSpeed    *string `json:"typingSpeed"`
	TenKey         *string `json:"tenKey"`
	TenKeyMode     *string `json:"tenKeyMode"`
	ComputerSkills *string `json:"computerSkills"`
	DriverLicense  *string `json:"driverLicense"`
}

// ParsedReference holds one reference extracted from the resume.
type ParsedReference struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
}

// ParseMeta describes how a resume was parsed.
type ParseMeta struct {
	Filename       string `json:"filename"`
	CharactersUsed int    `json:"characters_used"`
	ExcerptChars   *int   `json:"excerpt_chars"`
	Truncated      bool   `json:"truncated"`
	Model          string `json:"model"`
	FinishReason   string `json:"finish_reason"`
	Mode           string `json:"mode"`
}

// ParseResponse is the body returned by the resume parsing endpoint.
type ParseResponse struct {
	Parsed ParsedResume `json:"parsed"`
	Meta   *ParseMeta   `json:"meta,omitempty"`
}

// Ptr returns a pointer to s. Convenient for building parsed values in code.
func Ptr(s string) *string {
	return &s
}

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
