package rendering

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/application-wizard/internal/types"
)

// Kind names a generated document. It is also the middle part of the
// attachment file name.
type Kind string

const (
	KindMain        Kind = "Main_Application"
	KindEEO         Kind = "EEO"
	KindDisability  Kind = "Disability"
	KindVeteran     Kind = "Veteran"
	KindAlcoholDrug Kind = "Alcohol_Drug"
	KindResume      Kind = "Resume"
)

// Document is a page ready to be rendered, numbered in attachment order.
type Document struct {
	Number int
	Kind   Kind
	Page   Page
}

const (
	verbatimFooter = "This document reproduces the exact text presented to the applicant during the application process. " +
		"Content has not been altered, summarized, or paraphrased."
	typedSignatureNote = "Typed signature serves as electronic signature."
	drugWarningMarker  = "ANY APPLICANT WHO IS UNWILLING"
)

// Builder lays out the application documents.
type Builder struct {
	// Organization is printed at the top of every document.
	Organization string
}

// Documents returns the five application documents in attachment order.
func (b Builder) Documents(p *types.SubmissionPayload) []Document {
	return []Document{
		{Number: 1, Kind: KindMain, Page: b.MainApplication(p)},
		{Number: 2, Kind: KindEEO, Page: b.EEO(p)},
		{Number: 3, Kind: KindDisability, Page: b.Disability(p)},
		{Number: 4, Kind: KindVeteran, Page: b.Veteran(p)},
		{Number: 5, Kind: KindAlcoholDrug, Page: b.AlcoholDrug(p)},
	}
}

// MainApplication lays out every core application field.
func (b Builder) MainApplication(p *types.SubmissionPayload) Page {
	form := formOf(p)
	applicant := orDefault(form.String("name"), "Applicant")
	position := orDefault(form.String("position"), "Position")

	cards := []Card{
		{
			Title: "Submission Summary",
			Rows: []Row{
				{"Submitted At", p.SubmittedAt},
				{"Client Timezone", p.ClientMeta.Timezone},
				{"Applicant Name", DisplayValue(form.Fields["name"])},
				{"Position Applying For", DisplayValue(form.Fields["position"])},
				{"Preferred Office Location", DisplayValue(form.Fields["location"])},
			},
		},
		{Title: "Application Information", Rows: stepRows(form, "application")},
		{Title: "General Information", Rows: fieldRows(form, "name", "email", "phone", "cell", "address", "city", "state", "zip")},
	}

	for i, job := range form.Employment {
		if i == types.MaxEmploymentEntries {
			break
		}
		cards = append(cards, Card{
			Title: fmt.Sprintf("Employment Record: Employer #%d", i+1),
			Rows: []Row{
				{"Company Name / Address", joinNonBlank(", ", job.Company, job.Address)},
				{"Phone", strings.TrimSpace(job.Phone)},
				{"Position", strings.TrimSpace(job.Position)},
				{"Date Employed (From)", strings.TrimSpace(job.DateFrom)},
				{"Date Employed (To)", strings.TrimSpace(job.DateTo)},
				{"Primary Duties / Responsibilities", strings.TrimSpace(job.Duties)},
				{"Reason for Leaving", strings.TrimSpace(job.ReasonForLeaving)},
				{"Supervisor / Title", strings.TrimSpace(job.Supervisor)},
			},
		})
	}

	cards = append(cards,
		Card{Title: "Education", Rows: stepRows(form, "education")},
		Card{Title: "Skills & Qualifications", Rows: stepRows(form, "skills")},
	)

	var refRows []Row
	for i, ref := range form.References {
		if i == types.MaxReferenceEntries {
			break
		}
		refRows = append(refRows,
			Row{fmt.Sprintf("Reference #%d Name / Title", i+1), strings.TrimSpace(ref.Name)},
			Row{fmt.Sprintf("Reference #%d Company / Relationship", i+1), strings.TrimSpace(ref.Company)},
			Row{fmt.Sprintf("Reference #%d Contact No.", i+1), strings.TrimSpace(ref.Phone)},
		)
	}
	refRows = append(refRows, stepRows(form, "references")...)

	cards = append(cards,
		Card{Title: "References", Rows: refRows},
		Card{
			Title: "Medical Information & Authorization",
			Rows:  stepRows(form, "medical"),
			Note:  "Applicants should not provide medical diagnoses or detailed health history in this field.",
		},
		Card{Title: "Professional Affiliations", Rows: stepRows(form, "affiliations")},
		Card{Title: "Employment Certification & Disclosures", Rows: stepRows(form, "employment-cert"), Note: typedSignatureNote},
	)

	if len(p.LegalText.RequiredNotice) > 0 {
		cards = append(cards, Card{Title: "Notice", Paragraphs: SplitParagraphs(p.LegalText.RequiredNotice)})
	}

	return Page{
		Organization: b.Organization,
		DocTitle:     fmt.Sprintf("Main Application: %s, %s", applicant, position),
		Title:        "Employment Application (Main Application)",
		Subtitle:     "Core application fields. EEO, disability, veteran and alcohol & drug forms are separate documents.",
		Cards:        cards,
	}
}

// EEO lays out the EEO self-identification survey.
func (b Builder) EEO(p *types.SubmissionPayload) Page {
	return b.selfID(p,
		"EEO Voluntary Self-Identification Survey (Applicant Data)",
		"Confidential. Used for EEO-1 reporting only. Voluntary; will not affect employment opportunity.",
		p.LegalText.EEONotice, "eeo", "")
}

// Disability lays out the CC-305 disability self-identification form.
func (b Builder) Disability(p *types.SubmissionPayload) Page {
	return b.selfID(p,
		"Voluntary Self-Identification of Disability (CC-305)",
		"Confidential. Federal reporting only. Voluntary; will not affect employment opportunity.",
		p.LegalText.DisabilityNotice, "disability", typedSignatureNote)
}

// Veteran lays out the VEVRAA protected veteran self-identification form.
func (b Builder) Veteran(p *types.SubmissionPayload) Page {
	return b.selfID(p,
		"Protected Veteran Self-Identification (VEVRAA)",
		"Confidential. Affirmative action reporting only. Voluntary; will not affect employment opportunity.",
		p.LegalText.VeteranNotice, "veteran", typedSignatureNote)
}

// AlcoholDrug lays out the signed testing program agreement. Paragraphs
// refusing applicants who will not comply are flagged as warnings.
func (b Builder) AlcoholDrug(p *types.SubmissionPayload) Page {
	page := b.selfID(p,
		"Agreement to Comply with Alcohol & Drug Testing Program",
		"Signed applicant agreement. Required for consideration for employment.",
		p.LegalText.AlcoholDrugProgram, "alcohol-drug", typedSignatureNote)

	for i := range page.Legal {
		page.Legal[i].Warning = strings.Contains(page.Legal[i].Text, drugWarningMarker)
	}
	page.Cards[0].Title = "Applicant Attestation"
	if p.Signatures != nil {
		page.Cards[0].Signature = signatureURL(p.Signatures.DrugAgreementSignatureDataURL)
	}
	page.DocTitle = "Alcohol & Drug Testing Program Agreement"
	return page
}

// ResumePage wraps the text of a non-PDF resume so it can be printed.
func (b Builder) ResumePage(text string) Page {
	return Page{
		Organization: b.Organization,
		DocTitle:     "Resume",
		Title:        "Resume (Converted to PDF)",
		Subtitle:     "Original resume was not a PDF; converted for department review.",
		Cards:        []Card{{Title: "Resume", Paragraphs: SplitParagraphs(text)}},
	}
}

func (b Builder) selfID(p *types.SubmissionPayload, title, subtitle, legal, step, note string) Page {
	form := formOf(p)
	var paragraphs []LegalParagraph
	for _, text := range SplitParagraphs(legal) {
		paragraphs = append(paragraphs, LegalParagraph{Text: text})
	}
	return Page{
		Organization: b.Organization,
		DocTitle:     title,
		Title:        title,
		Subtitle:     subtitle,
		Legal:        paragraphs,
		Cards:        []Card{{Title: "Applicant Responses", Rows: stepRows(form, step), Note: note}},
		Footer:       verbatimFooter,
	}
}

func formOf(p *types.SubmissionPayload) types.FormState {
	if p == nil || p.Form == nil {
		return types.NewFormState()
	}
	return *p.Form
}

func stepRows(form types.FormState, step string) []Row {
	defs := types.FieldsForStep(step)
	rows := make([]Row, 0, len(defs))
	for _, f := range defs {
		rows = append(rows, Row{Label: f.Label, Value: DisplayValue(form.Fields[f.Name])})
	}
	return rows
}

func fieldRows(form types.FormState, names ...string) []Row {
	rows := make([]Row, 0, len(names))
	for _, name := range names {
		rows = append(rows, Row{Label: types.FieldLabel(name), Value: DisplayValue(form.Fields[name])})
	}
	return rows
}

// signatureURL accepts only inline images; anything else is dropped.
func signatureURL(dataURL string) template.URL {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return ""
	}
	return template.URL(dataURL)
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func joinNonBlank(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
