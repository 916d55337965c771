package resume

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-wizard/internal/types"
)

func decodeRaw(t *testing.T, s string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestNormalize_Aliases(t *testing.T) {
	raw := decodeRaw(t, `{
		"contact": {"name": "Jane", "mobile": "808-555-0199", "zip": 96720},
		"objective": "Lab Technician",
		"employment": [
			{"company": "Acme", "startDate": "2019", "endDate": "Present", "summary": "Sampling", "reason": "Relocation"},
			{"company": "B", "dateFrom": "2017", "startDate": "ignored"}
		]
	}`)

	p := Normalize(raw)

	assert.Equal(t, "808-555-0199", types.Deref(p.Contact.Cell))
	assert.Equal(t, "96720", types.Deref(p.Contact.Zip))
	assert.Equal(t, "Lab Technician", types.Deref(p.TargetRole))
	require.Len(t, p.Employment, 2)
	assert.Equal(t, "2019", types.Deref(p.Employment[0].DateFrom))
	assert.Equal(t, "Present", types.Deref(p.Employment[0].DateTo))
	assert.Equal(t, "Sampling", types.Deref(p.Employment[0].Duties))
	assert.Equal(t, "Relocation", types.Deref(p.Employment[0].ReasonForLeaving))
	assert.Equal(t, "2017", types.Deref(p.Employment[1].DateFrom))
}

func TestNormalize_TargetRolePrecedence(t *testing.T) {
	p := Normalize(decodeRaw(t, `{"targetRole": "", "objective": null, "position": "Driller"}`))
	assert.Equal(t, "Driller", types.Deref(p.TargetRole))

	p = Normalize(decodeRaw(t, `{"targetRole": "Geologist", "position": "Driller"}`))
	assert.Equal(t, "Geologist", types.Deref(p.TargetRole))
}

func TestNormalize_CapsLists(t *testing.T) {
	p := Normalize(decodeRaw(t, `{
		"employment": [{}, {}, {}, {"company": "fourth"}],
		"references": [{"name": "a"}, {"name": "b"}, {"name": "c"}, {"name": "d"}, {"name": "e"}]
	}`))

	assert.Len(t, p.Employment, types.MaxEmploymentEntries)
	assert.Len(t, p.References, types.MaxReferenceEntries)
	assert.Equal(t, "c", types.Deref(p.References[2].Name))
}

func TestNormalize_MalformedSections(t *testing.T) {
	p := Normalize(decodeRaw(t, `{
		"contact": "not an object",
		"employment": {"company": "not a list"},
		"education": null,
		"skills": [1, 2],
		"references": [null, "x", {"name": "Kai"}]
	}`))

	require.NotNil(t, p.Contact)
	assert.Nil(t, p.Contact.Name)
	assert.Empty(t, p.Employment)
	require.NotNil(t, p.Education)
	require.NotNil(t, p.Skills)
	require.Len(t, p.References, 3)
	assert.Nil(t, p.References[0].Name)
	assert.Equal(t, "Kai", types.Deref(p.References[2].Name))
}

func TestNormalize_NilInput(t *testing.T) {
	assert.NotPanics(t, func() {
		p := Normalize(nil)
		assert.NotNil(t, p.Contact)
		assert.NotNil(t, p.Employment)
	})
}

func TestNormalizeParsed(t *testing.T) {
	in := types.ParsedResume{
		Employment: make([]types.ParsedEmployment, 5),
	}

	out := NormalizeParsed(in)

	assert.NotNil(t, out.Contact)
	assert.NotNil(t, out.Education)
	assert.NotNil(t, out.Skills)
	assert.NotNil(t, out.References)
	assert.Len(t, out.Employment, 3)
}
