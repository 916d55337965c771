package main

import (
	"encoding/json"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-wizard/internal/resume"
)

const sampleResume = `Jane Doe
Hilo, HI 96720
jane.doe@example.com
808-555-0100
`

func TestParseCommand_RejectsUnsupportedType(t *testing.T) {
	path := writeTempFile(t, "resume.exe", "MZ")

	_, err := executeCommand(t, "parse", path)

	var uploadErr *resume.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Contains(t, err.Error(), "Unsupported file type: .exe")
}

func TestParseCommand_MissingFile(t *testing.T) {
	_, err := executeCommand(t, "parse", "/does/not/exist.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read resume")
}

func TestParseCommand_Offline(t *testing.T) {
	path := writeTempFile(t, "jane.txt", sampleResume)

	out, err := executeCommand(t, "parse", path, "--offline")
	require.NoError(t, err)

	var res resume.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotNil(t, res.Parsed.Contact)
	require.NotNil(t, res.Parsed.Contact.Email)
	assert.Equal(t, "jane.doe@example.com", *res.Parsed.Contact.Email)
	assert.Equal(t, "jane.txt", res.Meta.Filename)
	assert.Equal(t, resume.ModeFallback, res.Meta.Mode)
}

func TestParseCommand_MergesIntoForm(t *testing.T) {
	path := writeTempFile(t, "jane.txt", sampleResume)
	formPath := writeTempFile(t, "form.json", `{"email":"mine@example.com","position":"Driller"}`)

	out, err := executeCommand(t, "parse", path, "--offline", "--form", formPath)
	require.NoError(t, err)

	var got struct {
		Form   map[string]any `json:"form"`
		Filled []string       `json:"filled"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "mine@example.com", got.Form["email"])
	assert.Equal(t, "Jane Doe", got.Form["name"])
	assert.Equal(t, "Driller", got.Form["position"])
	assert.Contains(t, got.Filled, "name")
	assert.NotContains(t, got.Filled, "email")
	employment, ok := got.Form["employment"].([]any)
	require.True(t, ok)
	assert.Len(t, employment, 3)
}

func TestParseCommand_BadFormFile(t *testing.T) {
	path := writeTempFile(t, "jane.txt", sampleResume)
	formPath := writeTempFile(t, "form.json", `[1, 2`)

	_, err := executeCommand(t, "parse", path, "--offline", "--form", formPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse form file")
}

func TestParseCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing FILE argument",
			args:        []string{"parse"},
			errorString: "accepts 1 arg",
		},
		{
			name:        "Unknown flag",
			args:        []string{"parse", "x.txt", "--nope"},
			errorString: "unknown flag",
		},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			output, err := cmd.CombinedOutput()

			assert.Error(t, err)
			assert.Contains(t, string(output), tt.errorString)
		})
	}
}

func TestParseCommand_VerboseSummary(t *testing.T) {
	path := writeTempFile(t, "jane.txt", sampleResume)
	formPath := writeTempFile(t, "form.json", `{}`)

	out, stderr, err := executeCommandWithStderr(t, "parse", path, "--offline", "--form", formPath, "-v")
	require.NoError(t, err)

	assert.Contains(t, stderr, "PARSED RESUME")
	assert.Contains(t, stderr, "Jane Doe")
	assert.Contains(t, stderr, "AUTOFILL")
	assert.NotContains(t, out, "PARSED RESUME")
}
