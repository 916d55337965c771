// Package schemas embeds the JSON Schemas of the documents exchanged with the
// wizard frontend.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names.
const (
	ParsedResume       = "parsed_resume.schema.json"
	ApplicationPayload = "application_payload.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Get returns the content of an embedded schema.
func Get(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	return string(data), nil
}

// Names lists the embedded schema files.
func Names() []string {
	return []string{ParsedResume, ApplicationPayload}
}
