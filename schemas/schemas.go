// Package schemas embeds the JSON Schemas describing the service's output documents.
package schemas

import "embed"

// ReportSchemaFile is the schema of a serialized ScoreReport.
const ReportSchemaFile = "report.schema.json"

//go:embed *.schema.json
var files embed.FS

// Read returns the named schema document.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists every embedded schema file.
func Names() []string {
	entries, _ := files.ReadDir(".")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
