// Package ingestion turns job postings from files or URLs into clean text.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	spaceRun      = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
	bulletPrefix  = regexp.MustCompile(`^[•·▪◦●‣]\s*`)
	nbspReplacer  = strings.NewReplacer("\u00a0", " ", "\u200b", "", "\ufeff", "")
	lineEndingFix = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// CleanText normalizes job posting text while keeping its line structure: line endings
// become LF, runs of spaces collapse, typographic bullets become "- ", and at most one
// blank line separates blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = lineEndingFix.Replace(nbspReplacer.Replace(content))

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line, keeping the indentation of nested bullets.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(strings.TrimRight(line, " \t")) - len(strings.TrimLeft(strings.TrimRight(line, " \t"), " \t"))
	trimmed = spaceRun.ReplaceAllString(trimmed, " ")
	if bulletPrefix.MatchString(trimmed) {
		trimmed = "- " + bulletPrefix.ReplaceAllString(trimmed, "")
	}
	if indent > 0 && isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + trimmed
	}
	return trimmed
}

// isBulletLine checks if a line is a markdown bullet list item
func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")
}

// IngestFromFile reads a text file, cleans it, and returns cleaned text with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleanedText := CleanText(string(content))
	metadata := NewMetadata(cleanedText, "")
	metadata.Source = SourceFile

	return cleanedText, metadata, nil
}

// WriteOutput writes the cleaned text and metadata to outDir
func WriteOutput(outDir string, cleanedText string, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cleanedPath := filepath.Join(outDir, "job_posting.cleaned.txt")
	if err := os.WriteFile(cleanedPath, []byte(cleanedText), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return err
	}
	metaPath := filepath.Join(outDir, "job_posting.meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
