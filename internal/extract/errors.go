package extract

import "fmt"

// UnsupportedFormatError is returned for a file extension no extractor handles.
type UnsupportedFormatError struct {
	Name      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file format for %q: please upload a .docx or .pdf file", e.Name)
	}
	return fmt.Sprintf("unsupported file format %q: please upload a .docx or .pdf file", e.Extension)
}

// DocumentReadError represents a failure of the underlying document parser.
type DocumentReadError struct {
	Name    string
	Format  Format
	Message string
	Cause   error
}

func (e *DocumentReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to read %s document %s: %s: %v", e.Format, e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to read %s document %s: %s", e.Format, e.Name, e.Message)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Cause
}
