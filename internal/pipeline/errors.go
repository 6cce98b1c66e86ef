package pipeline

import "fmt"

// MissingInputError is returned when a required input (resume or job description) is absent.
type MissingInputError struct {
	Field   string
	Message string
}

func (e *MissingInputError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("missing input %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("missing input %s", e.Field)
}

// JobFetchError wraps a failure retrieving the job description from a URL.
type JobFetchError struct {
	URL   string
	Cause error
}

func (e *JobFetchError) Error() string {
	return fmt.Sprintf("failed to fetch job description from %s: %v", e.URL, e.Cause)
}

func (e *JobFetchError) Unwrap() error {
	return e.Cause
}
