package submission

import "fmt"

// ValidationError reports a locally detected incomplete or inconsistent
// draft. It never involves an external collaborator and blocks submission at
// the wizard.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is missing or invalid", e.Field)
}

// SubmissionError reports that an external collaborator rejected the
// submission or was unreachable. The wizard keeps the draft so the user can
// retry.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
