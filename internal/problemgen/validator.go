package problemgen

import "fmt"

// Validator checks a generated sentence.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "structural".
	Name() string

	// Validate returns nil if the sentence passes.
	Validate(s *Sentence, req SentenceRequest) *ValidationError
}

// ValidationError describes why a sentence failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
