package problemgen

// Config controls the behavior of LLMSentences.
type Config struct {
	// Validators run on every generated sentence in order. A sentence
	// failing any of them is dropped from the set.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&WordsMatchValidator{},
			&BandLengthValidator{},
		},
		MaxTokens:   1200,
		Temperature: 0.7,
	}
}
