package validator

// Validator validates a struct against its declared rules.
type Validator interface {
	// Validate returns nil when data passes all rules, a field-level
	// validation error otherwise.
	Validate(data any) error
}
