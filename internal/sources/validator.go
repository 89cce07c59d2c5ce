package sources

// Validator vets a discovery query before it is sent.
type Validator interface {
	Validate(query string) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(query string) error

// Validate calls f.
func (f ValidatorFunc) Validate(query string) error {
	return f(query)
}

// AcceptAll accepts every query. It is the default validator.
var AcceptAll Validator = ValidatorFunc(func(string) error { return nil })
