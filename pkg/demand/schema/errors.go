package schema

import (
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError reports that request data does not match its schema.
type ValidationError struct {
	Category  Category
	Operation string
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s failed schema validation: %v", e.Operation, e.Category, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Violations returns the leaf schema violations as "location: message"
// strings. It returns nil if the error was not produced by the validator.
func (e *ValidationError) Violations() []string {
	var verr *jsonschema.ValidationError
	if !errors.As(e.Err, &verr) {
		return nil
	}

	var out []string
	var walk func(v *jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.Causes) == 0 {
			loc := v.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out = append(out, fmt.Sprintf("%s: %s", loc, v.Message))
			return
		}
		for _, c := range v.Causes {
			walk(c)
		}
	}
	walk(verr)

	return out
}
