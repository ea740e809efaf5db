package location

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound marks an expected absence: unknown place name or no data
	// for a key. It is never a failure.
	ErrNotFound = errors.New("location not found")

	// ErrMalformedRecord is returned when a provider record fails validation.
	ErrMalformedRecord = errors.New("malformed record")
)

var validate = validator.New()

// Validate checks the struct tags of a record or key.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return nil
}
