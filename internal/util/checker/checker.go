package checker

import (
	"errors"
	"fmt"
)

var ErrSizeMismatch = errors.New("size mismatch")

// SizeError reports an array whose length differs from the expected one.
type SizeError struct {
	Name     string
	Expected int
	Got      int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("invalid %s size: %d != %d", e.Name, e.Expected, e.Got)
}

func (e *SizeError) Unwrap() error {
	return ErrSizeMismatch
}

// Size returns a *SizeError when values does not hold exactly expected elements.
func Size[T any](expected int, values []T, name string) error {
	if len(values) != expected {
		return &SizeError{Name: name, Expected: expected, Got: len(values)}
	}
	return nil
}
