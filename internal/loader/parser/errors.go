package parser

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrRequiredField = errors.New("required field")
	ErrDuplicateFunc = errors.New("duplicate impact function")
)

type requiredFieldError struct {
	section string
	field   string
	item    int
	line    int
}

func (e *requiredFieldError) Error() string {
	if e.item < 0 {
		return fmt.Sprintf("missing required %s field %q (line %d)", e.section, e.field, e.line)
	}
	return fmt.Sprintf("missing required %s field %q in item %d (line %d)", e.section, e.field, e.item, e.line)
}

func (e *requiredFieldError) Unwrap() error {
	return ErrRequiredField
}

type invalidFieldError struct {
	reason  error
	section string
	field   string
	line    int
}

func (e *invalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s field %q (line %d): %s", e.section, e.field, e.line, e.reason)
}

func (e *invalidFieldError) Unwrap() error {
	return e.reason
}

type duplicateFuncError struct {
	hazType string
	id      string
	line    int
}

func (e *duplicateFuncError) Error() string {
	return fmt.Sprintf("duplicate impact function %s %q (line %d), ids must be unique per hazard type", e.hazType, e.id, e.line)
}

func (e *duplicateFuncError) Unwrap() error {
	return ErrDuplicateFunc
}
