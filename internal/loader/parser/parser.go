package parser

import (
	"io"

	"climada/internal/loader/schema"
)

// Parser decodes an entity document.
type Parser interface {
	Parse(r io.Reader) (schema.Document, error)
}

// NewParser returns the parser for entity files.
func NewParser() Parser {
	return NewYamlParser()
}
