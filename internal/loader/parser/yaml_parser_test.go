package parser

import (
	"errors"
	"strings"
	"testing"
)

const validDoc = `tag:
  file_name: entities.yaml
  description: demo
impact_functions:
  - haz_type: TC
    id: 1
    name: Emanuel
    intensity_unit: m/s
    intensity: [0, 20, 40]
    mdd: [0, 0.5, 1]
    paa: [0, 1, 1]
  - haz_type: TC
    id: two
    intensity: [0, 10]
    mdd: [0, 1]
    paa: [1, 1]
discount_rates:
  years: [2000, 2001]
  rates: [0.02, 0.03]
`

func TestParseValidDocument(t *testing.T) {
	doc, err := NewParser().Parse(strings.NewReader(validDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if doc.Tag.FileName != "entities.yaml" || doc.Tag.Description != "demo" {
		t.Errorf("unexpected tag %+v", doc.Tag)
	}
	if len(doc.ImpactFuncs) != 2 {
		t.Fatalf("expected 2 impact functions, got %d", len(doc.ImpactFuncs))
	}
	first := doc.ImpactFuncs[0]
	if first.ID != "1" || first.Name != "Emanuel" || first.IntensityUnit != "m/s" {
		t.Errorf("unexpected first function %+v", first)
	}
	if len(first.MDD) != 3 || first.MDD[1] != 0.5 {
		t.Errorf("unexpected mdd %v", first.MDD)
	}
	if doc.ImpactFuncs[1].ID != "two" {
		t.Errorf("expected string id, got %q", doc.ImpactFuncs[1].ID)
	}
	if doc.DiscRates == nil || len(doc.DiscRates.Years) != 2 || doc.DiscRates.Rates[1] != 0.03 {
		t.Errorf("unexpected discount rates %+v", doc.DiscRates)
	}
}

func TestParseMultipleDocuments(t *testing.T) {
	input := `impact_functions:
  - {haz_type: TC, id: 1, intensity: [0, 1], mdd: [0, 1], paa: [1, 1]}
---
impact_functions:
  - {haz_type: FL, id: 1, intensity: [0, 1], mdd: [0, 1], paa: [1, 1]}
`
	doc, err := NewYamlParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.ImpactFuncs) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(doc.ImpactFuncs))
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  error
		text  string
	}{
		{
			name: "missing mdd",
			input: `impact_functions:
  - haz_type: TC
    id: 1
    intensity: [0, 1]
    paa: [1, 1]
`,
			want: ErrRequiredField,
			text: `missing required impact_functions field "mdd" in item 0 (line 2)`,
		},
		{
			name: "unknown field",
			input: `impact_functions:
  - haz_type: TC
    id: 1
    intensity: [0, 1]
    mdd: [0, 1]
    paa: [1, 1]
    colour: red
`,
			want: ErrUnknownField,
			text: `invalid impact_functions field "colour" (line 7): unknown field`,
		},
		{
			name:  "unknown top level",
			input: "exposures: []\n",
			want:  ErrUnknownField,
		},
		{
			name: "duplicate",
			input: `impact_functions:
  - {haz_type: TC, id: 1, intensity: [0, 1], mdd: [0, 1], paa: [1, 1]}
  - {haz_type: TC, id: 1, intensity: [0, 2], mdd: [0, 1], paa: [1, 1]}
`,
			want: ErrDuplicateFunc,
		},
		{
			name:  "missing rates",
			input: "discount_rates:\n  years: [2000]\n",
			want:  ErrRequiredField,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewYamlParser().Parse(strings.NewReader(c.input))
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if c.text != "" && err.Error() != c.text {
				t.Fatalf("expected message %q, got %q", c.text, err.Error())
			}
		})
	}
}

func TestParseTypeError(t *testing.T) {
	input := `impact_functions:
  - haz_type: TC
    id: 1
    intensity: [0, high]
    mdd: [0, 1]
    paa: [1, 1]
`
	if _, err := NewYamlParser().Parse(strings.NewReader(input)); err == nil {
		t.Fatal("expected type error")
	}
}

func TestParseEmptyInput(t *testing.T) {
	doc, err := NewYamlParser().Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.ImpactFuncs) != 0 || doc.DiscRates != nil {
		t.Fatalf("expected empty document, got %+v", doc)
	}
}
