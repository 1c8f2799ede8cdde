// Package schema is the YAML document layout of entity files.
package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"climada/internal/entity/discrates"
	"climada/internal/entity/impactfuncs"
	"climada/internal/entity/tag"
)

// FuncID accepts integer and string identifiers and keeps their text.
type FuncID string

func (id *FuncID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: impact function id must be a scalar", value.Line)
	}
	*id = FuncID(value.Value)
	return nil
}

type ImpactFunc struct {
	HazType       string    `yaml:"haz_type"`
	ID            FuncID    `yaml:"id"`
	Name          string    `yaml:"name,omitempty"`
	IntensityUnit string    `yaml:"intensity_unit,omitempty"`
	Intensity     []float64 `yaml:"intensity,flow"`
	MDD           []float64 `yaml:"mdd,flow"`
	PAA           []float64 `yaml:"paa,flow"`
}

type DiscRates struct {
	Years []int     `yaml:"years,flow"`
	Rates []float64 `yaml:"rates,flow"`
}

// Document is one YAML entity file.
type Document struct {
	Tag         tag.Tag      `yaml:"tag,omitempty"`
	ImpactFuncs []ImpactFunc `yaml:"impact_functions,omitempty"`
	DiscRates   *DiscRates   `yaml:"discount_rates,omitempty"`
}

func (f ImpactFunc) Entity() *impactfuncs.ImpactFunc {
	return &impactfuncs.ImpactFunc{
		ID:            string(f.ID),
		Name:          f.Name,
		HazType:       f.HazType,
		IntensityUnit: f.IntensityUnit,
		Intensity:     f.Intensity,
		MDD:           f.MDD,
		PAA:           f.PAA,
	}
}

func FromImpactFunc(f *impactfuncs.ImpactFunc) ImpactFunc {
	return ImpactFunc{
		HazType:       f.HazType,
		ID:            FuncID(f.ID),
		Name:          f.Name,
		IntensityUnit: f.IntensityUnit,
		Intensity:     f.Intensity,
		MDD:           f.MDD,
		PAA:           f.PAA,
	}
}

func (d DiscRates) Entity(t tag.Tag) *discrates.DiscRates {
	return &discrates.DiscRates{Tag: t, Years: d.Years, Rates: d.Rates}
}

func FromDiscRates(d *discrates.DiscRates) *DiscRates {
	return &DiscRates{Years: d.Years, Rates: d.Rates}
}
